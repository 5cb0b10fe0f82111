package sigma

import (
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// ProofBytes is a serialized proof. A zero-length value is the empty proof,
// used for branches that are intentionally left unproven.
type ProofBytes []byte

// IsEmpty reports whether p carries no proof.
func (p ProofBytes) IsEmpty() bool {
	return len(p) == 0
}

// UncheckedTree is the verifier's reconstruction of a proof before the
// algebraic checks run. The variants are NoProof and the
// UncheckedSigmaTree nodes.
type UncheckedTree interface {
	uncheckedTree()
}

// NoProof mirrors an empty ProofBytes.
type NoProof struct{}

func (NoProof) uncheckedTree() {}

// UncheckedSigmaTree is a node of a non-empty unchecked tree:
// *UncheckedSchnorr, *CandUnchecked or *CorUnchecked.
type UncheckedSigmaTree interface {
	UncheckedTree
	uncheckedSigmaTree()
}

// UncheckedLeaf is a leaf proof.
type UncheckedLeaf interface {
	UncheckedSigmaTree
	uncheckedLeaf()
}

// UncheckedConjecture is an AND/OR node.
type UncheckedConjecture interface {
	UncheckedSigmaTree
	uncheckedConjecture()
}

// FirstDlogProverMessage is the Schnorr commitment a = g^r.
type FirstDlogProverMessage struct {
	A *dlog.EcPoint
}

// SecondDlogProverMessage is the Schnorr response z = r + e*w.
type SecondDlogProverMessage struct {
	Z *dlog.Scalar
}

// UncheckedSchnorr is a Schnorr proof of a ProveDlog leaf. CommitmentOpt
// is never read from the wire; the verifier recomputes it.
type UncheckedSchnorr struct {
	Proposition   *ProveDlog
	CommitmentOpt *FirstDlogProverMessage
	Challenge     Challenge
	SecondMessage SecondDlogProverMessage
}

// CandUnchecked is an AND node; every child carries the node's challenge.
type CandUnchecked struct {
	Challenge Challenge
	Children  []UncheckedSigmaTree
}

// CorUnchecked is an OR node; the children's challenges XOR to the node's
// challenge.
type CorUnchecked struct {
	Challenge Challenge
	Children  []UncheckedSigmaTree
}

func (*UncheckedSchnorr) uncheckedTree()      {}
func (*UncheckedSchnorr) uncheckedSigmaTree() {}
func (*UncheckedSchnorr) uncheckedLeaf()      {}

func (*CandUnchecked) uncheckedTree()       {}
func (*CandUnchecked) uncheckedSigmaTree()  {}
func (*CandUnchecked) uncheckedConjecture() {}

func (*CorUnchecked) uncheckedTree()       {}
func (*CorUnchecked) uncheckedSigmaTree()  {}
func (*CorUnchecked) uncheckedConjecture() {}

// ChallengeOf returns the challenge carried by node.
func ChallengeOf(node UncheckedSigmaTree) Challenge {
	switch n := node.(type) {
	case *UncheckedSchnorr:
		return n.Challenge
	case *CandUnchecked:
		return n.Challenge
	case *CorUnchecked:
		return n.Challenge
	}
	return Challenge{}
}

// PropositionOf rebuilds the proposition that node proves.
func PropositionOf(node UncheckedSigmaTree) SigmaBoolean {
	switch n := node.(type) {
	case *UncheckedSchnorr:
		return n.Proposition
	case *CandUnchecked:
		return &Cand{Items: propositionsOf(n.Children)}
	case *CorUnchecked:
		return &Cor{Items: propositionsOf(n.Children)}
	}
	return nil
}

func propositionsOf(children []UncheckedSigmaTree) []SigmaBoolean {
	items := make([]SigmaBoolean, len(children))
	for i, c := range children {
		items[i] = PropositionOf(c)
	}
	return items
}
