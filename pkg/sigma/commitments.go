package sigma

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// ComputeCommitments fills in every Schnorr leaf's commitment from its
// challenge e and response z, as a = g^z * h^-e. The commitment is never
// taken from the prover. The input tree is not modified.
func ComputeCommitments(node UncheckedSigmaTree) (UncheckedSigmaTree, error) {
	switch n := node.(type) {
	case *UncheckedSchnorr:
		if n == nil || n.Proposition == nil || n.Proposition.H == nil || n.SecondMessage.Z == nil {
			return nil, errors.Wrap(ErrInvariantViolation, "incomplete schnorr leaf")
		}
		out := *n
		out.CommitmentOpt = &FirstDlogProverMessage{A: SchnorrCommitment(n.Proposition.H, n.Challenge, n.SecondMessage.Z)}
		return &out, nil

	case *CandUnchecked:
		if n == nil {
			return nil, errors.Wrap(ErrInvariantViolation, "nil AND node")
		}
		children, err := computeChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return &CandUnchecked{Challenge: n.Challenge, Children: children}, nil

	case *CorUnchecked:
		if n == nil {
			return nil, errors.Wrap(ErrInvariantViolation, "nil OR node")
		}
		children, err := computeChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return &CorUnchecked{Challenge: n.Challenge, Children: children}, nil
	}
	return nil, errors.Wrapf(ErrInvariantViolation, "unknown unchecked node %T", node)
}

func computeChildren(children []UncheckedSigmaTree) ([]UncheckedSigmaTree, error) {
	out := make([]UncheckedSigmaTree, len(children))
	for i, c := range children {
		cc, err := ComputeCommitments(c)
		if err != nil {
			return nil, errors.Wrapf(err, "child %d", i)
		}
		out[i] = cc
	}
	return out, nil
}

// SchnorrCommitment returns g^z * h^-e.
func SchnorrCommitment(h *dlog.EcPoint, e Challenge, z *dlog.Scalar) *dlog.EcPoint {
	gz := dlog.Exponentiate(dlog.Generator(), z)
	he := dlog.Exponentiate(h, e.Scalar())
	return dlog.Multiply(gz, dlog.Inverse(he))
}
