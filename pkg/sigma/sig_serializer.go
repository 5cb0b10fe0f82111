package sigma

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// SerializeSig encodes the challenges and responses of tree. Propositions
// and commitments are not serialized: the verifier knows the former and
// recomputes the latter.
//
// The root challenge is always written. Children of an AND node never carry
// a challenge, since they share their parent's. Children of an OR node carry
// their own challenge except for the last one, which the verifier derives by
// XOR.
func SerializeSig(tree UncheckedTree) (ProofBytes, error) {
	switch t := tree.(type) {
	case NoProof, *NoProof:
		return nil, nil
	case UncheckedSigmaTree:
		w := wire.NewWriter()
		if err := writeSig(w, t, true); err != nil {
			return nil, err
		}
		return ProofBytes(w.Bytes()), nil
	default:
		return nil, errors.Wrapf(ErrSerialization, "unknown unchecked tree %T", tree)
	}
}

func writeSig(w *wire.Writer, node UncheckedSigmaTree, writeChallenge bool) error {
	switch n := node.(type) {
	case *UncheckedSchnorr:
		if n == nil || n.SecondMessage.Z == nil {
			return errors.Wrap(ErrSerialization, "schnorr leaf without a response")
		}
		if writeChallenge {
			n.Challenge.Serialize(w)
		}
		w.PutBytes(dlog.ScalarToBytes(n.SecondMessage.Z))
		return nil

	case *CandUnchecked:
		if n == nil || len(n.Children) < 2 {
			return errors.Wrap(ErrSerialization, "AND node needs at least 2 children")
		}
		if writeChallenge {
			n.Challenge.Serialize(w)
		}
		for i, child := range n.Children {
			if err := writeSig(w, child, false); err != nil {
				return errors.Wrapf(err, "AND child %d", i)
			}
		}
		return nil

	case *CorUnchecked:
		if n == nil || len(n.Children) < 2 {
			return errors.Wrap(ErrSerialization, "OR node needs at least 2 children")
		}
		if writeChallenge {
			n.Challenge.Serialize(w)
		}
		last := len(n.Children) - 1
		for i, child := range n.Children[:last] {
			if err := writeSig(w, child, true); err != nil {
				return errors.Wrapf(err, "OR child %d", i)
			}
		}
		if err := writeSig(w, n.Children[last], false); err != nil {
			return errors.Wrapf(err, "OR child %d", last)
		}
		return nil

	default:
		return errors.Wrapf(ErrSerialization, "unknown unchecked node %T", node)
	}
}

type challengeMode int

const (
	// readFromStream: the challenge is the next SoundnessBytes of the proof.
	readFromStream challengeMode = iota
	// inherit: an AND child takes its parent's challenge.
	inherit
	// deriveFromSiblings: the last OR child takes the XOR of its parent's
	// challenge and its siblings' challenges.
	deriveFromSiblings
)

type challengeSource struct {
	mode  challengeMode
	value Challenge
}

func readChallenge() challengeSource {
	return challengeSource{mode: readFromStream}
}

func inheritChallenge(c Challenge) challengeSource {
	return challengeSource{mode: inherit, value: c}
}

func deriveChallenge(c Challenge) challengeSource {
	return challengeSource{mode: deriveFromSiblings, value: c}
}

func (s challengeSource) resolve(r *wire.Reader) (Challenge, error) {
	if s.mode == readFromStream {
		return ReadChallenge(r)
	}
	return s.value, nil
}

// ParseSigComputeChallenges walks prop over proof and rebuilds the
// unchecked tree, reading or computing every node's challenge and reading
// every leaf's response.
//
// The proof carries no node tags, so prop alone decides how many bytes each
// node consumes. An empty proof yields NoProof for any proposition. The proof
// must be consumed exactly; truncated and oversized proofs are rejected.
func ParseSigComputeChallenges(prop SigmaBoolean, proof ProofBytes) (UncheckedTree, error) {
	if proof.IsEmpty() {
		return NoProof{}, nil
	}
	r := wire.NewReader(proof)
	tree, err := parseSig(prop, r, readChallenge())
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errors.Wrapf(ErrSerialization, "%d trailing bytes after proof", r.Remaining())
	}
	return tree, nil
}

func parseSig(prop SigmaBoolean, r *wire.Reader, src challengeSource) (UncheckedSigmaTree, error) {
	// Reject nodes that cannot be proof-parsed before touching the stream,
	// so the error names the real cause rather than a short read.
	switch p := prop.(type) {
	case TrivialProp:
		return nil, errors.Wrapf(ErrInvariantViolation, "%s must be resolved before proof parsing", p)
	case *ProveDhTuple:
		return nil, errors.Wrap(ErrNotSupported, "Diffie-Hellman tuple proofs")
	case *ProveDlog:
		if p == nil || p.H == nil {
			return nil, errors.Wrap(ErrInvariantViolation, "proveDlog without a public key")
		}
	case *Cand:
		if p == nil {
			return nil, errors.Wrap(ErrInvariantViolation, "nil AND proposition")
		}
		if err := checkItems(p.Items); err != nil {
			return nil, err
		}
	case *Cor:
		if p == nil {
			return nil, errors.Wrap(ErrInvariantViolation, "nil OR proposition")
		}
		if err := checkItems(p.Items); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrInvariantViolation, "unknown proposition %T", prop)
	}

	challenge, err := src.resolve(r)
	if err != nil {
		return nil, err
	}

	switch p := prop.(type) {
	case *ProveDlog:
		z, err := dlog.ReadScalar(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading schnorr response")
		}
		return &UncheckedSchnorr{
			Proposition:   p,
			CommitmentOpt: nil,
			Challenge:     challenge,
			SecondMessage: SecondDlogProverMessage{Z: z},
		}, nil

	case *Cand:
		children := make([]UncheckedSigmaTree, len(p.Items))
		for i, item := range p.Items {
			child, err := parseSig(item, r, inheritChallenge(challenge))
			if err != nil {
				return nil, errors.Wrapf(err, "AND child %d", i)
			}
			children[i] = child
		}
		return &CandUnchecked{Challenge: challenge, Children: children}, nil

	case *Cor:
		last := len(p.Items) - 1
		children := make([]UncheckedSigmaTree, 0, len(p.Items))
		derived := challenge
		for i, item := range p.Items[:last] {
			child, err := parseSig(item, r, readChallenge())
			if err != nil {
				return nil, errors.Wrapf(err, "OR child %d", i)
			}
			derived = derived.Xor(ChallengeOf(child))
			children = append(children, child)
		}
		child, err := parseSig(p.Items[last], r, deriveChallenge(derived))
		if err != nil {
			return nil, errors.Wrapf(err, "OR child %d", last)
		}
		children = append(children, child)
		return &CorUnchecked{Challenge: challenge, Children: children}, nil
	}

	// unreachable: the first switch rejects every other variant
	return nil, errors.Wrapf(ErrInvariantViolation, "unknown proposition %T", prop)
}
