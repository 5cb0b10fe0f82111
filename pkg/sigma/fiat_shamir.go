package sigma

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
)

// Fiat-Shamir tree encoding markers.
const (
	internalNodePrefix byte = 0
	leafPrefix         byte = 1

	conjectureAnd byte = 0
	conjectureOr  byte = 1
)

// FiatShamirTreeToBytes encodes the public part of a proof tree, the
// propositions and commitments, as the input of the challenge hash.
//
// A leaf is 0x01, a u16 length and the proposition bytes, then a u16 length
// and the commitment bytes. A conjecture is 0x00, its kind (0 AND, 1 OR), a
// u16 child count and the children. Lengths are big-endian.
func FiatShamirTreeToBytes(node UncheckedSigmaTree) ([]byte, error) {
	w := wire.NewWriter()
	if err := writeFiatShamir(w, node); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func writeFiatShamir(w *wire.Writer, node UncheckedSigmaTree) error {
	switch n := node.(type) {
	case *UncheckedSchnorr:
		if n == nil || n.CommitmentOpt == nil || n.CommitmentOpt.A == nil {
			return errors.Wrap(ErrInvariantViolation, "schnorr leaf without a commitment")
		}
		prop, err := SigmaBooleanBytes(n.Proposition)
		if err != nil {
			return err
		}
		w.PutByte(leafPrefix)
		w.PutUint16(uint16(len(prop)))
		w.PutBytes(prop)
		commitment := n.CommitmentOpt.A.Bytes()
		w.PutUint16(uint16(len(commitment)))
		w.PutBytes(commitment)
		return nil
	case *CandUnchecked:
		if n == nil {
			return errors.Wrap(ErrInvariantViolation, "nil AND node")
		}
		return writeFiatShamirConjecture(w, conjectureAnd, n.Children)
	case *CorUnchecked:
		if n == nil {
			return errors.Wrap(ErrInvariantViolation, "nil OR node")
		}
		return writeFiatShamirConjecture(w, conjectureOr, n.Children)
	}
	return errors.Wrapf(ErrInvariantViolation, "unknown unchecked node %T", node)
}

func writeFiatShamirConjecture(w *wire.Writer, kind byte, children []UncheckedSigmaTree) error {
	if len(children) > math.MaxUint16 {
		return errors.Wrapf(ErrSerialization, "conjecture has %d children", len(children))
	}
	w.PutByte(internalNodePrefix)
	w.PutByte(kind)
	w.PutUint16(uint16(len(children)))
	for i, c := range children {
		if err := writeFiatShamir(w, c); err != nil {
			return errors.Wrapf(err, "child %d", i)
		}
	}
	return nil
}

// FiatShamirHash derives a challenge from b: the first SoundnessBytes of
// BLAKE2b-256(b).
func FiatShamirHash(b []byte) Challenge {
	sum := blake2b.Sum256(b)
	var c Challenge
	copy(c[:], sum[:SoundnessBytes])
	return c
}
