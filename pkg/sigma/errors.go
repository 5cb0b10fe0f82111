package sigma

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

var (
	// ErrDecoding is returned when bytes do not decode to a curve point or
	// a canonical scalar.
	ErrDecoding = dlog.ErrDecoding

	// ErrShortRead is returned when the proof ends before a required field.
	ErrShortRead = wire.ErrShortRead

	// ErrSerialization is returned for unknown opcodes and malformed
	// envelopes, including bytes left over after a proof is parsed.
	ErrSerialization = errors.New("sigma: serialization error")

	// ErrNotSupported is returned for constructs that have no encoding yet:
	// Diffie-Hellman tuple proofs and conjecture propositions.
	ErrNotSupported = errors.New("sigma: not supported")

	// ErrInvariantViolation is returned when the caller hands the codec a
	// tree it must never see, such as a trivial proposition that should have
	// been resolved before proof parsing.
	ErrInvariantViolation = errors.New("sigma: invariant violation")
)
