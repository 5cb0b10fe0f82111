package verifier

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
)

// ErrProofTooLarge is returned when a proof exceeds Config.MaxProofSize.
// It wraps sigma.ErrSerialization.
var ErrProofTooLarge = errors.Wrap(sigma.ErrSerialization, "proof too large")

// ErrorKind names the failure class of err for logs and metrics:
// "decoding", "short_read", "serialization", "not_supported",
// "invariant_violation", "canceled", or "other".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, sigma.ErrDecoding):
		return "decoding"
	case errors.Is(err, sigma.ErrShortRead):
		return "short_read"
	case errors.Is(err, sigma.ErrSerialization):
		return "serialization"
	case errors.Is(err, sigma.ErrNotSupported):
		return "not_supported"
	case errors.Is(err, sigma.ErrInvariantViolation):
		return "invariant_violation"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
