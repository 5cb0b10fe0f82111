package sigma

import (
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// SerializeSigmaBoolean writes the opcode of sb followed by its payload.
// Diffie-Hellman tuples and conjectures have no encoding and fail with
// ErrNotSupported before anything is written.
func SerializeSigmaBoolean(w *wire.Writer, sb SigmaBoolean) error {
	switch p := sb.(type) {
	case TrivialProp:
		w.PutByte(byte(p.OpCode()))
		return nil
	case *ProveDlog:
		if p == nil || p.H == nil {
			return errors.Wrap(ErrInvariantViolation, "proveDlog without a public key")
		}
		w.PutByte(byte(OpProveDlog))
		p.H.Serialize(w)
		return nil
	case *ProveDhTuple:
		return errors.Wrap(ErrNotSupported, "serializing proveDHTuple")
	case *Cand, *Cor:
		return errors.Wrapf(ErrNotSupported, "serializing conjecture %s", sb)
	default:
		return errors.Wrapf(ErrSerialization, "unknown proposition %T", sb)
	}
}

// SigmaBooleanBytes returns the serialization of sb.
func SigmaBooleanBytes(sb SigmaBoolean) ([]byte, error) {
	w := wire.NewWriter()
	if err := SerializeSigmaBoolean(w, sb); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ReadSigmaBoolean reads one opcode-tagged proposition from r.
func ReadSigmaBoolean(r *wire.Reader) (SigmaBoolean, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "reading proposition opcode")
	}
	switch op := OpCode(b); op {
	case OpTrivialPropTrue:
		return TrivialTrue, nil
	case OpTrivialPropFalse:
		return TrivialFalse, nil
	case OpProveDlog:
		h, err := dlog.ReadEcPoint(r)
		if err != nil {
			return nil, errors.Wrap(err, "parsing proveDlog")
		}
		return NewProveDlog(h), nil
	case OpProveDhTuple:
		return nil, errors.Wrap(ErrNotSupported, "parsing proveDHTuple")
	case OpSigmaAnd, OpSigmaOr:
		return nil, errors.Wrapf(ErrNotSupported, "parsing conjecture opcode 0x%02x", b)
	default:
		return nil, errors.Wrapf(ErrSerialization, "unknown proposition opcode 0x%02x", b)
	}
}

// ParseSigmaBoolean decodes b, which must hold exactly one proposition.
func ParseSigmaBoolean(b []byte) (SigmaBoolean, error) {
	r := wire.NewReader(b)
	sb, err := ReadSigmaBoolean(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, errors.Wrapf(ErrSerialization, "%d trailing bytes after proposition", r.Remaining())
	}
	return sb, nil
}
