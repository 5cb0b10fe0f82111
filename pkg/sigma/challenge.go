package sigma

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// SoundnessBytes is the challenge width. A cheating prover succeeds with
// probability 2^-(8*SoundnessBytes).
const SoundnessBytes = 24

// Challenge is the verifier challenge e of a Sigma protocol.
type Challenge [SoundnessBytes]byte

// ChallengeFromBytes copies a SoundnessBytes-long slice into a Challenge.
func ChallengeFromBytes(b []byte) (Challenge, error) {
	var c Challenge
	if len(b) != SoundnessBytes {
		return c, errors.Wrapf(ErrSerialization, "challenge must be %d bytes, got %d", SoundnessBytes, len(b))
	}
	copy(c[:], b)
	return c, nil
}

// ReadChallenge reads exactly SoundnessBytes bytes from r.
func ReadChallenge(r *wire.Reader) (Challenge, error) {
	var c Challenge
	if err := r.ReadInto(c[:]); err != nil {
		return c, errors.Wrap(err, "reading challenge")
	}
	return c, nil
}

// Serialize appends c to w. Challenges carry no length prefix.
func (c Challenge) Serialize(w *wire.Writer) {
	w.PutBytes(c[:])
}

// Xor returns the bitwise XOR of c and other.
func (c Challenge) Xor(other Challenge) Challenge {
	var out Challenge
	for i := range out {
		out[i] = c[i] ^ other[i]
	}
	return out
}

// Equal reports whether c and other are byte-identical.
func (c Challenge) Equal(other Challenge) bool {
	return c == other
}

// Scalar interprets c as a big-endian integer. The value is always below
// the group order.
func (c Challenge) Scalar() *dlog.Scalar {
	var k dlog.Scalar
	k.SetByteSlice(c[:])
	return &k
}

func (c Challenge) String() string {
	return hex.EncodeToString(c[:])
}

// MarshalText encodes c as hex.
func (c Challenge) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
