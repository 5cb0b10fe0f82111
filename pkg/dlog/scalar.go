package dlog

import (
	"crypto/rand"
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
)

// maxRejections bounds rejection sampling. A uniform 256-bit draw lands
// above the secp256k1 order with probability below 2^-127.
const maxRejections = 64

// ScalarSource supplies uniformly random scalars in [0, n).
// Implementations must be safe for concurrent use.
type ScalarSource interface {
	RandomScalar() (*Scalar, error)
}

type readerScalarSource struct {
	mu sync.Mutex
	r  io.Reader
}

// NewReaderScalarSource returns a ScalarSource that rejection-samples
// ScalarSize-byte draws from r. Reads are serialized, so r itself need not be
// safe for concurrent use.
func NewReaderScalarSource(r io.Reader) ScalarSource {
	return &readerScalarSource{r: r}
}

// DefaultScalarSource draws from crypto/rand.
var DefaultScalarSource = NewReaderScalarSource(rand.Reader)

func (s *readerScalarSource) RandomScalar() (*Scalar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf [ScalarSize]byte
	for i := 0; i < maxRejections; i++ {
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			return nil, errors.Wrap(err, "dlog: reading randomness")
		}
		var k Scalar
		if overflow := k.SetBytes(&buf); overflow == 0 {
			return &k, nil
		}
	}
	return nil, errors.New("dlog: random source produced no value below the group order")
}

// RandomScalarInGroupRange draws a scalar in [0, n) from src, or from
// DefaultScalarSource when src is nil.
func RandomScalarInGroupRange(src ScalarSource) (*Scalar, error) {
	if src == nil {
		src = DefaultScalarSource
	}
	return src.RandomScalar()
}

// ScalarToBytes returns the canonical big-endian encoding of k.
func ScalarToBytes(k *Scalar) []byte {
	b := k.Bytes()
	return b[:]
}

// ScalarFromBytes decodes a canonical ScalarSize-byte big-endian scalar.
// Values at or above the group order are rejected.
func ScalarFromBytes(b []byte) (*Scalar, error) {
	if len(b) != ScalarSize {
		return nil, errors.Wrapf(ErrDecoding, "scalar must be %d bytes, got %d", ScalarSize, len(b))
	}
	var k Scalar
	if overflow := k.SetByteSlice(b); overflow {
		return nil, errors.Wrap(ErrDecoding, "scalar is not below the group order")
	}
	return &k, nil
}

// ReadScalar reads exactly ScalarSize bytes from r and decodes them.
func ReadScalar(r *wire.Reader) (*Scalar, error) {
	b, err := r.ReadExact(ScalarSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading scalar")
	}
	return ScalarFromBytes(b)
}

// ScalarFromShortBytes interprets b, at most ScalarSize bytes, as a
// big-endian integer. Inputs shorter than ScalarSize never overflow.
func ScalarFromShortBytes(b []byte) (*Scalar, error) {
	if len(b) > ScalarSize {
		return nil, errors.Wrapf(ErrDecoding, "scalar input is %d bytes", len(b))
	}
	var k Scalar
	if overflow := k.SetByteSlice(b); overflow {
		return nil, errors.Wrap(ErrDecoding, "scalar is not below the group order")
	}
	return &k, nil
}

// ScalarFromBigInt converts x in [0, n) to a scalar.
func ScalarFromBigInt(x *big.Int) (*Scalar, error) {
	if x.Sign() < 0 || x.Cmp(Secp256k1CurveOrder) >= 0 {
		return nil, errors.Wrap(ErrDecoding, "scalar out of valid range")
	}
	var buf [ScalarSize]byte
	x.FillBytes(buf[:])
	var k Scalar
	k.SetBytes(&buf)
	return &k, nil
}

// ScalarToBigInt converts k to a big integer.
func ScalarToBigInt(k *Scalar) *big.Int {
	b := k.Bytes()
	return new(big.Int).SetBytes(b[:])
}
