package dlog

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
)

const (
	// GroupSize is the number of bytes of an encoded group element.
	GroupSize = 33

	// ScalarSize is the number of bytes of an encoded scalar.
	ScalarSize = 32
)

// ErrDecoding is returned when bytes do not decode to a group element or a
// canonical scalar.
var ErrDecoding = errors.New("dlog: decoding error")

// Secp256k1CurveOrder is the order of the secp256k1 curve
var Secp256k1CurveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// Scalar is an integer modulo the group order.
type Scalar = secp256k1.ModNScalar

// EcPoint is an element of the secp256k1 group. Values are kept in affine
// form, with the identity stored as the all-zero point.
type EcPoint struct {
	p secp256k1.JacobianPoint
}

func isInfinity(p *secp256k1.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

func fromJacobian(j *secp256k1.JacobianPoint) *EcPoint {
	var e EcPoint
	if isInfinity(j) {
		return &e
	}
	e.p.Set(j)
	e.p.ToAffine()
	return &e
}

// Generator returns the fixed generator g of the group.
func Generator() *EcPoint {
	var one Scalar
	one.SetInt(1)
	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &j)
	return fromJacobian(&j)
}

// Identity returns the neutral element (the point at infinity).
func Identity() *EcPoint {
	return &EcPoint{}
}

// IsIdentity reports whether p is the neutral element.
func IsIdentity(p *EcPoint) bool {
	return isInfinity(&p.p)
}

// Inverse returns p^-1, the negation of p on the curve.
func Inverse(p *EcPoint) *EcPoint {
	if IsIdentity(p) {
		return Identity()
	}
	var e EcPoint
	e.p.Set(&p.p)
	e.p.Y.Negate(1).Normalize()
	return &e
}

// Multiply returns a*b, the group operation (point addition).
func Multiply(a, b *EcPoint) *EcPoint {
	var j secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.p, &b.p, &j)
	return fromJacobian(&j)
}

// Exponentiate returns base^k. The identity raised to any power is the
// identity, so it is returned without touching the curve arithmetic.
func Exponentiate(base *EcPoint, k *Scalar) *EcPoint {
	if IsIdentity(base) {
		return base
	}
	var j secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(k, &base.p, &j)
	return fromJacobian(&j)
}

// PublicKey returns g^w, the public image of secret w.
func PublicKey(w *Scalar) *EcPoint {
	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(w, &j)
	return fromJacobian(&j)
}

// Equal reports whether p and q are the same group element.
func (p *EcPoint) Equal(q *EcPoint) bool {
	if IsIdentity(p) || IsIdentity(q) {
		return IsIdentity(p) && IsIdentity(q)
	}
	return p.p.X.Equals(&q.p.X) && p.p.Y.Equals(&q.p.Y)
}

// Bytes returns the GroupSize-byte encoding of p.
func (p *EcPoint) Bytes() []byte {
	if IsIdentity(p) {
		return make([]byte, GroupSize)
	}
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y).SerializeCompressed()
}

// String returns the hex encoding of p.
func (p *EcPoint) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Serialize appends the encoding of p to w.
func (p *EcPoint) Serialize(w *wire.Writer) {
	w.PutBytes(p.Bytes())
}

// ReadEcPoint reads exactly GroupSize bytes from r and decodes them.
func ReadEcPoint(r *wire.Reader) (*EcPoint, error) {
	var buf [GroupSize]byte
	if err := r.ReadInto(buf[:]); err != nil {
		return nil, errors.Wrap(err, "reading group element")
	}
	return ParseEcPoint(buf[:])
}

// ParseEcPoint decodes a GroupSize-byte encoding. A leading zero byte
// denotes the identity.
func ParseEcPoint(b []byte) (*EcPoint, error) {
	if len(b) != GroupSize {
		return nil, errors.Wrapf(ErrDecoding, "group element must be %d bytes, got %d", GroupSize, len(b))
	}
	if b[0] == 0 {
		return Identity(), nil
	}
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrapf(ErrDecoding, "failed to parse PK from bytes: %v", err)
	}
	var e EcPoint
	pk.AsJacobian(&e.p)
	return &e, nil
}

// ParseEcPointHex decodes a hex (base16) encoded group element.
func ParseEcPointHex(s string) (*EcPoint, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(ErrDecoding, "invalid hex: %v", err)
	}
	return ParseEcPoint(b)
}
