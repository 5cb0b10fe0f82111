// Package dlog implements the discrete logarithm group used by the Sigma
// protocol layer: the secp256k1 curve, written multiplicatively.
//
// Following the Dlog-group convention, point addition is called
// multiplication and scalar multiplication is called exponentiation:
//
//	g^x      = Exponentiate(Generator(), x)
//	a * b    = Multiply(a, b)
//	a^-1     = Inverse(a)
//
// # Wire format
//
// Every group element encodes to exactly GroupSize (33) bytes. The identity
// element is encoded as 33 zero bytes, which is not a valid SEC1 point, and
// every other element uses the SEC1 compressed encoding (0x02 or 0x03
// followed by the X coordinate). Parsing treats a leading zero byte as the
// identity and otherwise requires a point on the curve.
//
// Scalars encode to ScalarSize (32) bytes, big-endian, and must be reduced
// modulo the group order.
//
// # Randomness
//
// Random scalars are drawn from a ScalarSource. DefaultScalarSource reads
// crypto/rand; tests can inject a deterministic source with
// NewReaderScalarSource.
package dlog
