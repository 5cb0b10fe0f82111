package dlog

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
)

const (
	generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	twoGHex      = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
)

func scalarFromInt(v uint32) *Scalar {
	var k Scalar
	k.SetInt(v)
	return &k
}

func TestGenerator_Encoding(t *testing.T) {
	g := Generator()
	b := g.Bytes()

	require.Len(t, b, GroupSize)
	require.Contains(t, []byte{0x02, 0x03}, b[0])
	require.Equal(t, generatorHex, hex.EncodeToString(b))
	require.Equal(t, generatorHex, g.String())
}

func TestIdentity_Encoding(t *testing.T) {
	b := Identity().Bytes()
	require.Equal(t, make([]byte, GroupSize), b)
	require.True(t, IsIdentity(Identity()))
	require.False(t, IsIdentity(Generator()))
}

func TestEcPoint_RoundTrip(t *testing.T) {
	points := []*EcPoint{
		Generator(),
		Identity(),
		Exponentiate(Generator(), scalarFromInt(2)),
		Exponentiate(Generator(), scalarFromInt(123456789)),
		Inverse(Generator()),
	}

	for _, p := range points {
		t.Run(p.String(), func(t *testing.T) {
			parsed, err := ParseEcPoint(p.Bytes())
			require.NoError(t, err)
			require.True(t, parsed.Equal(p))

			w := wire.NewWriter()
			p.Serialize(w)
			read, err := ReadEcPoint(wire.NewReader(w.Bytes()))
			require.NoError(t, err)
			require.True(t, read.Equal(p))
		})
	}
}

func TestExponentiate(t *testing.T) {
	g := Generator()

	require.Equal(t, twoGHex, Exponentiate(g, scalarFromInt(2)).String())
	require.True(t, Exponentiate(g, scalarFromInt(2)).Equal(Multiply(g, g)))
	require.True(t, Exponentiate(g, scalarFromInt(1)).Equal(g))
	require.True(t, IsIdentity(Exponentiate(g, scalarFromInt(0))))

	// identity short-circuits
	id := Identity()
	require.Same(t, id, Exponentiate(id, scalarFromInt(7)))
}

func TestInverse(t *testing.T) {
	g := Generator()
	inv := Inverse(g)

	require.False(t, inv.Equal(g))
	require.True(t, IsIdentity(Multiply(g, inv)))
	require.True(t, Inverse(inv).Equal(g))
	require.True(t, IsIdentity(Inverse(Identity())))

	// the identity is neutral for multiplication
	require.True(t, Multiply(g, Identity()).Equal(g))
	require.True(t, Multiply(Identity(), g).Equal(g))
}

func TestPublicKey(t *testing.T) {
	w := scalarFromInt(42)
	require.True(t, PublicKey(w).Equal(Exponentiate(Generator(), w)))
}

func TestParseEcPoint_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"too short", make([]byte, GroupSize-1)},
		{"too long", make([]byte, GroupSize+1)},
		{"x not in field", append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...)},
		{"bad prefix", append([]byte{0x05}, Generator().Bytes()[1:]...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEcPoint(tt.in)
			require.True(t, errors.Is(err, ErrDecoding), "got %v", err)
		})
	}
}

func TestParseEcPoint_ZeroPrefixIsIdentity(t *testing.T) {
	// Only the first byte selects the identity encoding.
	b := make([]byte, GroupSize)
	b[5] = 1
	p, err := ParseEcPoint(b)
	require.NoError(t, err)
	require.True(t, IsIdentity(p))
}

func TestReadEcPoint_ShortRead(t *testing.T) {
	_, err := ReadEcPoint(wire.NewReader(Generator().Bytes()[:20]))
	require.True(t, errors.Is(err, wire.ErrShortRead))
}

func TestParseEcPointHex(t *testing.T) {
	p, err := ParseEcPointHex("0x" + generatorHex)
	require.NoError(t, err)
	require.True(t, p.Equal(Generator()))

	_, err = ParseEcPointHex("zz")
	require.True(t, errors.Is(err, ErrDecoding))
}

func TestScalarSource_Deterministic(t *testing.T) {
	// The first draw overflows the group order and must be rejected.
	one := make([]byte, ScalarSize)
	one[ScalarSize-1] = 1
	src := NewReaderScalarSource(bytes.NewReader(append(bytes.Repeat([]byte{0xff}, ScalarSize), one...)))

	k, err := RandomScalarInGroupRange(src)
	require.NoError(t, err)
	require.True(t, k.Equals(scalarFromInt(1)))

	_, err = src.RandomScalar()
	require.Error(t, err)
}

func TestDefaultScalarSource_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Scalar, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = RandomScalarInGroupRange(nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	for i := 1; i < len(results); i++ {
		require.False(t, results[i].Equals(results[0]))
	}
}

func TestScalarEncoding(t *testing.T) {
	k := scalarFromInt(0x0102)
	b := ScalarToBytes(k)
	require.Len(t, b, ScalarSize)
	require.Equal(t, byte(0x01), b[ScalarSize-2])
	require.Equal(t, byte(0x02), b[ScalarSize-1])

	back, err := ScalarFromBytes(b)
	require.NoError(t, err)
	require.True(t, back.Equals(k))

	_, err = ScalarFromBytes(bytes.Repeat([]byte{0xff}, ScalarSize))
	require.True(t, errors.Is(err, ErrDecoding))

	_, err = ScalarFromBytes([]byte{1})
	require.True(t, errors.Is(err, ErrDecoding))

	short, err := ScalarFromShortBytes([]byte{0x01, 0x02})
	require.NoError(t, err)
	require.True(t, short.Equals(k))
}

func TestScalarBigInt(t *testing.T) {
	x := big.NewInt(987654321)
	k, err := ScalarFromBigInt(x)
	require.NoError(t, err)
	require.Equal(t, 0, ScalarToBigInt(k).Cmp(x))

	_, err = ScalarFromBigInt(Secp256k1CurveOrder)
	require.True(t, errors.Is(err, ErrDecoding))

	_, err = ScalarFromBigInt(big.NewInt(-1))
	require.True(t, errors.Is(err, ErrDecoding))
}
