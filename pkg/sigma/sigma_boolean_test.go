package sigma

import (
	"encoding/hex"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func secret(v uint32) *dlog.Scalar {
	var k dlog.Scalar
	k.SetInt(v)
	return &k
}

func dlogOf(v uint32) *ProveDlog {
	return NewProveDlog(dlog.PublicKey(secret(v)))
}

func TestNewCand_RequiresTwoItems(t *testing.T) {
	_, err := NewCand(dlogOf(1))
	require.True(t, errors.Is(err, ErrInvariantViolation))

	_, err = NewCor()
	require.True(t, errors.Is(err, ErrInvariantViolation))

	_, err = NewCor(dlogOf(1), nil)
	require.True(t, errors.Is(err, ErrInvariantViolation))

	and, err := NewCand(dlogOf(1), dlogOf(2))
	require.NoError(t, err)
	require.Len(t, and.Children(), 2)
	require.Equal(t, OpSigmaAnd, and.OpCode())
}

func TestSigmaBoolean_String(t *testing.T) {
	g := NewProveDlog(dlog.Generator())
	or, err := NewCor(g, TrivialTrue)
	require.NoError(t, err)
	and, err := NewCand(or, TrivialFalse)
	require.NoError(t, err)

	require.Equal(t, "proveDlog("+generatorHex+")", g.String())
	require.Equal(t,
		"allOf(anyOf(proveDlog("+generatorHex+"), sigmaProp(true)), sigmaProp(false))",
		and.String())
}

func TestSerializeSigmaBoolean_ProveDlog(t *testing.T) {
	b, err := SigmaBooleanBytes(NewProveDlog(dlog.Generator()))
	require.NoError(t, err)
	require.Equal(t, "cd"+generatorHex, hex.EncodeToString(b))

	parsed, err := ParseSigmaBoolean(b)
	require.NoError(t, err)
	require.IsType(t, &ProveDlog{}, parsed)
	require.True(t, parsed.(*ProveDlog).H.Equal(dlog.Generator()))
}

func TestSerializeSigmaBoolean_Trivial(t *testing.T) {
	for _, tp := range []TrivialProp{TrivialTrue, TrivialFalse} {
		b, err := SigmaBooleanBytes(tp)
		require.NoError(t, err)
		require.Equal(t, []byte{byte(tp.OpCode())}, b)

		parsed, err := ParseSigmaBoolean(b)
		require.NoError(t, err)
		require.Equal(t, tp, parsed)
	}
}

func TestSerializeSigmaBoolean_NotSupported(t *testing.T) {
	g := dlog.Generator()
	and, err := NewCand(dlogOf(1), dlogOf(2))
	require.NoError(t, err)
	or, err := NewCor(dlogOf(1), dlogOf(2))
	require.NoError(t, err)

	tests := []SigmaBoolean{
		&ProveDhTuple{G: g, H: g, U: g, V: g},
		and,
		or,
	}
	for _, sb := range tests {
		w := wire.NewWriter()
		err := SerializeSigmaBoolean(w, sb)
		require.True(t, errors.Is(err, ErrNotSupported), "%s: %v", sb, err)
		require.Zero(t, w.Len())
	}
}

func TestParseSigmaBoolean_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrShortRead},
		{"unknown opcode", []byte{0x01}, ErrSerialization},
		{"dh tuple", []byte{byte(OpProveDhTuple)}, ErrNotSupported},
		{"and", []byte{byte(OpSigmaAnd)}, ErrNotSupported},
		{"or", []byte{byte(OpSigmaOr)}, ErrNotSupported},
		{"truncated point", []byte{byte(OpProveDlog), 0x02, 0x79}, ErrShortRead},
		{"trailing bytes", []byte{byte(OpTrivialPropTrue), 0x00}, ErrSerialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSigmaBoolean(tt.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseSigmaBoolean_InvalidPoint(t *testing.T) {
	b := make([]byte, 1+dlog.GroupSize)
	b[0] = byte(OpProveDlog)
	b[1] = 0x02
	for i := 2; i < len(b); i++ {
		b[i] = 0xff
	}
	_, err := ParseSigmaBoolean(b)
	require.True(t, errors.Is(err, ErrDecoding), "got %v", err)
}

func TestParseSigmaBooleanExpr(t *testing.T) {
	or, err := NewCor(dlogOf(1), dlogOf(2), dlogOf(3))
	require.NoError(t, err)
	and, err := NewCand(or, dlogOf(4))
	require.NoError(t, err)

	props := []SigmaBoolean{
		TrivialTrue,
		TrivialFalse,
		dlogOf(7),
		NewProveDlog(dlog.Identity()),
		or,
		and,
		&ProveDhTuple{G: dlog.Generator(), H: dlogOf(2).H, U: dlogOf(3).H, V: dlogOf(6).H},
	}
	for _, sb := range props {
		t.Run(sb.String(), func(t *testing.T) {
			parsed, err := ParseSigmaBooleanExpr(sb.String())
			require.NoError(t, err)
			require.Equal(t, sb.String(), parsed.String())
		})
	}
}

func TestParseSigmaBooleanExpr_Whitespace(t *testing.T) {
	src := "anyOf(\n  proveDlog(" + generatorHex + "),\n  sigmaProp( false )\n)"
	sb, err := ParseSigmaBooleanExpr(src)
	require.NoError(t, err)
	require.IsType(t, &Cor{}, sb)
	require.Len(t, sb.(*Cor).Items, 2)
}

func TestParseSigmaBooleanExpr_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrSerialization},
		{"unknown", "noneOf(sigmaProp(true), sigmaProp(true))", ErrSerialization},
		{"single item", "allOf(sigmaProp(true))", ErrInvariantViolation},
		{"unclosed", "anyOf(sigmaProp(true), sigmaProp(false)", ErrSerialization},
		{"trailing", "sigmaProp(true) x", ErrSerialization},
		{"not a bool", "sigmaProp(yes)", ErrSerialization},
		{"bad point", "proveDlog(02ff)", ErrDecoding},
		{"bad hex", "proveDlog(zz)", ErrDecoding},
		{"two keys", "proveDlog(" + generatorHex + ", " + generatorHex + ")", ErrSerialization},
		{"short tuple", "proveDHTuple(" + generatorHex + ")", ErrSerialization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSigmaBooleanExpr(tt.src)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
