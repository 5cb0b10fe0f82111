package sigma

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/sigma-proofs/internal/wire"
	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

func challengeOf(b byte) Challenge {
	var c Challenge
	for i := range c {
		c[i] = b + byte(i)
	}
	return c
}

func TestChallenge_Xor(t *testing.T) {
	a := challengeOf(0x10)
	b := challengeOf(0xa0)

	x := a.Xor(b)
	for i := range x {
		require.Equal(t, a[i]^b[i], x[i])
	}
	require.Equal(t, a, x.Xor(b))
	require.Equal(t, Challenge{}, a.Xor(a))
	require.True(t, a.Xor(Challenge{}).Equal(a))
}

func TestChallenge_FromBytes(t *testing.T) {
	c, err := ChallengeFromBytes(bytes.Repeat([]byte{7}, SoundnessBytes))
	require.NoError(t, err)
	require.Equal(t, byte(7), c[SoundnessBytes-1])

	_, err = ChallengeFromBytes(make([]byte, SoundnessBytes-1))
	require.True(t, errors.Is(err, ErrSerialization))
}

func TestChallenge_ReadSerialize(t *testing.T) {
	c := challengeOf(1)
	w := wire.NewWriter()
	c.Serialize(w)
	require.Equal(t, SoundnessBytes, w.Len())

	r := wire.NewReader(w.Bytes())
	got, err := ReadChallenge(r)
	require.NoError(t, err)
	require.Equal(t, c, got)

	_, err = ReadChallenge(wire.NewReader(make([]byte, 3)))
	require.True(t, errors.Is(err, ErrShortRead))
}

func TestChallenge_Text(t *testing.T) {
	c := challengeOf(0)
	require.Equal(t, "000102030405060708090a0b0c0d0e0f1011121314151617", c.String())

	text, err := c.MarshalText()
	require.NoError(t, err)
	require.Equal(t, c.String(), string(text))
}

func TestChallenge_Scalar(t *testing.T) {
	var c Challenge
	c[SoundnessBytes-1] = 5
	k := c.Scalar()

	var five dlog.Scalar
	five.SetInt(5)
	require.True(t, k.Equals(&five))
	require.False(t, k.IsZero())
	require.True(t, Challenge{}.Scalar().IsZero())
}
