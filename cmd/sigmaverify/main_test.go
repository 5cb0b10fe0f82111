package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
	"github.com/mahdiidarabi/sigma-proofs/pkg/verifier"
)

const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestParseProofFlags(t *testing.T) {
	flags := pflag.NewFlagSet("verify", pflag.ContinueOnError)
	AddVerifyFlags(flags)
	require.NoError(t, flags.Parse([]string{
		"--proposition", "proveDlog(" + generatorHex + ")",
		"--proof", "0x00ff",
		"--message", "cafe",
	}))

	in, err := parseProofFlags(flags)
	require.NoError(t, err)
	require.IsType(t, &sigma.ProveDlog{}, in.Proposition)
	require.Equal(t, sigma.ProofBytes{0x00, 0xff}, in.Proof)
	require.Equal(t, []byte{0xca, 0xfe}, in.Message)
}

func TestParseProofFlags_Errors(t *testing.T) {
	tests := [][]string{
		{},
		{"--proposition", "cd00"},
		{"--proposition", "9f", "--proof", "xyz"},
	}
	for _, args := range tests {
		flags := pflag.NewFlagSet("parse", pflag.ContinueOnError)
		AddProofFlags(flags)
		require.NoError(t, flags.Parse(args))
		_, err := parseProofFlags(flags)
		require.Error(t, err, "%v", args)
	}
}

func TestParserFor(t *testing.T) {
	p, err := parserFor("JSON")
	require.NoError(t, err)
	require.IsType(t, &verifier.JSONParser{}, p)

	p, err = parserFor("csv")
	require.NoError(t, err)
	require.IsType(t, &verifier.CSVParser{}, p)

	_, err = parserFor("yaml")
	require.Error(t, err)
}

func TestViewOf(t *testing.T) {
	require.Equal(t, "noProof", viewOf(sigma.NoProof{}).Type)

	var z dlog.Scalar
	z.SetInt(7)
	c := sigma.Challenge{1}
	leaf := &sigma.UncheckedSchnorr{
		Proposition:   sigma.NewProveDlog(dlog.Generator()),
		Challenge:     c,
		SecondMessage: sigma.SecondDlogProverMessage{Z: &z},
	}
	tree := &sigma.CorUnchecked{Challenge: c, Children: []sigma.UncheckedSigmaTree{leaf, leaf}}

	v := viewOf(tree)
	require.Equal(t, "or", v.Type)
	require.Equal(t, c.String(), v.Challenge)
	require.Len(t, v.Children, 2)
	require.Equal(t, "schnorr", v.Children[0].Type)
	require.Equal(t, "proveDlog("+generatorHex+")", v.Children[0].Proposition)
	require.Equal(t, "0000000000000000000000000000000000000000000000000000000000000007", v.Children[1].Response)
}
