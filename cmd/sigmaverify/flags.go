package main

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
	"github.com/mahdiidarabi/sigma-proofs/pkg/verifier"
)

const (
	LogLevelKey    = "log-level"
	MetricsKey     = "metrics"
	PropositionKey = "proposition"
	ProofKey       = "proof"
	MessageKey     = "message"
	CasesKey       = "cases"
	FormatKey      = "format"
	WorkersKey     = "workers"
	MaxProofKey    = "max-proof-size"
)

func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.String(LogLevelKey, "warn", "Log level (debug, info, warn, error)")
	flags.Bool(MetricsKey, false, "Print prometheus metrics to stderr after the command")
}

func AddProofFlags(flags *pflag.FlagSet) {
	flags.String(PropositionKey, "", "Proposition as hex or in allOf/anyOf/proveDlog notation (required)")
	flags.String(ProofKey, "", "Proof in hex (empty = no proof)")
}

func AddVerifyFlags(flags *pflag.FlagSet) {
	AddProofFlags(flags)
	flags.String(MessageKey, "", "Signed message in hex")
	flags.Int(MaxProofKey, verifier.DefaultMaxProofSize, "Largest accepted proof in bytes (0 = unlimited)")
}

func AddBatchFlags(flags *pflag.FlagSet) {
	flags.String(CasesKey, "", "Path to cases file (required)")
	flags.String(FormatKey, "json", "Cases file format (json or csv)")
	flags.Int(WorkersKey, 0, "Number of parallel workers (0 = auto-detect based on CPU cores)")
	flags.Int(MaxProofKey, verifier.DefaultMaxProofSize, "Largest accepted proof in bytes (0 = unlimited)")
}

type proofInput struct {
	Proposition sigma.SigmaBoolean
	Proof       sigma.ProofBytes
	Message     []byte
}

func parseProofFlags(flags *pflag.FlagSet) (*proofInput, error) {
	propStr, err := flags.GetString(PropositionKey)
	if err != nil {
		return nil, err
	}
	if propStr == "" {
		return nil, errors.Errorf("--%s is required", PropositionKey)
	}
	prop, err := verifier.ParseProposition(propStr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", PropositionKey)
	}

	proof, err := hexFlag(flags, ProofKey)
	if err != nil {
		return nil, err
	}
	in := &proofInput{Proposition: prop, Proof: sigma.ProofBytes(proof)}

	if flags.Lookup(MessageKey) != nil {
		in.Message, err = hexFlag(flags, MessageKey)
		if err != nil {
			return nil, err
		}
	}
	return in, nil
}

func hexFlag(flags *pflag.FlagSet, key string) ([]byte, error) {
	s, err := flags.GetString(key)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", key)
	}
	return b, nil
}

func parserFor(format string) (verifier.CaseParser, error) {
	switch strings.ToLower(format) {
	case "json":
		return &verifier.JSONParser{}, nil
	case "csv":
		return &verifier.CSVParser{}, nil
	}
	return nil, errors.Errorf("unknown --%s %q (json or csv)", FormatKey, format)
}
