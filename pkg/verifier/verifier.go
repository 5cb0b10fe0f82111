package verifier

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
)

// Verify rebuilds the unchecked tree of proof against prop. It is the codec
// entry point: no algebra is checked. An empty proof yields sigma.NoProof.
func Verify(prop sigma.SigmaBoolean, proof sigma.ProofBytes) (sigma.UncheckedTree, error) {
	return sigma.ParseSigComputeChallenges(prop, proof)
}

// Verifier checks proofs end to end.
type Verifier struct {
	config Config
	log    *zap.Logger
}

// New creates a verifier. Zero fields of config keep their zero meaning;
// start from DefaultConfig for the defaults.
func New(config Config) *Verifier {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{config: config, log: log}
}

// Config returns the configuration the verifier was built with.
func (v *Verifier) Config() Config {
	return v.config
}

// VerifySignature reports whether proof is a valid signature of message
// under prop.
//
// Trivial propositions are decided without looking at the proof. For any
// other proposition an empty proof is invalid. A proof that cannot be parsed
// returns an error; a proof that parses but does not hash to its root
// challenge returns false.
func (v *Verifier) VerifySignature(prop sigma.SigmaBoolean, proof sigma.ProofBytes, message []byte) (bool, error) {
	valid, err := v.verify(prop, proof, message)
	v.config.Metrics.observe(len(proof), valid, err)
	switch {
	case err != nil:
		v.log.Warn("proof rejected",
			propositionField(prop),
			zap.Int("proofBytes", len(proof)),
			zap.String("kind", ErrorKind(err)),
			zap.Error(err),
		)
	case !valid:
		v.log.Debug("proof invalid",
			propositionField(prop),
			zap.Int("proofBytes", len(proof)),
		)
	}
	return valid, err
}

func (v *Verifier) verify(prop sigma.SigmaBoolean, proof sigma.ProofBytes, message []byte) (bool, error) {
	if prop == nil {
		return false, errors.Wrap(sigma.ErrInvariantViolation, "nil proposition")
	}
	if t, ok := prop.(sigma.TrivialProp); ok {
		return t.Value, nil
	}
	if proof.IsEmpty() {
		return false, nil
	}
	if limit := v.config.MaxProofSize; limit > 0 && len(proof) > limit {
		return false, errors.Wrapf(ErrProofTooLarge, "%d bytes, limit %d", len(proof), limit)
	}

	parsed, err := sigma.ParseSigComputeChallenges(prop, proof)
	if err != nil {
		return false, err
	}
	tree, ok := parsed.(sigma.UncheckedSigmaTree)
	if !ok {
		return false, nil
	}
	v.log.Debug("proof parsed",
		propositionField(prop),
		zap.Stringer("challenge", sigma.ChallengeOf(tree)),
	)

	withCommitments, err := sigma.ComputeCommitments(tree)
	if err != nil {
		return false, err
	}
	treeBytes, err := sigma.FiatShamirTreeToBytes(withCommitments)
	if err != nil {
		return false, err
	}
	expected := sigma.FiatShamirHash(append(treeBytes, message...))
	return expected.Equal(sigma.ChallengeOf(tree)), nil
}

func propositionField(prop sigma.SigmaBoolean) zap.Field {
	if prop == nil {
		return zap.String("proposition", "<nil>")
	}
	return zap.Stringer("proposition", prop)
}
