// Package sigmatest builds valid proofs for tests and examples. Branches of
// an OR whose secret is unknown are simulated, so the prover only needs the
// secrets of one satisfying assignment.
package sigmatest

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
)

// Prover signs messages for propositions over a fixed set of secrets.
type Prover struct {
	secrets map[string]*dlog.Scalar
	rand    io.Reader
	scalars dlog.ScalarSource
}

// NewProver returns a prover that knows the given secrets. A nil rand uses
// crypto/rand.
func NewProver(rnd io.Reader, secrets ...*dlog.Scalar) *Prover {
	if rnd == nil {
		rnd = rand.Reader
	}
	p := &Prover{
		secrets: make(map[string]*dlog.Scalar, len(secrets)),
		rand:    rnd,
		scalars: dlog.NewReaderScalarSource(rnd),
	}
	for _, w := range secrets {
		p.secrets[dlog.PublicKey(w).String()] = w
	}
	return p
}

// NewKey draws a secret from src and returns it with its public key.
func NewKey(src dlog.ScalarSource) (*dlog.Scalar, *dlog.EcPoint, error) {
	w, err := dlog.RandomScalarInGroupRange(src)
	if err != nil {
		return nil, nil, err
	}
	return w, dlog.PublicKey(w), nil
}

type node struct {
	prop     sigma.SigmaBoolean
	real     bool
	children []*node

	challenge sigma.Challenge
	secret    *dlog.Scalar
	nonce     *dlog.Scalar
	a         *dlog.EcPoint
	z         *dlog.Scalar
}

// Prove returns a proof of prop bound to message. A trivially true
// proposition yields the empty proof.
func (p *Prover) Prove(prop sigma.SigmaBoolean, message []byte) (sigma.ProofBytes, error) {
	if t, ok := prop.(sigma.TrivialProp); ok {
		if !t.Value {
			return nil, errors.New("sigmatest: cannot prove a false proposition")
		}
		return nil, nil
	}
	root, err := p.mark(prop)
	if err != nil {
		return nil, err
	}
	if !root.real {
		return nil, errors.Errorf("sigmatest: no known secret satisfies %s", prop)
	}
	if err := p.commit(root); err != nil {
		return nil, err
	}
	tb, err := sigma.FiatShamirTreeToBytes(root.tree())
	if err != nil {
		return nil, err
	}
	e := sigma.FiatShamirHash(append(tb, message...))
	root.respond(e)
	return sigma.SerializeSig(root.tree())
}

func (p *Prover) mark(prop sigma.SigmaBoolean) (*node, error) {
	n := &node{prop: prop}
	switch sb := prop.(type) {
	case *sigma.ProveDlog:
		if sb == nil || sb.H == nil {
			return nil, errors.Wrap(sigma.ErrInvariantViolation, "proveDlog without a public key")
		}
		n.secret = p.secrets[sb.H.String()]
		n.real = n.secret != nil
	case *sigma.Cand:
		if len(sb.Items) < 2 {
			return nil, errors.Wrap(sigma.ErrInvariantViolation, "AND needs at least 2 items")
		}
		n.real = true
		for _, item := range sb.Items {
			c, err := p.mark(item)
			if err != nil {
				return nil, err
			}
			n.real = n.real && c.real
			n.children = append(n.children, c)
		}
	case *sigma.Cor:
		if len(sb.Items) < 2 {
			return nil, errors.Wrap(sigma.ErrInvariantViolation, "OR needs at least 2 items")
		}
		found := false
		for _, item := range sb.Items {
			c, err := p.mark(item)
			if err != nil {
				return nil, err
			}
			// one real branch per OR, the rest are simulated
			if c.real && found {
				c.makeSimulated()
			}
			found = found || c.real
			n.children = append(n.children, c)
		}
		n.real = found
	case *sigma.ProveDhTuple:
		return nil, errors.Wrap(sigma.ErrNotSupported, "proving proveDHTuple")
	default:
		return nil, errors.Wrapf(sigma.ErrInvariantViolation, "cannot prove %s", prop)
	}
	return n, nil
}

func (n *node) makeSimulated() {
	n.real = false
	for _, c := range n.children {
		c.makeSimulated()
	}
}

func (p *Prover) randomChallenge() (sigma.Challenge, error) {
	var c sigma.Challenge
	_, err := io.ReadFull(p.rand, c[:])
	return c, errors.Wrap(err, "sigmatest: reading challenge")
}

// commit computes the first message of every real leaf and simulates every
// unprovable subtree under a fresh random challenge.
func (p *Prover) commit(n *node) error {
	if !n.real {
		e, err := p.randomChallenge()
		if err != nil {
			return err
		}
		return p.simulate(n, e)
	}
	if len(n.children) == 0 {
		r, err := p.scalars.RandomScalar()
		if err != nil {
			return err
		}
		n.nonce = r
		n.a = dlog.PublicKey(r)
		return nil
	}
	for _, c := range n.children {
		if err := p.commit(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prover) simulate(n *node, e sigma.Challenge) error {
	n.challenge = e
	switch n.prop.(type) {
	case *sigma.ProveDlog:
		z, err := p.scalars.RandomScalar()
		if err != nil {
			return err
		}
		n.z = z
		n.a = sigma.SchnorrCommitment(n.prop.(*sigma.ProveDlog).H, e, z)
		return nil
	case *sigma.Cand:
		for _, c := range n.children {
			if err := p.simulate(c, e); err != nil {
				return err
			}
		}
		return nil
	}
	last := len(n.children) - 1
	rest := e
	for _, c := range n.children[:last] {
		ce, err := p.randomChallenge()
		if err != nil {
			return err
		}
		rest = rest.Xor(ce)
		if err := p.simulate(c, ce); err != nil {
			return err
		}
	}
	return p.simulate(n.children[last], rest)
}

// respond pushes the root challenge down the real nodes and computes the
// real responses z = r + e*w.
func (n *node) respond(e sigma.Challenge) {
	if !n.real {
		return
	}
	n.challenge = e
	switch n.prop.(type) {
	case *sigma.ProveDlog:
		var z dlog.Scalar
		z.Mul2(e.Scalar(), n.secret).Add(n.nonce)
		n.z = &z
	case *sigma.Cand:
		for _, c := range n.children {
			c.respond(e)
		}
	case *sigma.Cor:
		rest := e
		var proven *node
		for _, c := range n.children {
			if c.real {
				proven = c
				continue
			}
			rest = rest.Xor(c.challenge)
		}
		proven.respond(rest)
	}
}

func (n *node) tree() sigma.UncheckedSigmaTree {
	switch sb := n.prop.(type) {
	case *sigma.ProveDlog:
		leaf := &sigma.UncheckedSchnorr{
			Proposition:   sb,
			Challenge:     n.challenge,
			SecondMessage: sigma.SecondDlogProverMessage{Z: n.z},
		}
		if n.a != nil {
			leaf.CommitmentOpt = &sigma.FirstDlogProverMessage{A: n.a}
		}
		return leaf
	case *sigma.Cand:
		return &sigma.CandUnchecked{Challenge: n.challenge, Children: n.subtrees()}
	}
	return &sigma.CorUnchecked{Challenge: n.challenge, Children: n.subtrees()}
}

func (n *node) subtrees() []sigma.UncheckedSigmaTree {
	out := make([]sigma.UncheckedSigmaTree, len(n.children))
	for i, c := range n.children {
		out[i] = c.tree()
	}
	return out
}
