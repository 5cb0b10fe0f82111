package sigma

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// OpCode tags a serialized proposition node.
type OpCode byte

// Proposition opcodes, in the script language opcode space.
const (
	OpSigmaAnd         OpCode = 0x96
	OpSigmaOr          OpCode = 0x97
	OpTrivialPropFalse OpCode = 0x9E
	OpTrivialPropTrue  OpCode = 0x9F
	OpProveDlog        OpCode = 0xCD
	OpProveDhTuple     OpCode = 0xCE
)

// SigmaBoolean is a proposition tree: knowledge statements composed with
// AND and OR. It is a closed sum type; the variants are TrivialProp,
// *ProveDlog, *ProveDhTuple, *Cand and *Cor.
type SigmaBoolean interface {
	OpCode() OpCode
	String() string
	sigmaBoolean()
}

// ProofOfKnowledge is a leaf knowledge statement.
type ProofOfKnowledge interface {
	SigmaBoolean
	proofOfKnowledge()
}

// SigmaConjecture is an internal AND/OR node.
type SigmaConjecture interface {
	SigmaBoolean
	Children() []SigmaBoolean
	conjecture()
}

// TrivialProp is a statically true or false proposition. It is resolved
// before proof parsing and never has a proof of its own.
type TrivialProp struct {
	Value bool
}

// TrivialTrue and TrivialFalse are the two trivial propositions.
var (
	TrivialTrue  = TrivialProp{Value: true}
	TrivialFalse = TrivialProp{Value: false}
)

func (t TrivialProp) OpCode() OpCode {
	if t.Value {
		return OpTrivialPropTrue
	}
	return OpTrivialPropFalse
}

func (t TrivialProp) String() string {
	return fmt.Sprintf("sigmaProp(%t)", t.Value)
}

func (TrivialProp) sigmaBoolean() {}

// ProveDlog states knowledge of w such that H = g^w.
type ProveDlog struct {
	H *dlog.EcPoint
}

// NewProveDlog returns the statement "knows the discrete log of h".
func NewProveDlog(h *dlog.EcPoint) *ProveDlog {
	return &ProveDlog{H: h}
}

func (*ProveDlog) OpCode() OpCode { return OpProveDlog }

func (p *ProveDlog) String() string {
	return fmt.Sprintf("proveDlog(%s)", p.H)
}

func (*ProveDlog) sigmaBoolean()     {}
func (*ProveDlog) proofOfKnowledge() {}

// ProveDhTuple states knowledge of w such that U = G^w and V = H^w.
// Proofs for it are not supported yet.
type ProveDhTuple struct {
	G, H, U, V *dlog.EcPoint
}

func (*ProveDhTuple) OpCode() OpCode { return OpProveDhTuple }

func (p *ProveDhTuple) String() string {
	return fmt.Sprintf("proveDHTuple(%s, %s, %s, %s)", p.G, p.H, p.U, p.V)
}

func (*ProveDhTuple) sigmaBoolean()     {}
func (*ProveDhTuple) proofOfKnowledge() {}

// Cand holds when all of its items hold.
type Cand struct {
	Items []SigmaBoolean
}

// Cor holds when at least one of its items holds.
type Cor struct {
	Items []SigmaBoolean
}

// NewCand returns the conjunction of items. Item order is significant: it
// fixes the proof byte layout.
func NewCand(items ...SigmaBoolean) (*Cand, error) {
	if err := checkItems(items); err != nil {
		return nil, err
	}
	return &Cand{Items: items}, nil
}

// NewCor returns the disjunction of items. Item order is significant: it
// fixes the proof byte layout.
func NewCor(items ...SigmaBoolean) (*Cor, error) {
	if err := checkItems(items); err != nil {
		return nil, err
	}
	return &Cor{Items: items}, nil
}

func checkItems(items []SigmaBoolean) error {
	if len(items) < 2 {
		return errors.Wrapf(ErrInvariantViolation, "conjecture needs at least 2 items, got %d", len(items))
	}
	for i, it := range items {
		if it == nil {
			return errors.Wrapf(ErrInvariantViolation, "conjecture item %d is nil", i)
		}
	}
	return nil
}

func (*Cand) OpCode() OpCode { return OpSigmaAnd }
func (*Cor) OpCode() OpCode  { return OpSigmaOr }

func (c *Cand) Children() []SigmaBoolean { return c.Items }
func (c *Cor) Children() []SigmaBoolean  { return c.Items }

func (c *Cand) String() string { return "allOf(" + joinItems(c.Items) + ")" }
func (c *Cor) String() string  { return "anyOf(" + joinItems(c.Items) + ")" }

func (*Cand) sigmaBoolean() {}
func (*Cand) conjecture()   {}
func (*Cor) sigmaBoolean()  {}
func (*Cor) conjecture()    {}

func joinItems(items []SigmaBoolean) string {
	parts := make([]string, len(items))
	for i, it := range items {
		if it == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
