package sigma

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/pkg/dlog"
)

// ParseSigmaBooleanExpr reads a proposition written in the notation produced
// by SigmaBoolean.String, for example
//
//	anyOf(proveDlog(02..), allOf(proveDlog(03..), proveDlog(02..)))
//
// Whitespace between tokens is ignored. Conjectures must have at least two
// items.
func ParseSigmaBooleanExpr(s string) (SigmaBoolean, error) {
	p := &exprParser{src: s}
	sb, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return sb, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSerialization, "expression offset %d: "+format, append([]interface{}{p.pos}, args...)...)
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *exprParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// args parses "(" item ("," item)* ")" where item is read by next.
func (p *exprParser) args(next func() error) error {
	if err := p.expect('('); err != nil {
		return err
	}
	for {
		if err := next(); err != nil {
			return err
		}
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		return p.expect(')')
	}
}

func (p *exprParser) point() (*dlog.EcPoint, error) {
	tok := p.ident()
	pt, err := dlog.ParseEcPointHex(tok)
	if err != nil {
		return nil, errors.Wrapf(err, "expression offset %d", p.pos)
	}
	return pt, nil
}

func (p *exprParser) parse() (SigmaBoolean, error) {
	name := p.ident()
	switch name {
	case "sigmaProp":
		var v string
		err := p.args(func() error {
			if v != "" {
				return p.errorf("sigmaProp takes one argument")
			}
			v = p.ident()
			return nil
		})
		if err != nil {
			return nil, err
		}
		switch v {
		case "true":
			return TrivialTrue, nil
		case "false":
			return TrivialFalse, nil
		}
		return nil, p.errorf("sigmaProp argument %q is not a boolean", v)

	case "proveDlog":
		var h *dlog.EcPoint
		err := p.args(func() error {
			if h != nil {
				return p.errorf("proveDlog takes one argument")
			}
			var err error
			h, err = p.point()
			return err
		})
		if err != nil {
			return nil, err
		}
		return NewProveDlog(h), nil

	case "proveDHTuple":
		var pts []*dlog.EcPoint
		err := p.args(func() error {
			pt, err := p.point()
			pts = append(pts, pt)
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(pts) != 4 {
			return nil, p.errorf("proveDHTuple takes 4 arguments, got %d", len(pts))
		}
		return &ProveDhTuple{G: pts[0], H: pts[1], U: pts[2], V: pts[3]}, nil

	case "allOf", "anyOf":
		var items []SigmaBoolean
		err := p.args(func() error {
			item, err := p.parse()
			items = append(items, item)
			return err
		})
		if err != nil {
			return nil, err
		}
		if name == "allOf" {
			return NewCand(items...)
		}
		return NewCor(items...)

	case "":
		return nil, p.errorf("expected a proposition")
	}
	return nil, p.errorf("unknown proposition %q", name)
}
