// Package exprparser implements §4.2: a constrained precedence parser
// from a pre-cleaned infix string into an exprtree.Tree, the generalized
// descendant of the teacher's parseInput (which rejected everything but
// a fixed four-digit/token shape; this grammar accepts the full `+ - * /
// ( )` expression language but nothing else).
package exprparser

import (
	"strconv"
	"strings"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
)

type tokenKind int

const (
	tokNum tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	num  int
}

func syntaxErr(detail string) error {
	return engineerr.New(engineerr.Syntax, detail)
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j < len(s) && s[j] == '.' {
				return nil, syntaxErr("floating-point literals are not allowed")
			}
			n, err := strconv.Atoi(s[i:j])
			if err != nil {
				return nil, syntaxErr("invalid literal " + s[i:j])
			}
			toks = append(toks, token{kind: tokNum, num: n})
			i = j
		case c == '+':
			toks = append(toks, token{kind: tokPlus})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		default:
			return nil, syntaxErr("unsupported character " + string(c))
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
	cfg  config.Config
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// Parse converts a pre-cleaned infix string into an exprtree.Tree,
// rejecting anything §4.2 disallows.
func Parse(text string, cfg config.Config) (*exprtree.Tree, error) {
	if text == "" {
		return nil, syntaxErr("empty expression")
	}
	if strings.TrimSpace(text) != text || strings.ContainsAny(text, " \t\n\r") {
		return nil, syntaxErr("unexpected whitespace")
	}
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, cfg: cfg}
	tree, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, syntaxErr("trailing input")
	}
	return tree, nil
}

// parseExpr := term (('+' | '-') term)*
func (p *parser) parseExpr() (*exprtree.Tree, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left, err = exprtree.NewOp(exprtree.Add, left, right)
			if err != nil {
				return nil, err
			}
		case tokMinus:
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left, err = exprtree.NewOp(exprtree.Sub, left, right)
			if err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

// parseTerm := factor (('*' | '/') factor)*
func (p *parser) parseTerm() (*exprtree.Tree, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.advance()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left, err = exprtree.NewOp(exprtree.Mul, left, right)
			if err != nil {
				return nil, err
			}
		case tokSlash:
			p.advance()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left, err = exprtree.NewOp(exprtree.Div, left, right)
			if err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
	}
}

// parseFactor := NUMBER | '(' expr ')'
func (p *parser) parseFactor() (*exprtree.Tree, error) {
	t := p.peek()
	switch t.kind {
	case tokNum:
		p.advance()
		return exprtree.NewNum(t.num, p.cfg)
	case tokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, syntaxErr("unbalanced parentheses")
		}
		p.advance()
		return inner, nil
	default:
		return nil, syntaxErr("expected a number or '('")
	}
}
