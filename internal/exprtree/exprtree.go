// Package exprtree implements the immutable-ish binary expression tree of
// §3/§4.1: a Num/Op tagged tree over exact rationals, with canonical-key
// derivation, minimal-parenthesis pretty-printing, and sign
// normalization. Its canonical-key/seen-set dedupe pattern is the direct
// descendant of the teacher's getCanonicalKey/collectOperands.
package exprtree

import (
	"fmt"
	"strings"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

// OpKind enumerates the four allowed operators.
type OpKind int

const (
	Add OpKind = iota
	Sub
	Mul
	Div
)

// Symbol renders the operator the way canonical keys and pretty-printing
// need it.
func (k OpKind) Symbol() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// Tree is a Num leaf or an Op node. A Tree is never mutated after
// construction; rewrites build fresh nodes along the changed path rather
// than mutate existing ones. Children are not exclusively owned: the
// enumerator, the rewrite rules and SignNormalize reuse unchanged
// subtrees under several parents.
type Tree struct {
	isOp  bool
	lit   int
	op    OpKind
	left  *Tree
	right *Tree
	value *rational.Rational
}

// NewNum builds a literal leaf, failing with BadLiteral if n is outside
// [0, cfg.MaxLiteral].
func NewNum(n int, cfg config.Config) (*Tree, error) {
	if n < 0 || n > cfg.MaxLiteral {
		return nil, engineerr.New(engineerr.BadLiteral, fmt.Sprintf("literal %d out of range [0, %d]", n, cfg.MaxLiteral))
	}
	return &Tree{lit: n, value: rational.FromInt(n)}, nil
}

// NewOp builds an Op node, computing and caching its value from the
// children's already-cached values. Fails with DivByZero if kind is Div
// and the right child's cached value is zero.
func NewOp(kind OpKind, left, right *Tree) (*Tree, error) {
	var v *rational.Rational
	switch kind {
	case Add:
		v = rational.Add(left.value, right.value)
	case Sub:
		v = rational.Sub(left.value, right.value)
	case Mul:
		v = rational.Mul(left.value, right.value)
	case Div:
		q, err := rational.Div(left.value, right.value)
		if err != nil {
			return nil, err
		}
		v = q
	default:
		return nil, engineerr.New(engineerr.BadArguments, "unknown operator kind")
	}
	return &Tree{isOp: true, op: kind, left: left, right: right, value: v}, nil
}

// IsOp reports whether t is an Op node (false means Num leaf).
func (t *Tree) IsOp() bool { return t.isOp }

// Op returns the operator kind; only valid when IsOp() is true.
func (t *Tree) Op() OpKind { return t.op }

// Literal returns the leaf's literal value; only valid when IsOp() is
// false.
func (t *Tree) Literal() int { return t.lit }

// Left returns the left child; only valid when IsOp() is true.
func (t *Tree) Left() *Tree { return t.left }

// Right returns the right child; only valid when IsOp() is true.
func (t *Tree) Right() *Tree { return t.right }

// Value returns the cached Rational value (the same pointer; callers
// must not mutate it).
func (t *Tree) Value() *rational.Rational { return t.value }

// Evaluate returns the cached value with no substitution, or recomputes
// bottom-up with literal-int -> Rational substitutions applied at every
// leaf whose literal appears in subst.
func (t *Tree) Evaluate(subst map[int]*rational.Rational) (*rational.Rational, error) {
	if subst == nil {
		return t.value, nil
	}
	if !t.isOp {
		if v, ok := subst[t.lit]; ok {
			return v, nil
		}
		return rational.FromInt(t.lit), nil
	}
	lv, err := t.left.Evaluate(subst)
	if err != nil {
		return nil, err
	}
	rv, err := t.right.Evaluate(subst)
	if err != nil {
		return nil, err
	}
	switch t.op {
	case Add:
		return rational.Add(lv, rv), nil
	case Sub:
		return rational.Sub(lv, rv), nil
	case Mul:
		return rational.Mul(lv, rv), nil
	case Div:
		return rational.Div(lv, rv)
	default:
		return nil, engineerr.New(engineerr.BadArguments, "unknown operator kind")
	}
}

// ExtractLiterals returns the multiset of literal integers encountered in
// an in-order traversal.
func (t *Tree) ExtractLiterals() []int {
	if !t.isOp {
		return []int{t.lit}
	}
	out := make([]int, 0, 8)
	out = append(out, t.left.ExtractLiterals()...)
	out = append(out, t.right.ExtractLiterals()...)
	return out
}

// CanonicalKey returns the postfix structural key of §3: "[value]" for a
// Num leaf, "op·key(left)·key(right)" for an Op node.
func (t *Tree) CanonicalKey() string {
	var b strings.Builder
	t.writeKey(&b)
	return b.String()
}

func (t *Tree) writeKey(b *strings.Builder) {
	if !t.isOp {
		b.WriteByte('[')
		b.WriteString(rational.Key(t.value))
		b.WriteByte(']')
		return
	}
	b.WriteString(t.op.Symbol())
	t.left.writeKey(b)
	t.right.writeKey(b)
}

// Pretty produces the minimally parenthesized infix string of §4.1.
func (t *Tree) Pretty() string {
	var b strings.Builder
	t.writePretty(&b)
	return b.String()
}

func (t *Tree) writePretty(b *strings.Builder) {
	if !t.isOp {
		b.WriteString(t.value.RatString())
		return
	}
	writeChild(b, t.left, t.op, false)
	b.WriteString(t.op.Symbol())
	writeChild(b, t.right, t.op, true)
}

// writeChild parenthesizes child according to §4.1's minimal-parens
// rules, given the parent operator and whether child is the right
// operand.
func writeChild(b *strings.Builder, child *Tree, parent OpKind, isRight bool) {
	needParens := false
	if child.isOp {
		switch {
		case (parent == Mul || parent == Div) && (child.op == Add || child.op == Sub):
			needParens = true
		case isRight && parent == Sub && (child.op == Add || child.op == Sub):
			needParens = true
		case isRight && parent == Div && (child.op == Mul || child.op == Div):
			needParens = true
		}
	}
	if needParens {
		b.WriteByte('(')
		child.writePretty(b)
		b.WriteByte(')')
	} else {
		child.writePretty(b)
	}
}

// SignNormalize returns a new tree, structurally rewritten so every
// node's cached value is non-negative while the receiver's overall
// absolute value is preserved. The receiver is left untouched
// (copy-on-rewrite, per the module's tree-ownership design).
func (t *Tree) SignNormalize() *Tree {
	normalized, _ := signNormalize(t)
	return normalized
}

// signNormalize returns the normalized subtree plus whether the
// *original* (pre-normalization) value of t was negative, so an
// ancestor +/- node can fold that sign into its own term algebra.
func signNormalize(t *Tree) (*Tree, bool) {
	if !t.isOp {
		return t, false
	}
	if t.op == Mul || t.op == Div {
		nl, lNeg := signNormalize(t.left)
		nr, rNeg := signNormalize(t.right)
		// |a*b| == |a|*|b|, and likewise for division: recombining the
		// already-nonnegative children reproduces the original magnitude
		// with no extra bookkeeping here.
		newNode, _ := NewOp(t.op, nl, nr)
		return newNode, lNeg != rNeg
	}

	// t.op is Add or Sub.
	nl, lNeg := signNormalize(t.left)
	nr, rNeg := signNormalize(t.right)
	a := nl.value // >= 0
	b := nr.value // >= 0

	signA := 1
	if lNeg {
		signA = -1
	}
	signB := 1
	if rNeg {
		signB = -1
	}
	if t.op == Sub {
		signB = -signB
	}

	switch {
	case signA > 0 && signB > 0:
		node, _ := NewOp(Add, nl, nr)
		return node, false
	case signA < 0 && signB < 0:
		node, _ := NewOp(Add, nl, nr)
		return node, true
	case signA > 0 && signB < 0:
		if a.Cmp(b) >= 0 {
			node, _ := NewOp(Sub, nl, nr)
			return node, false
		}
		node, _ := NewOp(Sub, nr, nl)
		return node, true
	default: // signA < 0 && signB > 0
		if b.Cmp(a) >= 0 {
			node, _ := NewOp(Sub, nr, nl)
			return node, false
		}
		node, _ := NewOp(Sub, nl, nr)
		return node, true
	}
}
