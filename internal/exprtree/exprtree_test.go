package exprtree

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

func num(t *testing.T, n int) *Tree {
	t.Helper()
	tree, err := NewNum(n, config.Default())
	qt.Assert(t, qt.IsNil(err))
	return tree
}

func op(t *testing.T, kind OpKind, l, r *Tree) *Tree {
	t.Helper()
	tree, err := NewOp(kind, l, r)
	qt.Assert(t, qt.IsNil(err))
	return tree
}

func TestValueAndCanonicalKey(t *testing.T) {
	// (6*7)+(12-3*4) == 42
	six, seven, twelve, three, four := num(t, 6), num(t, 7), num(t, 12), num(t, 3), num(t, 4)
	left := op(t, Mul, six, seven)
	inner := op(t, Mul, three, four)
	right := op(t, Sub, twelve, inner)
	root := op(t, Add, left, right)

	qt.Assert(t, qt.Equals(root.Value().RatString(), "42"))
	qt.Assert(t, qt.Equals(root.CanonicalKey(), "+*[6][7]-[12]*[3][4]"))
}

func TestPrettyMinimalParens(t *testing.T) {
	a, b, c := num(t, 1), num(t, 2), num(t, 3)

	// a + (b - c): no parens needed, + doesn't force them on a Sub child.
	sum := op(t, Add, a, op(t, Sub, b, c))
	qt.Assert(t, qt.Equals(sum.Pretty(), "1+2-3"))

	// a - (b + c): parens required, Sub's right child can't absorb a Add.
	diff := op(t, Sub, a, op(t, Add, b, c))
	qt.Assert(t, qt.Equals(diff.Pretty(), "1-(2+3)"))

	// a * (b + c): parens required under Mul.
	prod := op(t, Mul, a, op(t, Add, b, c))
	qt.Assert(t, qt.Equals(prod.Pretty(), "1*(2+3)"))

	// a / (b * c): parens required, Div's right child can't absorb Mul.
	quot := op(t, Div, a, op(t, Mul, b, c))
	qt.Assert(t, qt.Equals(quot.Pretty(), "1/(2*3)"))
}

func TestExtractLiterals(t *testing.T) {
	tree := op(t, Add, num(t, 3), op(t, Mul, num(t, 4), num(t, 5)))
	qt.Assert(t, qt.DeepEquals(tree.ExtractLiterals(), []int{3, 4, 5}))
}

func TestEvaluateWithSubstitution(t *testing.T) {
	tree := op(t, Add, num(t, 3), num(t, 4))
	v, err := tree.Evaluate(nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.RatString(), "7"))

	subst := map[int]*rational.Rational{3: rational.FromInt(10)}
	v, err = tree.Evaluate(subst)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v.RatString(), "14"))
}

func TestSignNormalizeSpecExample(t *testing.T) {
	// parse("(1-2)*(3-4-5)").pretty() == "(2-1)*(4-3+5)"
	one, two, three, four, five := num(t, 1), num(t, 2), num(t, 3), num(t, 4), num(t, 5)
	left := op(t, Sub, one, two)
	right := op(t, Sub, op(t, Sub, three, four), five)
	tree := op(t, Mul, left, right)

	normalized := tree.SignNormalize()
	qt.Assert(t, qt.Equals(normalized.Pretty(), "(2-1)*(4-3+5)"))
	qt.Assert(t, qt.IsTrue(normalized.Value().Sign() >= 0))
}

func TestSignNormalizePreservesMagnitude(t *testing.T) {
	// -(3-7) == 4: a negative-valued subtraction normalizes by swapping
	// its operands.
	three, seven := num(t, 3), num(t, 7)
	tree := op(t, Sub, three, seven)
	normalized := tree.SignNormalize()
	qt.Assert(t, qt.Equals(normalized.Value().RatString(), "4"))
	qt.Assert(t, qt.Equals(normalized.Pretty(), "7-3"))
}
