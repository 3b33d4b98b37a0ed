package rewrite

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
)

func num(t *testing.T, n int) *exprtree.Tree {
	t.Helper()
	tree, err := exprtree.NewNum(n, config.Default())
	qt.Assert(t, qt.IsNil(err))
	return tree
}

func op(t *testing.T, kind exprtree.OpKind, l, r *exprtree.Tree) *exprtree.Tree {
	t.Helper()
	tree, err := exprtree.NewOp(kind, l, r)
	qt.Assert(t, qt.IsNil(err))
	return tree
}

func neighborKeys(t *exprtree.Tree) map[string]bool {
	out := map[string]bool{}
	Each(t, func(n *exprtree.Tree) bool {
		out[n.CanonicalKey()] = true
		return true
	})
	return out
}

func TestRuleTwoSubZeroBecomesAddZero(t *testing.T) {
	tree := op(t, exprtree.Sub, num(t, 5), num(t, 0))
	want, err := exprtree.NewOp(exprtree.Add, num(t, 5), num(t, 0))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(neighborKeys(tree)[want.CanonicalKey()]))
}

func TestRuleEightTwoTimesTwoBecomesTwoPlusTwo(t *testing.T) {
	tree := op(t, exprtree.Mul, num(t, 2), num(t, 2))
	want, err := exprtree.NewOp(exprtree.Add, num(t, 2), num(t, 2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(neighborKeys(tree)[want.CanonicalKey()]))
}

func TestRuleSixSwapsEqualValuedDivisionOperands(t *testing.T) {
	// 12/(3*4): left and right of the Div both carry value 12.
	twelve, three, four := num(t, 12), num(t, 3), num(t, 4)
	tree := op(t, exprtree.Div, twelve, op(t, exprtree.Mul, three, four))
	want, err := exprtree.NewOp(exprtree.Div, op(t, exprtree.Mul, three, four), twelve)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(neighborKeys(tree)[want.CanonicalKey()]))
}

func TestRuleSevenSubtreeSwap(t *testing.T) {
	// (1+2)*3 vs 3*(1+2): swapping the whole Mul's operands when values match.
	one, two, three := num(t, 1), num(t, 2), num(t, 3)
	tree := op(t, exprtree.Mul, op(t, exprtree.Add, one, two), three)
	neighbors := neighborKeys(tree)
	swapped, err := exprtree.NewOp(exprtree.Mul, three, op(t, exprtree.Add, one, two))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(neighbors[swapped.CanonicalKey()]))
}
