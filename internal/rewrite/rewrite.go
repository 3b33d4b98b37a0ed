// Package rewrite implements §4.3's 8 equivalence-preserving rewrite
// rules as a neighbor stream. The neighbor set of a tree is computed in
// full before the first neighbor is passed on; the stream is not lazy. Rules are directional: closure under
// union-find (internal/equivalence) gives the actual equivalence class,
// not this package. Value comparisons throughout use each subtree's
// already-cached concrete Rational (the value obtained by substituting
// the problem's actual literals), exactly as exprtree.Tree.Value()
// reports it — never a generic/symbolic comparison.
package rewrite

import (
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

// Yield is called once per neighbor tree. Returning false stops delivery
// of the remaining neighbors.
type Yield func(*exprtree.Tree) bool

// Each computes every neighbor of t under the 8 rules, then passes them
// to yield one at a time, in the order the rules are numbered in §4.3.
// Stopping early skips the remaining calls to yield but not the
// computation of the neighbor set.
func Each(t *exprtree.Tree, yield Yield) {
	for _, n := range collect(t) {
		if !yield(n) {
			return
		}
	}
}

func isValue(t *exprtree.Tree, k int) bool {
	return rational.Equal(t.Value(), rational.FromInt(k))
}

func collect(t *exprtree.Tree) []*exprtree.Tree {
	var out []*exprtree.Tree
	if !t.IsOp() {
		return out
	}

	// Rule 1: recurse into either child.
	for _, ln := range collect(t.Left()) {
		if n, err := exprtree.NewOp(t.Op(), ln, t.Right()); err == nil {
			out = append(out, n)
		}
	}
	for _, rn := range collect(t.Right()) {
		if n, err := exprtree.NewOp(t.Op(), t.Left(), rn); err == nil {
			out = append(out, n)
		}
	}

	// Rule 2: x-0 -> x+0; x/1 -> x*1; 0/x -> 0*x.
	if t.Op() == exprtree.Sub && isValue(t.Right(), 0) {
		if n, err := exprtree.NewOp(exprtree.Add, t.Left(), t.Right()); err == nil {
			out = append(out, n)
		}
	}
	if t.Op() == exprtree.Div && isValue(t.Right(), 1) {
		if n, err := exprtree.NewOp(exprtree.Mul, t.Left(), t.Right()); err == nil {
			out = append(out, n)
		}
	}
	if t.Op() == exprtree.Div && isValue(t.Left(), 0) {
		if n, err := exprtree.NewOp(exprtree.Mul, t.Left(), t.Right()); err == nil {
			out = append(out, n)
		}
	}

	// Rule 3: (x ? y) + 0 -> (x + 0) ? y and x ? (y + 0); same for *1
	// under an outer *1.
	out = append(out, spreadIdentity(t, exprtree.Add, 0)...)
	out = append(out, spreadIdentity(t, exprtree.Mul, 1)...)

	// Rule 4: (y+z)/x -> (x-y)/z and (x-z)/y, when right.value ==
	// left.value and neither y nor z is zero.
	if t.Op() == exprtree.Div && t.Left().IsOp() && t.Left().Op() == exprtree.Add {
		y, z := t.Left().Left(), t.Left().Right()
		x := t.Right()
		if rational.Equal(x.Value(), t.Left().Value()) && !rational.IsZero(y.Value()) && !rational.IsZero(z.Value()) {
			if xy, err := exprtree.NewOp(exprtree.Sub, x, y); err == nil {
				if n, err := exprtree.NewOp(exprtree.Div, xy, z); err == nil {
					out = append(out, n)
				}
			}
			if xz, err := exprtree.NewOp(exprtree.Sub, x, z); err == nil {
				if n, err := exprtree.NewOp(exprtree.Div, xz, y); err == nil {
					out = append(out, n)
				}
			}
		}
	}

	// Rule 5: x * (y/y) -> x + (y-y).
	if t.Op() == exprtree.Mul {
		if div, x, ok := equalDivChild(t); ok {
			if sub, err := exprtree.NewOp(exprtree.Sub, div.Left(), div.Right()); err == nil {
				if n, err := exprtree.NewOp(exprtree.Add, x, sub); err == nil {
					out = append(out, n)
				}
			}
		}
	}

	// Rule 6: x1/x2 -> x2/x1 when x1.value == x2.value.
	if t.Op() == exprtree.Div && rational.Equal(t.Left().Value(), t.Right().Value()) {
		if n, err := exprtree.NewOp(exprtree.Div, t.Right(), t.Left()); err == nil {
			out = append(out, n)
		}
	}

	// Rule 7: swap any equal-valued subtree pair straddling the root.
	out = append(out, subtreeSwaps(t)...)

	// Rule 8: 2*2 -> 2+2; 4/2 -> 4-2.
	if t.Op() == exprtree.Mul && isValue(t.Left(), 2) && isValue(t.Right(), 2) {
		if n, err := exprtree.NewOp(exprtree.Add, t.Left(), t.Right()); err == nil {
			out = append(out, n)
		}
	}
	if t.Op() == exprtree.Div && isValue(t.Left(), 4) && isValue(t.Right(), 2) {
		if n, err := exprtree.NewOp(exprtree.Sub, t.Left(), t.Right()); err == nil {
			out = append(out, n)
		}
	}

	return out
}

// spreadIdentity implements rule 3 for a given (outerOp, identity) pair:
// ((x ? y) outerOp identity) -> (x outerOp identity) ? y, and -> x ?
// (y outerOp identity).
func spreadIdentity(t *exprtree.Tree, outerOp exprtree.OpKind, identity int) []*exprtree.Tree {
	var out []*exprtree.Tree
	if t.Op() != outerOp || !isValue(t.Right(), identity) || !t.Left().IsOp() {
		return out
	}
	inner := t.Left()
	ident := t.Right()
	x, y := inner.Left(), inner.Right()

	if combined, err := exprtree.NewOp(outerOp, x, ident); err == nil {
		if n, err := exprtree.NewOp(inner.Op(), combined, y); err == nil {
			out = append(out, n)
		}
	}
	if combined, err := exprtree.NewOp(outerOp, y, ident); err == nil {
		if n, err := exprtree.NewOp(inner.Op(), x, combined); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// equalDivChild reports whether one child of a Mul node is a Div node
// whose own children carry equal values (a "y/y" term), returning that
// Div node and the other (non-Div) operand.
func equalDivChild(t *exprtree.Tree) (div *exprtree.Tree, other *exprtree.Tree, ok bool) {
	if t.Right().IsOp() && t.Right().Op() == exprtree.Div && rational.Equal(t.Right().Left().Value(), t.Right().Right().Value()) {
		return t.Right(), t.Left(), true
	}
	if t.Left().IsOp() && t.Left().Op() == exprtree.Div && rational.Equal(t.Left().Left().Value(), t.Left().Right().Value()) {
		return t.Left(), t.Right(), true
	}
	return nil, nil, false
}

// allNodes returns every node in t's subtree, t included, in pre-order.
func allNodes(t *exprtree.Tree) []*exprtree.Tree {
	nodes := []*exprtree.Tree{t}
	if t.IsOp() {
		nodes = append(nodes, allNodes(t.Left())...)
		nodes = append(nodes, allNodes(t.Right())...)
	}
	return nodes
}

// replaceNode rebuilds root with the first occurrence (by identity) of
// target replaced by replacement, recomputing cached values along the
// rewritten path. Returns ok=false if target isn't found under root.
func replaceNode(root, target, replacement *exprtree.Tree) (*exprtree.Tree, bool, error) {
	if root == target {
		return replacement, true, nil
	}
	if !root.IsOp() {
		return root, false, nil
	}
	if newLeft, changed, err := replaceNode(root.Left(), target, replacement); err != nil {
		return nil, false, err
	} else if changed {
		n, err := exprtree.NewOp(root.Op(), newLeft, root.Right())
		return n, true, err
	}
	if newRight, changed, err := replaceNode(root.Right(), target, replacement); err != nil {
		return nil, false, err
	} else if changed {
		n, err := exprtree.NewOp(root.Op(), root.Left(), newRight)
		return n, true, err
	}
	return root, false, nil
}

// subtreeSwaps implements rule 7: for any node nl in t.Left()'s subtree
// and nr in t.Right()'s subtree sharing a cached value, swap their
// entire subtrees.
func subtreeSwaps(t *exprtree.Tree) []*exprtree.Tree {
	var out []*exprtree.Tree
	if !t.IsOp() {
		return out
	}
	lefts := allNodes(t.Left())
	rights := allNodes(t.Right())
	for _, nl := range lefts {
		for _, nr := range rights {
			if !rational.Equal(nl.Value(), nr.Value()) {
				continue
			}
			newLeft, _, err1 := replaceNode(t.Left(), nl, nr)
			if err1 != nil {
				continue
			}
			newRight, _, err2 := replaceNode(t.Right(), nr, nl)
			if err2 != nil {
				continue
			}
			if n, err := exprtree.NewOp(t.Op(), newLeft, newRight); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}
