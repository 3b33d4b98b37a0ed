// Package enumerate implements §4.4: every structurally distinct
// expression tree over a number multiset, produced by recursive
// bipartitioning, pruned to non-negative values and deduplicated by
// canonical key. It does not filter by target — that's internal/solver's
// job. Grounded on the teacher's findSolutions/generatePermutations
// (build every parenthesization, dedupe via a seen-set of canonical
// keys), generalized from the teacher's fixed 4-operand pattern table to
// the general bitmask-over-n recursion §4.4 describes.
package enumerate

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

var ops = []exprtree.OpKind{exprtree.Add, exprtree.Sub, exprtree.Mul, exprtree.Div}

// Enumerate returns every structurally distinct, non-negative-at-every-
// node expression tree over prob.
func Enumerate(prob []int, cfg config.Config) ([]*exprtree.Tree, error) {
	start := time.Now()
	trees, err := enumerate(prob, cfg)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"problem":    prob,
		"candidates": len(trees),
		"elapsed":    time.Since(start),
	}).Debug("enumerate: finished")
	return trees, nil
}

func enumerate(prob []int, cfg config.Config) ([]*exprtree.Tree, error) {
	n := len(prob)
	if n == 1 {
		t, err := exprtree.NewNum(prob[0], cfg)
		if err != nil {
			return nil, err
		}
		return []*exprtree.Tree{t}, nil
	}

	seen := make(map[string]bool)
	var result []*exprtree.Tree

	for mask := 1; mask < (1<<uint(n))-1; mask++ {
		left := make([]int, 0, n)
		right := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				right = append(right, prob[i])
			} else {
				left = append(left, prob[i])
			}
		}

		leftSet, err := enumerate(left, cfg)
		if err != nil {
			return nil, err
		}
		rightSet, err := enumerate(right, cfg)
		if err != nil {
			return nil, err
		}

		for _, l := range leftSet {
			for _, r := range rightSet {
				for _, op := range ops {
					if op == exprtree.Div && rational.IsZero(r.Value()) {
						continue
					}
					node, err := exprtree.NewOp(op, l, r)
					if err != nil {
						continue
					}
					if rational.IsNegative(node.Value()) {
						continue
					}
					key := node.CanonicalKey()
					if seen[key] {
						continue
					}
					seen[key] = true
					result = append(result, node)
				}
			}
		}
	}

	return result, nil
}
