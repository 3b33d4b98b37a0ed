package equivalence

import (
	"math/rand"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/enumerate"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

func answersFor(t *testing.T, problem []int, target int, cfg config.Config) []*exprtree.Tree {
	t.Helper()
	all, err := enumerate.Enumerate(problem, cfg)
	qt.Assert(t, qt.IsNil(err))
	targetVal := rational.FromInt(target)
	var answers []*exprtree.Tree
	for _, e := range all {
		if rational.Equal(e.Value(), targetVal) {
			answers = append(answers, e)
		}
	}
	return answers
}

func TestUnionFindBasics(t *testing.T) {
	uf := newUnionFind()
	uf.ensure("a", 2)
	uf.ensure("b", 2)
	uf.ensure("c", 0)
	uf.union("a", "c")
	qt.Assert(t, qt.Equals(uf.find("a"), uf.find("c")))
	qt.Assert(t, qt.IsTrue(uf.find("b") != uf.find("a")))
}

func TestClassifyGroupsEveryAnswer(t *testing.T) {
	cfg := config.Default()
	answers := answersFor(t, []int{3, 4, 6, 7, 12}, 42, cfg)
	qt.Assert(t, qt.IsTrue(len(answers) > 0))

	rng := rand.New(rand.NewSource(1))
	repOf, err := Classify(answers, cfg, rng)
	qt.Assert(t, qt.IsNil(err))
	for _, a := range answers {
		_, ok := repOf[a.CanonicalKey()]
		qt.Assert(t, qt.IsTrue(ok))
	}
}

func TestClassifyKnownDistinctClassCount(t *testing.T) {
	// spec.md §8 scenario 1: (3,4,6,7,12) at target 42 has exactly 26
	// distinct equivalence classes, the classifier's headline invariant.
	cfg := config.Default()
	answers := answersFor(t, []int{3, 4, 6, 7, 12}, 42, cfg)

	rng := rand.New(rand.NewSource(1))
	repOf, err := Classify(answers, cfg, rng)
	qt.Assert(t, qt.IsNil(err))

	classes := map[string]bool{}
	for _, a := range answers {
		key := a.CanonicalKey()
		classes[repOf[key]] = true
	}
	qt.Assert(t, qt.Equals(len(classes), 26))
}

func TestClassifyUnionsOneHopRewriteNeighbor(t *testing.T) {
	// (7-0)+0 has (7+0)+0 as a direct rewrite.Each neighbor (rule 2
	// applied to the left child through rule 1), so Classify must place
	// them in the same class. Their fingerprints also agree, so this test
	// does not isolate the rewrite path from the fingerprint path.
	cfg := config.Default()
	sub := mustOp(t, exprtree.Add, mustOp(t, exprtree.Sub, mustNum(t, 7, cfg), mustNum(t, 0, cfg)), mustNum(t, 0, cfg))
	add := mustOp(t, exprtree.Add, mustOp(t, exprtree.Add, mustNum(t, 7, cfg), mustNum(t, 0, cfg)), mustNum(t, 0, cfg))

	rng := rand.New(rand.NewSource(7))
	repOf, err := Classify([]*exprtree.Tree{sub, add}, cfg, rng)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(repOf[sub.CanonicalKey()], repOf[add.CanonicalKey()]))
}

func mustNum(t *testing.T, n int, cfg config.Config) *exprtree.Tree {
	t.Helper()
	tree, err := exprtree.NewNum(n, cfg)
	qt.Assert(t, qt.IsNil(err))
	return tree
}

func mustOp(t *testing.T, kind exprtree.OpKind, l, r *exprtree.Tree) *exprtree.Tree {
	t.Helper()
	tree, err := exprtree.NewOp(kind, l, r)
	qt.Assert(t, qt.IsNil(err))
	return tree
}

