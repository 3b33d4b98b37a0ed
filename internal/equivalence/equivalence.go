// Package equivalence implements §4.5: the hybrid equivalence classifier
// that unions solutions via (a) random-substitution value fingerprints
// and (b) closure over internal/rewrite's neighbor rules, backed by a
// union-find keyed on canonical postfix key. Grounded directly on
// original_source/ftptsgame/problem_utils.py's Problem.__classify, the
// one component with no teacher analogue (the teacher never classifies
// duplicates beyond exact structural identity).
package equivalence

import (
	"math/rand"
	"strings"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
	"github.com/T0nyX1ang/42-Points-Game/internal/rewrite"
)

// unionFind is a flat-array-style union-find over string keys, with
// path compression and rank-biased union, matching
// Problem.__root/__union in the original implementation.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: map[string]string{}, rank: map[string]int{}}
}

func (uf *unionFind) ensure(key string, rank int) {
	if _, ok := uf.parent[key]; !ok {
		uf.parent[key] = key
		uf.rank[key] = rank
	}
}

func (uf *unionFind) find(x string) string {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x])
	}
	return uf.parent[x]
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] <= uf.rank[rb] {
		uf.parent[ra] = rb
		if uf.rank[ra] == uf.rank[rb] {
			uf.rank[rb]++
		}
	} else {
		uf.parent[rb] = ra
	}
}

// buildProbeTable draws a random substitution table mapping every
// literal in [0, cfg.MaxLiteral] to a Rational: 0 and 1 stay fixed, the
// rest are distinct random draws from [ProbeDomainLow, ProbeDomainHigh).
func buildProbeTable(rng *rand.Rand, cfg config.Config) map[int]*rational.Rational {
	table := map[int]*rational.Rational{
		0: rational.FromInt(0),
		1: rational.FromInt(1),
	}
	count := cfg.MaxLiteral - 1
	if count <= 0 {
		return table
	}
	vals := sampleDistinct(rng, cfg.ProbeDomainLow, cfg.ProbeDomainHigh, count)
	for i, n := 0, 2; n <= cfg.MaxLiteral; n++ {
		table[n] = rational.FromInt(vals[i])
		i++
	}
	return table
}

// sampleDistinct draws count distinct integers from [low, high) by
// rejection sampling; collisions are vanishingly unlikely given the
// domain's size relative to count, so this converges immediately in
// practice.
func sampleDistinct(rng *rand.Rand, low, high, count int) []int {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	span := high - low
	for len(out) < count {
		v := low + rng.Intn(span)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func fingerprint(t *exprtree.Tree, tables []map[int]*rational.Rational) (string, error) {
	var b strings.Builder
	for _, tbl := range tables {
		v, err := t.Evaluate(tbl)
		if err != nil {
			return "", err
		}
		b.WriteString(rational.Key(v))
		b.WriteByte('|')
	}
	return b.String(), nil
}

// Classify returns rep_of: every answer's canonical key mapped to its
// class representative's canonical key. rng must be a snapshot the
// caller owns for the duration of this single call (§5: probing
// substitutions are fixed within one solve_problem call).
func Classify(answers []*exprtree.Tree, cfg config.Config, rng *rand.Rand) (map[string]string, error) {
	tables := make([]map[int]*rational.Rational, cfg.ProbeSamples)
	for i := range tables {
		tables[i] = buildProbeTable(rng, cfg)
	}

	uf := newUnionFind()
	fingerprintOwner := map[string]string{}

	for _, expr := range answers {
		uid := expr.CanonicalKey()
		fp, err := fingerprint(expr, tables)
		if err != nil {
			return nil, err
		}
		if owner, ok := fingerprintOwner[fp]; ok {
			uf.ensure(uid, 1)
			uf.union(uid, owner)
		} else {
			uf.ensure(uid, 2)
			fingerprintOwner[fp] = uid
		}
	}

	for _, expr := range answers {
		uid1 := expr.CanonicalKey()
		rewrite.Each(expr, func(neighbor *exprtree.Tree) bool {
			uid2 := neighbor.CanonicalKey()
			uf.ensure(uid2, 0)
			uf.union(uid1, uid2)
			return true
		})
	}

	repOf := make(map[string]string, len(answers))
	for _, expr := range answers {
		uid := expr.CanonicalKey()
		repOf[uid] = uf.find(uid)
	}
	return repOf, nil
}
