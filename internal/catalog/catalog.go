// Package catalog is a reference implementation of the external
// collaborator described in §6/C8: a mapping of sorted
// 5-tuples to their distinct-solution count, used only for difficulty
// sampling. Hosts are expected to supply their own (likely
// disk-or-database-backed) catalog; this package exists so
// GameSession.generate_problem's three modes are exercisable and
// testable without one. Grounded directly on spec §6's catalog format
// description — no teacher code exists for this (it is explicitly an
// external collaborator).
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
)

// Problem5 is a sorted 5-tuple key, the catalog's native shape per §6.
type Problem5 [5]int

// Catalog is an in-memory map from Problem5 to its distinct-solution
// count, filled by Add or Load, plus a stable key ordering for weighted
// sampling.
type Catalog struct {
	counts map[Problem5]int
	order  []Problem5
}

// New builds an empty Catalog.
func New() *Catalog {
	return &Catalog{counts: map[Problem5]int{}}
}

// Add records a problem's solution count, preserving first-insertion
// order for SampleByWeight.
func (c *Catalog) Add(p Problem5, solutionCount int) {
	if _, exists := c.counts[p]; !exists {
		c.order = append(c.order, p)
	}
	c.counts[p] = solutionCount
}

// Count returns p's stored solution count.
func (c *Catalog) Count(p Problem5) (int, bool) {
	n, ok := c.counts[p]
	return n, ok
}

// Keys returns the catalog's problems in stable insertion order.
func (c *Catalog) Keys() []Problem5 {
	return append([]Problem5(nil), c.order...)
}

// Len reports how many problems the catalog holds.
func (c *Catalog) Len() int { return len(c.order) }

// Load parses a simple "n1,n2,n3,n4,n5,count" line format, one problem
// per line, blank lines and lines starting with '#' ignored. Malformed-row
// errors are wrapped with their originating line number; a read error is
// wrapped without one.
func Load(r io.Reader) (*Catalog, error) {
	cat := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			return nil, errors.Wrapf(fmt.Errorf("want 6 comma-separated fields, got %d", len(fields)), "catalog line %d", lineNo)
		}
		var p Problem5
		for i := 0; i < 5; i++ {
			n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
			if err != nil {
				return nil, errors.Wrapf(err, "catalog line %d: parsing operand %d", lineNo, i)
			}
			p[i] = n
		}
		slices.Sort(p[:])
		count, err := strconv.Atoi(strings.TrimSpace(fields[5]))
		if err != nil {
			return nil, errors.Wrapf(err, "catalog line %d: parsing solution count", lineNo)
		}
		cat.Add(p, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "catalog: reading input")
	}
	return cat, nil
}

// SampleByDifficulty picks uniformly among keys whose stored solution
// count lies in [min, max], failing with NoSolution if the window is
// empty.
func (c *Catalog) SampleByDifficulty(rng *rand.Rand, min, max int) (Problem5, error) {
	var candidates []Problem5
	for _, p := range c.order {
		if n := c.counts[p]; n >= min && n <= max {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return Problem5{}, engineerr.New(engineerr.NoSolution, fmt.Sprintf("no catalog entries with solution count in [%d, %d]", min, max))
	}
	return candidates[rng.Intn(len(candidates))], nil
}

// SampleByWeight samples a problem by cumulative-distribution inversion
// over a weight vector aligned with Keys()'s order (the optional "by
// probability" mode §9 notes some versions drop).
func (c *Catalog) SampleByWeight(rng *rand.Rand, weights []float64) (Problem5, error) {
	if len(weights) != len(c.order) {
		return Problem5{}, engineerr.New(engineerr.BadArguments, fmt.Sprintf("want %d weights, got %d", len(c.order), len(weights)))
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return Problem5{}, engineerr.New(engineerr.BadArguments, "weights must sum to a positive value")
	}
	target := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return c.order[i], nil
		}
	}
	return c.order[len(c.order)-1], nil
}
