// Package solver implements §4.6: ProblemSolver, gluing
// internal/enumerate (C4) and internal/equivalence (C5) together.
// Grounded directly on original_source/ftptsgame/problem_utils.py's
// Problem.generate_answers (run classify, then project representatives
// out as distinct_answer_table).
package solver

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/slices"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
	"github.com/T0nyX1ang/42-Points-Game/internal/enumerate"
	"github.com/T0nyX1ang/42-Points-Game/internal/equivalence"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

// Problem is an immutable sorted multiset of operands.
type Problem struct {
	numbers []int
}

// NewProblem sorts and validates nums against cfg's literal range and a
// length window of [1, 6] (§1's Non-goal: "more than ~6 operands").
func NewProblem(nums []int, cfg config.Config) (Problem, error) {
	if len(nums) == 0 || len(nums) > 6 {
		return Problem{}, engineerr.New(engineerr.BadArguments, fmt.Sprintf("problem must have 1-6 operands, got %d", len(nums)))
	}
	sorted := append([]int(nil), nums...)
	slices.Sort(sorted)
	for _, n := range sorted {
		if n < 0 || n > cfg.MaxLiteral {
			return Problem{}, engineerr.New(engineerr.BadLiteral, fmt.Sprintf("literal %d out of range [0, %d]", n, cfg.MaxLiteral))
		}
	}
	return Problem{numbers: sorted}, nil
}

// Numbers returns the sorted operand multiset.
func (p Problem) Numbers() []int {
	return append([]int(nil), p.numbers...)
}

// Equal reports whether p and o carry the same sorted multiset.
func (p Problem) Equal(o []int) bool {
	sorted := append([]int(nil), o...)
	slices.Sort(sorted)
	return slices.Equal(sorted, p.numbers)
}

// SolverResult is §3's (answers, rep_of) pair.
type SolverResult struct {
	// Answers holds every tree (in enumeration order) equal to the
	// target.
	Answers []*exprtree.Tree
	// RepOf maps every answer's canonical key to its class
	// representative's canonical key.
	RepOf map[string]string
}

// DistinctAnswers projects Answers down to one tree per equivalence
// class: its representative.
func (r *SolverResult) DistinctAnswers() []*exprtree.Tree {
	var out []*exprtree.Tree
	for _, e := range r.Answers {
		key := e.CanonicalKey()
		if r.RepOf[key] == key {
			out = append(out, e)
		}
	}
	return out
}

// SolveProblem computes every solution for prob against target, groups
// them into equivalence classes, and fails with NoSolution if none
// exist. rng must be a snapshot owned for the duration of this call
// (§5).
func SolveProblem(prob Problem, target int, cfg config.Config, rng *rand.Rand) (*SolverResult, error) {
	all, err := enumerate.Enumerate(prob.numbers, cfg)
	if err != nil {
		return nil, err
	}

	targetVal := rational.FromInt(target)
	var answers []*exprtree.Tree
	for _, e := range all {
		if rational.Equal(e.Value(), targetVal) {
			answers = append(answers, e)
		}
	}
	if len(answers) == 0 {
		return nil, engineerr.New(engineerr.NoSolution, fmt.Sprintf("no expression over %v equals %d", prob.numbers, target))
	}

	repOf, err := equivalence.Classify(answers, cfg, rng)
	if err != nil {
		return nil, err
	}

	return &SolverResult{Answers: answers, RepOf: repOf}, nil
}
