// Package session implements §4.7/C7: the GameSession state machine.
// Ported method-for-method from original_source/ftptsgame/__init__.py's
// FTPtsGame (the spec names it GameSession; this package exports it as
// Session, the public library API of §6).
package session

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/T0nyX1ang/42-Points-Game/internal/catalog"
	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprparser"
	"github.com/T0nyX1ang/42-Points-Game/internal/exprtree"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
	"github.com/T0nyX1ang/42-Points-Game/internal/solver"
)

// Status is the session's coarse state, exactly §3's status ∈ {Idle,
// Playing}.
type Status int

const (
	Idle Status = iota
	Playing
)

func (s Status) String() string {
	if s == Playing {
		return "Playing"
	}
	return "Idle"
}

// PlayerStat is one (player_id, interval) pair in acceptance order.
type PlayerStat struct {
	PlayerID int
	Interval time.Duration
}

type acceptedSubmission struct {
	rawText        string
	normalizedText string
	tree           *exprtree.Tree
	playerID       int
	interval       time.Duration
}

// Session is the engine's Idle/Playing state machine wrapping a
// solver.SolverResult. Not safe for concurrent use (§5): a host serving
// multiple players must serialize calls through an outer lock or actor.
type Session struct {
	id      uuid.UUID
	cfg     config.Config
	rng     *rand.Rand
	catalog *catalog.Catalog
	log     *logrus.Entry

	status Status

	hasArmed     bool
	armedProblem solver.Problem
	armedResult  *solver.SolverResult

	problem  solver.Problem
	result   *solver.SolverResult
	accepted []acceptedSubmission

	startTime   time.Time
	lastElapsed time.Duration
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithCatalog attaches a catalog for the difficulty/weighted generation
// modes.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithRand injects a seedable RNG, per §9's testability note.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithConfig overrides the default Config (target is still set
// separately via New's argument).
func WithConfig(cfg config.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// New builds an Idle Session targeting target (§6: Session.new(target=42)).
func New(target int, opts ...Option) *Session {
	s := &Session{
		id:     uuid.New(),
		cfg:    config.Default(),
		rng:    rand.New(rand.NewSource(1)),
		status: Idle,
	}
	for _, o := range opts {
		o(s)
	}
	s.cfg.Target = target
	s.log = logrus.WithFields(logrus.Fields{"session": s.id.String(), "target": target})
	return s
}

// IsPlaying reports the current status; valid in any state.
func (s *Session) IsPlaying() bool {
	return s.status == Playing
}

func (s *Session) requirePlaying() error {
	if s.status != Playing {
		return engineerr.New(engineerr.WrongState, "operation requires Playing")
	}
	return nil
}

func (s *Session) requireIdle() error {
	if s.status != Idle {
		return engineerr.New(engineerr.WrongState, "operation requires Idle")
	}
	return nil
}

// GenerateMode selects one of §4.7's three generate_problem modes.
type GenerateMode int

const (
	ModeCatalogDifficulty GenerateMode = iota
	ModeExplicit
	ModeByWeight
)

// GenerateRequest is generate_problem's argument: exactly one mode's
// fields are consulted.
type GenerateRequest struct {
	Mode GenerateMode

	// ModeCatalogDifficulty:
	MinSolutions int
	MaxSolutions int

	// ModeExplicit:
	Numbers []int

	// ModeByWeight: aligned with the catalog's Keys() order.
	Weights []float64
}

// DifficultyRequest samples from the catalog within [min, max] solution
// counts (defaults [1, 100] if both are zero).
func DifficultyRequest(min, max int) GenerateRequest {
	return GenerateRequest{Mode: ModeCatalogDifficulty, MinSolutions: min, MaxSolutions: max}
}

// ExplicitRequest arms prob directly.
func ExplicitRequest(prob []int) GenerateRequest {
	return GenerateRequest{Mode: ModeExplicit, Numbers: prob}
}

// WeightedRequest samples from the catalog by cumulative-distribution
// inversion over weights.
func WeightedRequest(weights []float64) GenerateRequest {
	return GenerateRequest{Mode: ModeByWeight, Weights: weights}
}

// GenerateProblem arms a problem for the next start(). Only allowed
// while Idle.
func (s *Session) GenerateProblem(req GenerateRequest) error {
	if err := s.requireIdle(); err != nil {
		return err
	}

	var numbers []int
	switch req.Mode {
	case ModeCatalogDifficulty:
		if s.catalog == nil {
			return engineerr.New(engineerr.BadArguments, "no catalog configured")
		}
		lo, hi := req.MinSolutions, req.MaxSolutions
		if lo == 0 && hi == 0 {
			lo, hi = 1, 100
		}
		p5, err := s.catalog.SampleByDifficulty(s.rng, lo, hi)
		if err != nil {
			return err
		}
		numbers = p5[:]
	case ModeExplicit:
		numbers = req.Numbers
	case ModeByWeight:
		if s.catalog == nil {
			return engineerr.New(engineerr.BadArguments, "no catalog configured")
		}
		p5, err := s.catalog.SampleByWeight(s.rng, req.Weights)
		if err != nil {
			return err
		}
		numbers = p5[:]
	default:
		return engineerr.New(engineerr.BadMethod, "unknown generation mode")
	}

	prob, err := solver.NewProblem(numbers, s.cfg)
	if err != nil {
		return err
	}
	result, err := solver.SolveProblem(prob, s.cfg.Target, s.cfg, s.rng)
	if err != nil {
		return err
	}

	s.armedProblem = prob
	s.armedResult = result
	s.hasArmed = true
	s.log.WithField("problem", prob.Numbers()).Info("problem armed")
	return nil
}

// Start transitions Idle(armed) -> Playing, resetting the accepted list,
// player history, and timer.
func (s *Session) Start() error {
	if err := s.requireIdle(); err != nil {
		return err
	}
	if !s.hasArmed {
		return engineerr.New(engineerr.WrongState, "no armed problem; call GenerateProblem first")
	}
	s.problem = s.armedProblem
	s.result = s.armedResult
	s.hasArmed = false
	s.accepted = nil
	s.startTime = time.Now()
	s.lastElapsed = 0
	s.status = Playing
	s.log.WithField("problem", s.problem.Numbers()).Info("session started")
	return nil
}

// Stop transitions Playing -> Idle, returning the total elapsed time.
func (s *Session) Stop() (time.Duration, error) {
	if err := s.requirePlaying(); err != nil {
		return 0, err
	}
	elapsed := time.Since(s.startTime)
	s.status = Idle
	s.log.WithField("elapsed", elapsed).Info("session stopped")
	return elapsed, nil
}

// ElapsedTime returns now - start_time. Only valid while Playing.
func (s *Session) ElapsedTime() (time.Duration, error) {
	if err := s.requirePlaying(); err != nil {
		return 0, err
	}
	return time.Since(s.startTime), nil
}

var textSubstitutions = []struct{ from, to string }{
	{"×", "*"},
	{"x", "*"},
	{"÷", "/"},
	{"（", "("},
	{"）", ")"},
	{" ", ""},
	{"\n", ""},
	{"\r", ""},
}

func normalizeText(text string) string {
	for _, sub := range textSubstitutions {
		text = strings.ReplaceAll(text, sub.from, sub.to)
	}
	return text
}

func (s *Session) reject(playerID int, err error) error {
	kind := "unknown"
	if ee, ok := err.(*engineerr.Err); ok {
		kind = ee.Kind.String()
	}
	s.log.WithFields(logrus.Fields{"player_id": playerID, "kind": kind}).Warn("submission rejected")
	return err
}

// Solve validates a submission against the armed problem's solver
// result: normalization, length, parse, value, literal-multiset, and
// equivalence-class-repeat checks, in that order (§4.7). None of these
// failures mutate session state or advance the timer.
func (s *Session) Solve(text string, playerID int) (time.Duration, error) {
	if err := s.requirePlaying(); err != nil {
		return 0, err
	}

	normalized := normalizeText(text)
	if len(normalized) >= s.cfg.MaxSubmissionLength {
		return 0, s.reject(playerID, engineerr.New(engineerr.TooLong, "maximum submission length exceeded"))
	}

	tree, err := exprparser.Parse(normalized, s.cfg)
	if err != nil {
		return 0, s.reject(playerID, err)
	}

	value, err := tree.Evaluate(nil)
	if err != nil {
		return 0, s.reject(playerID, err)
	}
	if !rational.Equal(value, rational.FromInt(s.cfg.Target)) {
		return 0, s.reject(playerID, engineerr.WrongValueErr(value))
	}

	literals := tree.ExtractLiterals()
	if !s.problem.Equal(literals) {
		return 0, s.reject(playerID, engineerr.WrongNumbersErr(literals))
	}

	normalizedTree := tree.SignNormalize()
	key := normalizedTree.CanonicalKey()
	rep, ok := s.result.RepOf[key]
	if !ok {
		// Evaluated to target and matched the literal multiset but isn't
		// in the enumerated set: an internal invariant violation, §4.7
		// step 5 says to treat it as WrongValue.
		return 0, s.reject(playerID, engineerr.WrongValueErr(value))
	}

	for _, a := range s.accepted {
		existingKey := a.tree.CanonicalKey()
		if s.result.RepOf[existingKey] == rep {
			return 0, s.reject(playerID, engineerr.DuplicateErr(a.rawText))
		}
	}

	elapsed := time.Since(s.startTime)
	interval := elapsed - s.lastElapsed
	s.lastElapsed = elapsed
	s.accepted = append(s.accepted, acceptedSubmission{
		rawText:        text,
		normalizedText: normalized,
		tree:           normalizedTree,
		playerID:       playerID,
		interval:       interval,
	})
	s.log.WithFields(logrus.Fields{"player_id": playerID, "interval": interval}).Info("submission accepted")
	return interval, nil
}

// CurrentProblem returns the armed-and-started problem's operands.
func (s *Session) CurrentProblem() ([]int, error) {
	if err := s.requirePlaying(); err != nil {
		return nil, err
	}
	return s.problem.Numbers(), nil
}

// CurrentSolutions returns the accepted submissions' normalized text, in
// acceptance order.
func (s *Session) CurrentSolutions() ([]string, error) {
	if err := s.requirePlaying(); err != nil {
		return nil, err
	}
	out := make([]string, len(s.accepted))
	for i, a := range s.accepted {
		out[i] = a.normalizedText
	}
	return out, nil
}

// CurrentSolutionCount returns len(CurrentSolutions()).
func (s *Session) CurrentSolutionCount() (int, error) {
	if err := s.requirePlaying(); err != nil {
		return 0, err
	}
	return len(s.accepted), nil
}

// TotalSolutionCount returns the number of distinct equivalence classes
// for the current problem.
func (s *Session) TotalSolutionCount() (int, error) {
	if err := s.requirePlaying(); err != nil {
		return 0, err
	}
	return len(s.result.DistinctAnswers()), nil
}

// RemainingSolutions returns the pretty-printed representatives of every
// equivalence class not yet hit by an accepted submission.
func (s *Session) RemainingSolutions() ([]string, error) {
	if err := s.requirePlaying(); err != nil {
		return nil, err
	}
	hit := make(map[string]bool, len(s.accepted))
	for _, a := range s.accepted {
		hit[s.result.RepOf[a.tree.CanonicalKey()]] = true
	}
	var out []string
	for _, e := range s.result.DistinctAnswers() {
		if !hit[s.result.RepOf[e.CanonicalKey()]] {
			out = append(out, e.Pretty())
		}
	}
	return out, nil
}

// PlayerStatistics returns (player_id, interval) in acceptance order.
func (s *Session) PlayerStatistics() ([]PlayerStat, error) {
	if err := s.requirePlaying(); err != nil {
		return nil, err
	}
	out := make([]PlayerStat, len(s.accepted))
	for i, a := range s.accepted {
		out[i] = PlayerStat{PlayerID: a.playerID, Interval: a.interval}
	}
	return out, nil
}

// ID returns the session's stable identifier, for hosts that serialize
// multiple concurrent sessions through an outer registry (§5).
func (s *Session) ID() uuid.UUID {
	return s.id
}
