// Package factory solves machines, one at a time or in batches, with a strategy chosen once.
//
// A batch never stops on a failing machine: every machine gets its own Outcome,
// and the total only sums the machines that could be solved.
package factory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crillab/gophermachine/ilp"
	"github.com/crillab/gophermachine/machine"
	"github.com/crillab/gophermachine/search"
)

// A Solver solves machines with a given strategy.
// It is safe for concurrent use: it holds no state specific to a machine.
type Solver struct {
	strategy  machine.Strategy
	maxStates int
	workers   int
	ilp       ilp.Solver
	logger    *slog.Logger
	metrics   *Metrics
}

// An Option configures a Solver.
type Option func(*Solver)

// WithMaxStates bounds the number of states visited by searches. 0 means no bound.
// It has no effect on the integer strategy.
func WithMaxStates(n int) Option {
	return func(s *Solver) { s.maxStates = n }
}

// WithWorkers sets how many machines SolveAll solves in parallel.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

// WithILPSolver sets the solver used by the integer strategy.
func WithILPSolver(is ilp.Solver) Option {
	return func(s *Solver) { s.ilp = is }
}

// WithLogger sets the logger. By default, nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// WithMetrics makes the solver record its results in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Solver) { s.metrics = m }
}

// New returns a solver using the given strategy.
func New(strategy machine.Strategy, opts ...Option) (*Solver, error) {
	switch strategy {
	case machine.LightsStrategy, machine.CountersStrategy, machine.IntegerStrategy, machine.JointStrategy:
	default:
		return nil, fmt.Errorf("invalid strategy %v", strategy)
	}
	s := &Solver{
		strategy: strategy,
		workers:  1,
		ilp:      ilp.PBSolver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		return nil, fmt.Errorf("invalid number of workers %d", s.workers)
	}
	if s.ilp == nil {
		s.ilp = ilp.PBSolver{}
	}
	return s, nil
}

// Strategy returns the strategy used by s.
func (s *Solver) Strategy() machine.Strategy {
	return s.strategy
}

// Solve returns the minimum number of presses for m, according to s's strategy.
func (s *Solver) Solve(m *machine.Machine) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("%w: nil machine", machine.ErrMalformed)
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}
	var searchOpts []search.Option
	if s.maxStates > 0 {
		searchOpts = append(searchOpts, search.WithMaxStates(s.maxStates))
	}
	switch s.strategy {
	case machine.LightsStrategy:
		res, err := search.ShortestPresses(m.Lights, machine.Off(m.Lights.Len()), m.Buttons, searchOpts...)
		return res.Presses, err
	case machine.CountersStrategy:
		res, err := search.ShortestCounterPresses(m.Joltage, m.Buttons, searchOpts...)
		return res.Presses, err
	case machine.JointStrategy:
		res, err := search.ShortestJointPresses(m.Lights, m.Joltage, machine.Off(m.Lights.Len()), m.Buttons, searchOpts...)
		return res.Presses, err
	default:
		sol, err := ilp.MinimumPresses(m.Joltage, m.Buttons, s.ilp)
		return sol.Cost, err
	}
}

// An Outcome is the result of solving one machine of a batch.
type Outcome struct {
	Index    int           // Index of the machine in the batch
	Presses  int           // Minimum number of presses; meaningless if Err != nil
	Err      error         // Why the machine could not be solved, if it could not
	Duration time.Duration // Time spent solving
}

// OK returns true iff the machine was solved.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// A Report is the result of solving a batch of machines.
type Report struct {
	Strategy machine.Strategy
	Outcomes []Outcome // One per machine, in the order of the batch
	Total    int       // Sum of the presses of all solved machines
}

// Failed returns the outcomes of the machines that could not be solved.
func (r Report) Failed() []Outcome {
	var res []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			res = append(res, o)
		}
	}
	return res
}

// Err returns an error summarizing all failures, or nil if all machines were solved.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("machine %d: %w", o.Index, o.Err))
	}
	return errors.Join(errs...)
}

// Sum returns the total number of presses over all successful outcomes.
func Sum(outcomes []Outcome) int {
	total := 0
	for _, o := range outcomes {
		if o.OK() {
			total += o.Presses
		}
	}
	return total
}

// SolveAll solves all machines, in parallel if s has several workers.
// The failure of a machine does not prevent the others from being solved.
// If ctx is canceled, machines that were not started yet fail with ctx's error.
func (s *Solver) SolveAll(ctx context.Context, machines []*machine.Machine) Report {
	outcomes := make([]Outcome, len(machines))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, m := range machines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome{Index: i, Err: err}
				s.metrics.observe(s.strategy, err, 0)
				return nil
			}
			outcomes[i] = s.solveOne(i, m)
			return nil
		})
	}
	_ = g.Wait() // Workers never fail: errors are reported in outcomes
	return Report{Strategy: s.strategy, Outcomes: outcomes, Total: Sum(outcomes)}
}

func (s *Solver) solveOne(idx int, m *machine.Machine) Outcome {
	start := time.Now()
	presses, err := s.Solve(m)
	o := Outcome{Index: idx, Presses: presses, Err: err, Duration: time.Since(start)}
	s.metrics.observe(s.strategy, err, o.Duration)
	if err != nil {
		s.logger.Warn("could not solve machine", "machine", idx, "strategy", s.strategy, "reason", Classify(err), "error", err)
		o.Presses = 0
	} else {
		s.logger.Debug("solved machine", "machine", idx, "strategy", s.strategy, "presses", presses, "duration", o.Duration)
	}
	return o
}

// Classify returns a short name for the kind of failure described by err:
// "solved" if err is nil, then "malformed", "unreachable", "abandoned", "infeasible", "canceled" or "error".
func Classify(err error) string {
	switch {
	case err == nil:
		return "solved"
	case errors.Is(err, machine.ErrMalformed):
		return "malformed"
	case errors.Is(err, search.ErrUnreachable):
		return "unreachable"
	case errors.Is(err, search.ErrAbandoned):
		return "abandoned"
	case errors.Is(err, ilp.ErrInfeasible):
		return "infeasible"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
