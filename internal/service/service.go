// Package service ties the problem catalog, the engine and the solution store together for
// the CLI, HTTP and MCP surfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/aretw0/markov/pkg/solver"
)

// Service solves catalog problems and keeps their solutions.
type Service struct {
	store      ports.SolutionStore
	logger     *slog.Logger
	overrides  solver.Config
	stateLimit int
	metrics    *observability.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger handed to the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSolverOverrides sets solver parameters applied over each problem's defaults. Zero
// fields are left to the problem.
func WithSolverOverrides(cfg solver.Config) Option {
	return func(s *Service) {
		s.overrides = cfg
	}
}

// WithStateLimit bounds exploration of every problem.
func WithStateLimit(n int) Option {
	return func(s *Service) {
		s.stateLimit = n
	}
}

// WithMetrics records construction and solving into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a service persisting solutions in store.
func New(store ports.SolutionStore, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Outcome is everything produced by one solve.
type Outcome struct {
	Runner   markov.Runner
	Result   *markov.Result
	Solution *domain.Solution
	// Deltas holds the delta of every sweep.
	Deltas []float64
}

// Problems lists the catalog.
func (s *Service) Problems() []problems.Problem {
	return problems.All()
}

// Build explores a catalog problem with the service settings plus extra options.
func (s *Service) Build(ctx context.Context, name string, opts ...markov.Option) (markov.Runner, error) {
	p, err := problems.Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Build(ctx, s.options(nil, opts)...)
}

// Solve builds and solves a catalog problem, then stores its solution. A solve stopped by the
// iteration cap is stored too and reported with domain.ErrNotConverged alongside the outcome.
func (s *Service) Solve(ctx context.Context, name string, opts ...markov.Option) (*Outcome, error) {
	p, err := problems.Lookup(name)
	if err != nil {
		return nil, err
	}

	recorder := &observability.DeltaRecorder{}
	runner, err := p.Build(ctx, s.options(recorder, opts)...)
	if err != nil {
		return nil, err
	}

	res, solveErr := runner.Solve(ctx)
	if solveErr != nil && !errors.Is(solveErr, domain.ErrNotConverged) {
		return nil, solveErr
	}

	sol := res.Solution(runner.View())
	if err := s.store.Save(ctx, sol); err != nil {
		return nil, fmt.Errorf("failed to save solution: %w", err)
	}
	s.logger.Info("solution saved", "problem", name, "run_id", sol.RunID)

	return &Outcome{
		Runner:   runner,
		Result:   res,
		Solution: sol,
		Deltas:   recorder.Deltas(),
	}, solveErr
}

// Solution loads the stored solution of a problem.
func (s *Service) Solution(ctx context.Context, name string) (*domain.Solution, error) {
	return s.store.Load(ctx, name)
}

// Solved lists the problems with a stored solution.
func (s *Service) Solved(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

func (s *Service) options(recorder *observability.DeltaRecorder, extra []markov.Option) []markov.Option {
	opts := []markov.Option{markov.WithLogger(s.logger)}
	if s.overrides.Discount != 0 {
		opts = append(opts, markov.WithDiscount(s.overrides.Discount))
	}
	if s.overrides.Tolerance != 0 {
		opts = append(opts, markov.WithTolerance(s.overrides.Tolerance))
	}
	if s.overrides.MaxIterations != 0 {
		opts = append(opts, markov.WithMaxIterations(s.overrides.MaxIterations))
	}
	if s.stateLimit > 0 {
		opts = append(opts, markov.WithStateLimit(s.stateLimit))
	}

	var solveHooks []domain.SolveHooks
	if recorder != nil {
		solveHooks = append(solveHooks, recorder.Hooks())
	}
	if s.metrics != nil {
		solveHooks = append(solveHooks, s.metrics.SolveHooks())
		opts = append(opts, markov.WithBuildHooks(s.metrics.BuildHooks()))
	}
	if len(solveHooks) > 0 {
		opts = append(opts, markov.WithSolveHooks(observability.ChainSolveHooks(solveHooks...)))
	}

	return append(opts, extra...)
}
