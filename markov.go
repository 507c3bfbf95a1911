package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/dsl"
	"github.com/aretw0/markov/pkg/model"
	"github.com/aretw0/markov/pkg/solver"
)

// Runner is the state-type independent handle on a built problem.
type Runner interface {
	Name() string
	View() model.View
	Config() solver.Config
	Solve(ctx context.Context) (*Result, error)
}

// Engine is the high-level entry point: a built model plus the solver settings to apply to it.
type Engine[S any] struct {
	name   string
	model  *model.Model[S]
	cfg    solver.Config
	logger *slog.Logger
	hooks  domain.SolveHooks
}

var _ Runner = (*Engine[struct{}])(nil)

type settings struct {
	name       string
	logger     *slog.Logger
	cfg        solver.Config
	buildHooks domain.BuildHooks
	solveHooks domain.SolveHooks
	limit      int
}

// Option defines a functional option for configuring the Engine.
type Option func(*settings)

// WithName sets the problem name used in logs and solutions.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithLogger sets a custom structured logger for construction and solving.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithSolverConfig replaces the whole solver configuration.
func WithSolverConfig(cfg solver.Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithDiscount sets the discount factor.
func WithDiscount(discount float64) Option {
	return func(s *settings) {
		s.cfg.Discount = discount
	}
}

// WithTolerance sets the convergence tolerance.
func WithTolerance(tolerance float64) Option {
	return func(s *settings) {
		s.cfg.Tolerance = tolerance
	}
}

// WithMaxIterations caps the number of sweeps. Zero means unbounded.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		s.cfg.MaxIterations = n
	}
}

// WithBuildHooks registers graph construction hooks.
func WithBuildHooks(hooks domain.BuildHooks) Option {
	return func(s *settings) {
		s.buildHooks = hooks
	}
}

// WithSolveHooks registers value iteration hooks.
func WithSolveHooks(hooks domain.SolveHooks) Option {
	return func(s *settings) {
		s.solveHooks = hooks
	}
}

// WithStateLimit bounds exploration. Exceeding it is reported as domain.ErrStateLimit.
func WithStateLimit(n int) Option {
	return func(s *settings) {
		s.limit = n
	}
}

// New explores the problem given by initial and defs and returns an engine ready to solve it.
// The solver configuration is validated before exploration starts.
func New[S any](ctx context.Context, initial S, defs []action.Definition[S], opts ...Option) (*Engine[S], error) {
	return build(ctx, initial, defs, nil, opts)
}

// Compile builds an engine from a DSL problem. The problem's name is used unless WithName is
// given.
func Compile[S any](ctx context.Context, p *dsl.Problem[S], opts ...Option) (*Engine[S], error) {
	opts = append([]Option{WithName(p.Name())}, opts...)
	return build(ctx, p.Initial(), p.Definitions(), p.Options(), opts)
}

func build[S any](ctx context.Context, initial S, defs []action.Definition[S], extra []model.Option[S], opts []Option) (eng *Engine[S], err error) {
	s := settings{cfg: solver.DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.name != "" {
		s.logger = s.logger.With("problem", s.name)
	}

	modelOpts := append([]model.Option[S]{
		model.WithLogger[S](s.logger),
		model.WithHooks[S](s.buildHooks),
		model.WithStateLimit[S](s.limit),
	}, extra...)

	defer func() {
		if r := recover(); r != nil {
			limitErr, ok := r.(error)
			if !ok || !errors.Is(limitErr, domain.ErrStateLimit) {
				panic(r)
			}
			eng, err = nil, fmt.Errorf("failed to explore %q: %w", s.name, limitErr)
		}
	}()

	m, err := model.Build(ctx, initial, defs, modelOpts...)
	if err != nil {
		return nil, err
	}

	return &Engine[S]{
		name:   s.name,
		model:  m,
		cfg:    s.cfg,
		logger: s.logger,
		hooks:  s.solveHooks,
	}, nil
}

// Name returns the problem name.
func (e *Engine[S]) Name() string {
	return e.name
}

// Model returns the typed model.
func (e *Engine[S]) Model() *model.Model[S] {
	return e.model
}

// View returns the model without its state type.
func (e *Engine[S]) View() model.View {
	return e.model
}

// Config returns the solver configuration.
func (e *Engine[S]) Config() solver.Config {
	return e.cfg
}

// Solve runs value iteration from zero values. When the iteration cap is reached the partial
// result is returned together with domain.ErrNotConverged.
func (e *Engine[S]) Solve(ctx context.Context) (*Result, error) {
	vi, err := solver.New(e.model,
		solver.WithConfig(e.cfg),
		solver.WithLogger(e.logger),
		solver.WithHooks(e.hooks),
	)
	if err != nil {
		return nil, err
	}

	err = vi.Solve(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotConverged) {
		return nil, err
	}

	return &Result{
		Name:       e.name,
		RunID:      vi.RunID(),
		Config:     vi.Config(),
		Values:     vi.Values(),
		Policy:     vi.Policy(),
		Iterations: vi.Iterations(),
		Delta:      vi.Delta(),
		Converged:  err == nil,
	}, err
}
