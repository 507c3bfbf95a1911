package solver

import (
	"log/slog"

	"github.com/aretw0/markov/pkg/domain"
)

// Option configures a ValueIteration solver.
type Option func(*ValueIteration)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(v *ValueIteration) {
		v.cfg = cfg
	}
}

// WithDiscount sets the discount factor.
func WithDiscount(discount float64) Option {
	return func(v *ValueIteration) {
		v.cfg.Discount = discount
	}
}

// WithTolerance sets the convergence tolerance.
func WithTolerance(tolerance float64) Option {
	return func(v *ValueIteration) {
		v.cfg.Tolerance = tolerance
	}
}

// WithMaxIterations caps the number of sweeps (0 = unlimited).
func WithMaxIterations(n int) Option {
	return func(v *ValueIteration) {
		v.cfg.MaxIterations = n
	}
}

// WithLogger sets a custom structured logger for the solver.
func WithLogger(logger *slog.Logger) Option {
	return func(v *ValueIteration) {
		v.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.SolveHooks) Option {
	return func(v *ValueIteration) {
		v.hooks = hooks
	}
}

// WithRunID sets the correlation ID attached to logs and events. A random one is generated
// otherwise.
func WithRunID(id string) Option {
	return func(v *ValueIteration) {
		v.runID = id
	}
}
