package solver

import (
	"fmt"

	"github.com/aretw0/markov/pkg/domain"
)

// DefaultTolerance is the convergence threshold on the maximum per-state value change.
const DefaultTolerance = 1e-5

// Config holds the tunable parameters of value iteration.
type Config struct {
	// Discount attenuates future reward. Must be in (0, 1].
	Discount float64 `json:"discount" yaml:"discount" mapstructure:"discount"`
	// Tolerance stops iteration once a sweep changes no value by this much or more.
	Tolerance float64 `json:"tolerance" yaml:"tolerance" mapstructure:"tolerance"`
	// MaxIterations caps the number of sweeps. Zero iterates until convergence, which never
	// happens for a discount of 1 without absorbing states.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations" mapstructure:"max_iterations"`
}

// DefaultConfig returns a discount of 0.99, the default tolerance and no iteration cap.
func DefaultConfig() Config {
	return Config{
		Discount:  0.99,
		Tolerance: DefaultTolerance,
	}
}

// Validate checks every parameter range.
func (c Config) Validate() error {
	if c.Discount <= 0 || c.Discount > 1 {
		return fmt.Errorf("%w: discount %g not in (0, 1]", domain.ErrInvalidConfig, c.Discount)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance %g must be positive", domain.ErrInvalidConfig, c.Tolerance)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations %d must not be negative", domain.ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}
