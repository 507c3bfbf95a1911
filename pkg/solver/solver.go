/*
Package solver computes optimal values and policies of a frozen Markov Decision Process graph
by value iteration.

Each sweep is a synchronous (Jacobi) Bellman backup: every state reads only the values of the
previous sweep. A state's new value is the best expected value over its enabled actions,

	Q(s, a) = sum over transitions of p * (r + discount * V_prev(to))

and zero when no action is enabled. Sweeps repeat until no value changes by Tolerance or more.
*/
package solver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

// Graph is the read-only view of a model that the solver needs.
type Graph interface {
	Len() int
	Actions(i int) []domain.ActionTransitions
}

// ValueIteration owns the value vectors of one solve. It never mutates the graph.
type ValueIteration struct {
	graph      Graph
	cfg        Config
	values     []float64
	shadow     []float64
	iterations int
	delta      float64
	logger     *slog.Logger
	hooks      domain.SolveHooks
	runID      string
}

// New creates a solver over g. Values start at zero.
func New(g Graph, opts ...Option) (*ValueIteration, error) {
	v := &ValueIteration{
		graph: g,
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.cfg.Validate(); err != nil {
		return nil, err
	}

	if v.runID == "" {
		v.runID = uuid.NewString()
	}
	if v.logger == nil {
		v.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	v.logger = v.logger.With("run_id", v.runID)

	n := g.Len()
	v.values = make([]float64, n)
	v.shadow = make([]float64, n)
	v.delta = math.Inf(1)
	return v, nil
}

// Config returns the effective configuration.
func (v *ValueIteration) Config() Config {
	return v.cfg
}

// RunID returns the correlation ID of this solve.
func (v *ValueIteration) RunID() string {
	return v.runID
}

// Iterate performs one sweep and returns the maximum absolute per-state value change.
func (v *ValueIteration) Iterate() float64 {
	copy(v.shadow, v.values)

	var delta float64
	for i := range v.values {
		best, ok := v.best(i, v.shadow)
		if !ok {
			best = 0
		}
		v.values[i] = best
		delta = math.Max(delta, math.Abs(best-v.shadow[i]))
	}

	v.iterations++
	v.delta = delta
	return delta
}

// Solve sweeps until convergence. It returns domain.ErrNotConverged when MaxIterations is set
// and reached first, and the context error when ctx is done between sweeps.
func (v *ValueIteration) Solve(ctx context.Context) error {
	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		delta := v.Iterate()
		v.logger.Debug("sweep", "iteration", v.iterations, "delta", delta)
		if v.hooks.OnSweep != nil {
			v.hooks.OnSweep(ctx, &domain.SweepEvent{
				EventBase: v.event(domain.EventSweep),
				Iteration: v.iterations,
				Delta:     delta,
			})
		}

		if delta < v.cfg.Tolerance {
			v.finish(ctx, start, true)
			return nil
		}
		if v.cfg.MaxIterations > 0 && v.iterations >= v.cfg.MaxIterations {
			v.finish(ctx, start, false)
			return fmt.Errorf("%w: %d iterations, delta %g", domain.ErrNotConverged, v.iterations, delta)
		}
	}
}

func (v *ValueIteration) finish(ctx context.Context, start time.Time, converged bool) {
	elapsed := time.Since(start)
	if converged {
		v.logger.Info("value iteration converged", "iterations", v.iterations, "delta", v.delta, "duration", elapsed)
	} else {
		v.logger.Warn("value iteration stopped before convergence", "iterations", v.iterations, "delta", v.delta, "duration", elapsed)
	}
	if v.hooks.OnConverged != nil {
		v.hooks.OnConverged(ctx, &domain.SolveEvent{
			EventBase:  v.event(domain.EventConverged),
			Iterations: v.iterations,
			Delta:      v.delta,
			Converged:  converged,
			Duration:   elapsed,
		})
	}
}

func (v *ValueIteration) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, RunID: v.runID}
}

// Values returns a copy of the current value vector.
func (v *ValueIteration) Values() []float64 {
	return append([]float64(nil), v.values...)
}

// Iterations returns the number of sweeps performed so far.
func (v *ValueIteration) Iterations() int {
	return v.iterations
}

// Delta returns the change of the last sweep, +Inf before the first one.
func (v *ValueIteration) Delta() float64 {
	return v.delta
}

// QValue returns the expected value of taking at from its state under the current values.
func (v *ValueIteration) QValue(at domain.ActionTransitions) float64 {
	return at.Expected(v.values, v.cfg.Discount)
}

// Residual returns the largest violation of the Bellman optimality equation under the
// current values.
func (v *ValueIteration) Residual() float64 {
	var worst float64
	for i, value := range v.values {
		best, ok := v.best(i, v.values)
		if !ok {
			best = 0
		}
		worst = math.Max(worst, math.Abs(best-value))
	}
	return worst
}

// Policy extracts the greedy policy from the current values. Ties go to the action registered
// first; states without enabled actions get no action.
func (v *ValueIteration) Policy() *policy.Policy {
	choices := make([]*domain.ActionID, len(v.values))
	for i := range v.values {
		var (
			best   float64
			chosen *domain.ActionID
		)
		for _, at := range v.graph.Actions(i) {
			q := at.Expected(v.values, v.cfg.Discount)
			if chosen == nil || q > best {
				id := at.Action
				best, chosen = q, &id
			}
		}
		choices[i] = chosen
	}
	return policy.New(choices)
}

func (v *ValueIteration) best(i int, values []float64) (float64, bool) {
	actions := v.graph.Actions(i)
	if len(actions) == 0 {
		return 0, false
	}
	best := math.Inf(-1)
	for _, at := range actions {
		best = math.Max(best, at.Expected(values, v.cfg.Discount))
	}
	return best, true
}
