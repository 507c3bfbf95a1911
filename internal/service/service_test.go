package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/aretw0/markov/pkg/solver"
)

func TestService_SolveStoresSolution(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewStore())

	out, err := svc.Solve(ctx, "bridge")
	require.NoError(t, err)
	assert.True(t, out.Result.Converged)
	assert.Len(t, out.Deltas, out.Result.Iterations)
	assert.InDelta(t, -17.0, out.Solution.Values[0], 1e-9)

	stored, err := svc.Solution(ctx, "bridge")
	require.NoError(t, err)
	assert.Equal(t, out.Solution.RunID, stored.RunID)

	solved, err := svc.Solved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bridge"}, solved)
}

func TestService_Overrides(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewStore(), WithSolverOverrides(solver.Config{Discount: 0.5}))

	r, err := svc.Build(ctx, "cookie-monster")
	require.NoError(t, err)
	assert.Equal(t, 0.5, r.Config().Discount)
	assert.Equal(t, solver.DefaultTolerance, r.Config().Tolerance)

	r, err = svc.Build(ctx, "cookie-monster", markov.WithDiscount(0.7))
	require.NoError(t, err)
	assert.Equal(t, 0.7, r.Config().Discount, "call options win over service overrides")
}

func TestService_NotConvergedIsStored(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewStore(), WithSolverOverrides(solver.Config{MaxIterations: 3}))

	out, err := svc.Solve(ctx, "cookie-monster")
	require.ErrorIs(t, err, domain.ErrNotConverged)
	require.NotNil(t, out)
	assert.Equal(t, 3, out.Solution.Iterations)

	_, err = svc.Solution(ctx, "cookie-monster")
	assert.NoError(t, err)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewStore(), WithStateLimit(5))

	_, err := svc.Solve(ctx, "chess")
	assert.ErrorIs(t, err, domain.ErrUnknownProblem)

	_, err = svc.Solve(ctx, "dice")
	assert.ErrorIs(t, err, domain.ErrStateLimit)

	_, err = svc.Solution(ctx, "dice")
	assert.ErrorIs(t, err, domain.ErrSolutionNotFound)
}

func TestService_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	svc := New(memory.NewStore(), WithMetrics(metrics))

	out, err := svc.Solve(context.Background(), "gridworld")
	require.NoError(t, err)

	assert.Equal(t, 16.0, testutil.ToFloat64(metrics.ModelStates))
	assert.Equal(t, 16.0, testutil.ToFloat64(metrics.StatesDiscovered))
	assert.Equal(t, float64(out.Result.Iterations), testutil.ToFloat64(metrics.Sweeps))
	assert.Len(t, out.Deltas, out.Result.Iterations, "recorder and metrics both see the sweeps")
}
