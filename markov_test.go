package markov_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/dsl"
	"github.com/aretw0/markov/pkg/solver"
)

func counter(limit int) []action.Definition[int] {
	return []action.Definition[int]{
		action.New[int]("inc").
			When(func(s int) bool { return s < limit }).
			Outcome(func(s *int, reward *float64) float64 {
				*s++
				*reward = 1
				return 1
			}),
	}
}

func TestNew_InvalidConfigFailsBeforeExploring(t *testing.T) {
	discovered := 0
	_, err := markov.New(context.Background(), 0, counter(3),
		markov.WithDiscount(1.5),
		markov.WithBuildHooks(domain.BuildHooks{
			OnStateDiscovered: func(context.Context, *domain.StateEvent) { discovered++ },
		}),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Zero(t, discovered)
}

func TestNew_StateLimitIsReportedAsError(t *testing.T) {
	_, err := markov.New(context.Background(), 0, counter(100),
		markov.WithName("counter"),
		markov.WithStateLimit(10),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStateLimit)
	assert.Contains(t, err.Error(), "counter")
}

func TestEngine_SolveChain(t *testing.T) {
	eng, err := markov.New(context.Background(), 0, counter(3), markov.WithDiscount(1))
	require.NoError(t, err)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 4, eng.View().Len())
	assert.InDeltaSlice(t, []float64{3, 2, 1, 0}, res.Values, 1e-9)

	terminal, ok := eng.Model().Index(3)
	require.True(t, ok)
	_, decided := res.Policy.Action(terminal)
	assert.False(t, decided)
	assert.Equal(t, 3, res.Policy.Decided())
}

func TestEngine_NotConvergedKeepsPartialResult(t *testing.T) {
	loop := action.New[int]("stay").Outcome(func(_ *int, reward *float64) float64 {
		*reward = 1
		return 1
	})

	eng, err := markov.New(context.Background(), 0, []action.Definition[int]{loop},
		markov.WithDiscount(1),
		markov.WithMaxIterations(25),
	)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConverged)
	require.NotNil(t, res)
	assert.False(t, res.Converged)
	assert.Equal(t, 25, res.Iterations)
	assert.InDelta(t, 25.0, res.Values[0], 1e-9)
}

func TestEngine_SolveHooks(t *testing.T) {
	var sweeps int
	var converged *domain.SolveEvent

	eng, err := markov.New(context.Background(), 0, counter(2),
		markov.WithSolveHooks(domain.SolveHooks{
			OnSweep:     func(context.Context, *domain.SweepEvent) { sweeps++ },
			OnConverged: func(_ context.Context, e *domain.SolveEvent) { converged = e },
		}),
	)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, converged)
	assert.True(t, converged.Converged)
	assert.Equal(t, res.Iterations, sweeps)
	assert.Equal(t, res.RunID, converged.RunID)
}

func TestCompile_UsesProblemName(t *testing.T) {
	p := dsl.New(0).Named("counter").Add(counter(1)...)

	eng, err := markov.Compile(context.Background(), p,
		markov.WithSolverConfig(solver.Config{Discount: 0.5, Tolerance: 1e-3}))
	require.NoError(t, err)
	assert.Equal(t, "counter", eng.Name())
	assert.Equal(t, 0.5, eng.Config().Discount)

	renamed, err := markov.Compile(context.Background(), p, markov.WithName("other"))
	require.NoError(t, err)
	assert.Equal(t, "other", renamed.Name())
}

func TestResult_Solution(t *testing.T) {
	p := dsl.New(0).Named("counter").Add(counter(2)...)
	eng, err := markov.Compile(context.Background(), p)
	require.NoError(t, err)

	res, err := eng.Solve(context.Background())
	require.NoError(t, err)

	sol := res.Solution(eng.View())
	assert.Equal(t, "counter", sol.Name)
	assert.Equal(t, res.RunID, sol.RunID)
	assert.Equal(t, []string{"0", "1", "2"}, sol.States)
	assert.Equal(t, res.Values, sol.Values)
	assert.False(t, sol.SolvedAt.IsZero())

	best, ok := sol.Best(0)
	require.True(t, ok)
	assert.Equal(t, "inc", best.Label)
	_, ok = sol.Best(2)
	assert.False(t, ok)
}
