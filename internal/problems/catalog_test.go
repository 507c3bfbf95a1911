package problems

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/simulate"
)

func TestCatalog_Lookup(t *testing.T) {
	assert.Equal(t, []string{"bridge", "cookie-monster", "dice", "gridworld"}, Names())

	p, err := Lookup("bridge")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Discount)

	_, err = Lookup("chess")
	assert.ErrorIs(t, err, domain.ErrUnknownProblem)
	assert.Contains(t, err.Error(), "cookie-monster")
}

func TestCatalog_BuildAppliesDefaults(t *testing.T) {
	p, err := Lookup("gridworld")
	require.NoError(t, err)

	r, err := p.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gridworld", r.Name())
	assert.Equal(t, 0.95, r.Config().Discount)
	assert.Equal(t, 16, r.View().Len())

	r, err = p.Build(context.Background(), markov.WithDiscount(0.5))
	require.NoError(t, err)
	assert.Equal(t, 0.5, r.Config().Discount)
}

func TestBridge_ShortestCrossingIs17(t *testing.T) {
	ctx := context.Background()
	eng, err := markov.Compile(ctx, BridgeProblem(1, 2, 5, 10), markov.WithDiscount(1))
	require.NoError(t, err)

	res, err := eng.Solve(ctx)
	require.NoError(t, err)
	assert.InDelta(t, -17.0, res.Values[0], 1e-9)

	traj, err := simulate.Run(ctx, eng.View(), res.Policy, 0, 20, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	assert.True(t, traj.Halted)
	assert.Equal(t, -17.0, traj.Total)
	assert.Len(t, traj.Steps, 5)

	done, ok := eng.Model().Index(Bridge{Crossed: 0b1111})
	require.True(t, ok)
	assert.Equal(t, done, traj.Final)
	assert.Equal(t, "start[] end[1 2 5 10] lamp:end", eng.View().Label(done))
}

func TestDiceGame_TakeOrRoll(t *testing.T) {
	ctx := context.Background()
	eng, err := markov.Compile(ctx, DiceGame(1, 2), markov.WithDiscount(1))
	require.NoError(t, err)

	res, err := eng.Solve(ctx)
	require.NoError(t, err)
	// The opening roll lands on 1 or 2, then taking it is the best use of the last turn.
	assert.InDelta(t, 1.5, res.Values[0], 1e-9)

	two, ok := eng.Model().Index(Dice{Value: 2, Turns: 1})
	require.True(t, ok)
	best, ok := res.Policy.Action(two)
	require.True(t, ok)
	assert.Equal(t, "take", best.Label)
}

func TestCookieMonster_Solves(t *testing.T) {
	ctx := context.Background()
	eng, err := markov.Compile(ctx, CookieMonster(), markov.WithDiscount(0.9))
	require.NoError(t, err)

	res, err := eng.Solve(ctx)
	require.NoError(t, err)

	banned, ok := eng.Model().Index(Bakery{Banned: true})
	require.True(t, ok)
	// Once banned only the vending machine remains.
	assert.Greater(t, res.Values[0], res.Values[banned])

	for i := range eng.View().Len() {
		_, ok := res.Policy.Action(i)
		assert.True(t, ok, "every bakery state has an action")
	}
}

func TestGridWorld_GoalIsAbsorbing(t *testing.T) {
	ctx := context.Background()
	eng, err := markov.Compile(ctx, GridWorld(3, 3), markov.WithDiscount(0.95))
	require.NoError(t, err)
	assert.Equal(t, 9, eng.View().Len())

	goal, ok := eng.Model().Index(Position{X: 3, Y: 3})
	require.True(t, ok)
	assert.Empty(t, eng.View().Actions(goal))

	res, err := eng.Solve(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Values[goal])

	best, ok := res.Policy.Action(0)
	require.True(t, ok)
	assert.Contains(t, []string{"up", "right"}, best.Label)
	assert.Len(t, eng.Model().ActionSet(), 4)
}
