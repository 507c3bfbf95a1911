package simulate

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

type view struct {
	actions [][]domain.ActionTransitions
}

func (v view) Len() int {
	return len(v.actions)
}

func (v view) Label(i int) string {
	return string(rune('a' + i))
}

func (v view) Actions(i int) []domain.ActionTransitions {
	return v.actions[i]
}

func (v view) Edges() []domain.Transition {
	var edges []domain.Transition
	for _, list := range v.actions {
		for _, at := range list {
			edges = append(edges, at.Transitions...)
		}
	}
	return edges
}

func (v view) NumTransitions() int {
	return len(v.Edges())
}

func (v view) ActionSet() []domain.ActionID {
	return nil
}

var step = domain.ActionID{Seq: 0, Hash: 7, Label: "step"}

// chain is 0 -> 1 -> 2, deterministic, reward 1 per move; 2 has no action.
func chain() view {
	move := func(from int) domain.ActionTransitions {
		return domain.ActionTransitions{
			Action: step,
			Transitions: []domain.Transition{
				{From: from, To: from + 1, Action: step, Probability: 1, Reward: 1},
			},
		}
	}
	return view{actions: [][]domain.ActionTransitions{{move(0)}, {move(1)}, nil}}
}

func decided(n int, ids ...int) *policy.Policy {
	choices := make([]*domain.ActionID, n)
	for _, i := range ids {
		id := step
		choices[i] = &id
	}
	return policy.New(choices)
}

func TestRun_FollowsPolicyUntilHalt(t *testing.T) {
	traj, err := Run(context.Background(), chain(), decided(3, 0, 1), 0, 10, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	assert.True(t, traj.Halted)
	assert.Equal(t, 2, traj.Final)
	assert.Equal(t, 2.0, traj.Total)
	assert.Equal(t, []int{0, 1, 2}, traj.States())
}

func TestRun_StepLimit(t *testing.T) {
	traj, err := Run(context.Background(), chain(), decided(3, 0, 1), 0, 1, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	assert.False(t, traj.Halted)
	assert.Equal(t, 1, traj.Final)
	assert.Len(t, traj.Steps, 1)
}

func TestRun_InvalidStart(t *testing.T) {
	_, err := Run(context.Background(), chain(), decided(3), 5, 1, rand.New(rand.NewPCG(1, 2)))
	assert.ErrorIs(t, err, ErrInvalidStart)
}

func TestRun_SamplesByWeight(t *testing.T) {
	// 0 loops back with probability 0.75 and moves to the absorbing 1 otherwise.
	v := view{actions: [][]domain.ActionTransitions{
		{{
			Action: step,
			Transitions: []domain.Transition{
				{From: 0, To: 0, Action: step, Probability: 0.75},
				{From: 0, To: 1, Action: step, Probability: 0.25, Reward: 1},
			},
		}},
		nil,
	}}
	pol := decided(2, 0)
	rng := rand.New(rand.NewPCG(42, 42))

	const runs = 2000
	var moves int
	for range runs {
		traj, err := Run(context.Background(), v, pol, 0, 1, rng)
		require.NoError(t, err)
		if traj.Final == 1 {
			moves++
		}
	}
	assert.InDelta(t, 0.25, float64(moves)/runs, 0.05)
}

// loop is a single state whose only action leads back to itself.
func loop() view {
	return view{actions: [][]domain.ActionTransitions{{{
		Action:      step,
		Transitions: []domain.Transition{{From: 0, To: 0, Action: step, Probability: 1, Reward: -1}},
	}}}}
}

func TestRun_StepsMustBePositive(t *testing.T) {
	for _, steps := range []int{0, -1} {
		_, err := Run(context.Background(), loop(), decided(1, 0), 0, steps, rand.New(rand.NewPCG(1, 2)))
		assert.ErrorIs(t, err, ErrInvalidSteps)
	}
}

func TestRun_NonHaltingPolicyStopsAtLimit(t *testing.T) {
	traj, err := Run(context.Background(), loop(), decided(1, 0), 0, 50, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	assert.False(t, traj.Halted)
	assert.Len(t, traj.Steps, 50)
	assert.Equal(t, -50.0, traj.Total)
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	traj, err := Run(ctx, loop(), decided(1, 0), 0, 1_000_000, rand.New(rand.NewPCG(1, 2)))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, traj)
	assert.Empty(t, traj.Steps)
	assert.Equal(t, 0, traj.Final)
}
