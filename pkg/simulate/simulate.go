// Package simulate follows a policy through a model, sampling stochastic outcomes.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/model"
	"github.com/aretw0/markov/pkg/policy"
)

// ErrInvalidStart is returned when the start index is not a state of the model.
var ErrInvalidStart = errors.New("start state out of range")

// ErrInvalidSteps is returned when the step limit is not positive.
var ErrInvalidSteps = errors.New("step limit must be positive")

// Step is one executed transition.
type Step struct {
	From   int             `json:"from"`
	To     int             `json:"to"`
	Action domain.ActionID `json:"action"`
	Reward float64         `json:"reward"`
}

// Trajectory is the path taken by one simulation.
type Trajectory struct {
	Start int     `json:"start"`
	Steps []Step  `json:"steps"`
	Final int     `json:"final"`
	Total float64 `json:"total"`
	// Halted is true when the walk stopped at a state where the policy has no action.
	Halted bool `json:"halted"`
}

// States returns the visited state indices, start and final included.
func (t *Trajectory) States() []int {
	states := make([]int, 0, len(t.Steps)+1)
	states = append(states, t.Start)
	for _, s := range t.Steps {
		states = append(states, s.To)
	}
	return states
}

// Run walks at most steps transitions from start, following pol. Outcome branches are sampled
// with their probabilities used as weights. The walk stops early when the policy has no action
// for the current state or when ctx is done, in which case the partial trajectory is returned
// with ctx.Err().
func Run(ctx context.Context, view model.View, pol *policy.Policy, start, steps int, rng *rand.Rand) (*Trajectory, error) {
	if start < 0 || start >= view.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidStart, start, view.Len())
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}

	traj := &Trajectory{Start: start, Final: start, Steps: make([]Step, 0, min(steps, 1024))}
	current := start
	for range steps {
		if err := ctx.Err(); err != nil {
			traj.Final = current
			return traj, err
		}

		id, ok := pol.Action(current)
		if !ok {
			traj.Halted = true
			break
		}

		t, ok := pick(view, current, id, rng)
		if !ok {
			traj.Halted = true
			break
		}

		traj.Steps = append(traj.Steps, Step{From: t.From, To: t.To, Action: t.Action, Reward: t.Reward})
		traj.Total += t.Reward
		current = t.To
	}
	traj.Final = current
	return traj, nil
}

func pick(view model.View, state int, id domain.ActionID, rng *rand.Rand) (domain.Transition, bool) {
	for _, at := range view.Actions(state) {
		if !at.Action.Equal(id) {
			continue
		}
		if len(at.Transitions) == 0 {
			return domain.Transition{}, false
		}

		var total float64
		for _, t := range at.Transitions {
			total += t.Probability
		}
		if total <= 0 {
			return at.Transitions[0], true
		}

		r := rng.Float64() * total
		for _, t := range at.Transitions {
			r -= t.Probability
			if r < 0 {
				return t, true
			}
		}
		return at.Transitions[len(at.Transitions)-1], true
	}
	return domain.Transition{}, false
}
