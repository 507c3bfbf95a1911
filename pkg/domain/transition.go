package domain

import "fmt"

// Transition is a directed edge from one state index to another, labelled by the action taken.
type Transition struct {
	From        int      `json:"from" yaml:"from"`
	To          int      `json:"to" yaml:"to"`
	Action      ActionID `json:"action" yaml:"action"`
	Probability float64  `json:"probability" yaml:"probability"`
	Reward      float64  `json:"reward" yaml:"reward"`
}

func (t Transition) String() string {
	return fmt.Sprintf("%.1f%% chance | S(%d) => S(%d) | Reward: %g", t.Probability*100, t.From, t.To, t.Reward)
}

// ActionTransitions groups the transitions produced by a single action at a single state.
type ActionTransitions struct {
	Action      ActionID     `json:"action" yaml:"action"`
	Transitions []Transition `json:"transitions" yaml:"transitions"`
}

// Expected computes the one-step lookahead value of the action:
// the sum over its transitions of probability * (reward + discount * values[to]).
func (at ActionTransitions) Expected(values []float64, discount float64) float64 {
	var sum float64
	for _, t := range at.Transitions {
		sum += t.Probability * (t.Reward + discount*values[t.To])
	}
	return sum
}
