package domain

import "time"

// Solution is the serialisable snapshot of a solved problem.
// States are stored by their display label; indices match the model they were computed from.
type Solution struct {
	Name       string      `json:"name"`
	RunID      string      `json:"run_id"`
	Discount   float64     `json:"discount"`
	Tolerance  float64     `json:"tolerance"`
	Iterations int         `json:"iterations"`
	Delta      float64     `json:"delta"`
	States     []string    `json:"states"`
	Values     []float64   `json:"values"`
	Policy     []*ActionID `json:"policy"`
	SolvedAt   time.Time   `json:"solved_at"`
}

// Best returns the chosen action for the given state index, if any.
func (s *Solution) Best(index int) (ActionID, bool) {
	if index < 0 || index >= len(s.Policy) || s.Policy[index] == nil {
		return ActionID{}, false
	}
	return *s.Policy[index], true
}
