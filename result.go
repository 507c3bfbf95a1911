package markov

import (
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/model"
	"github.com/aretw0/markov/pkg/policy"
	"github.com/aretw0/markov/pkg/solver"
)

// Result is the outcome of one solve.
type Result struct {
	Name       string
	RunID      string
	Config     solver.Config
	Values     []float64
	Policy     *policy.Policy
	Iterations int
	Delta      float64
	Converged  bool
}

// Solution snapshots the result against the model it was computed on.
func (r *Result) Solution(view model.View) *domain.Solution {
	states := make([]string, view.Len())
	for i := range states {
		states[i] = view.Label(i)
	}
	return &domain.Solution{
		Name:       r.Name,
		RunID:      r.RunID,
		Discount:   r.Config.Discount,
		Tolerance:  r.Config.Tolerance,
		Iterations: r.Iterations,
		Delta:      r.Delta,
		States:     states,
		Values:     append([]float64(nil), r.Values...),
		Policy:     r.Policy.Actions(),
		SolvedAt:   time.Now().UTC(),
	}
}
