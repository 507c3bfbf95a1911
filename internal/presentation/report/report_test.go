package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

type view [][]domain.ActionTransitions

func (v view) Len() int {
	return len(v)
}

func (v view) Label(i int) string {
	return []string{"{Open:true}", "{Open:false}"}[i]
}

func (v view) Actions(i int) []domain.ActionTransitions {
	return v[i]
}

func (v view) Edges() []domain.Transition {
	return nil
}

func (v view) NumTransitions() int {
	return 2
}

func (v view) ActionSet() []domain.ActionID {
	return nil
}

var shut = domain.ActionID{Seq: 0, Hash: 1, Label: "shut"}

func door() view {
	return view{
		{{Action: shut, Transitions: []domain.Transition{
			{From: 0, To: 1, Action: shut, Probability: 0.9, Reward: 2},
			{From: 0, To: 0, Action: shut, Probability: 0.1},
		}}},
		nil,
	}
}

func TestTransitions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Transitions(&buf, door()))

	want := "[0] {Open:true}\n" +
		"    shut\n" +
		"        -> [1] p=0.9 r=2\n" +
		"        -> [0] p=0.1 r=0\n" +
		"[1] {Open:false}\n" +
		"2 states, 2 transitions\n"
	assert.Equal(t, want, buf.String())
}

func TestPolicy(t *testing.T) {
	var buf bytes.Buffer
	pol := policy.New([]*domain.ActionID{&shut, nil})
	require.NoError(t, Policy(&buf, door(), pol, []float64{1.8, 0}))

	assert.Equal(t, "[0] {Open:true}: shut (1.8000)\n[1] {Open:false}: - (0.0000)\n", buf.String())
}

func TestMarkdown(t *testing.T) {
	pol := policy.New([]*domain.ActionID{&shut, nil})
	md := Markdown(Summary{Name: "door", RunID: "r1", Discount: 0.9, Iterations: 4, Delta: 1e-6}, door(), pol, []float64{1.8, 0})

	assert.Contains(t, md, "# door")
	assert.Contains(t, md, "**not converged**")
	assert.Contains(t, md, "| 0 | {Open:true} | shut | 1.8000 |")
	assert.Contains(t, md, "| 1 | {Open:false} | - | 0.0000 |")
}
