package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/policy"
)

type view [][]domain.ActionTransitions

func (v view) Len() int {
	return len(v)
}

func (v view) Label(i int) string {
	return []string{"start", `say "hi"`, "end"}[i]
}

func (v view) Actions(i int) []domain.ActionTransitions {
	return v[i]
}

func (v view) Edges() []domain.Transition {
	return nil
}

func (v view) NumTransitions() int {
	return 0
}

func (v view) ActionSet() []domain.ActionID {
	return nil
}

var (
	walk = domain.ActionID{Seq: 0, Hash: 1, Label: "walk"}
	run  = domain.ActionID{Seq: 1, Hash: 2, Label: "run"}
)

func fixture() view {
	return view{
		{
			{Action: walk, Transitions: []domain.Transition{{From: 0, To: 1, Action: walk, Probability: 1}}},
			{Action: run, Transitions: []domain.Transition{
				{From: 0, To: 2, Action: run, Probability: 0.5, Reward: 3},
				{From: 0, To: 0, Action: run, Probability: 0.5},
			}},
		},
		{
			{Action: walk, Transitions: []domain.Transition{{From: 1, To: 2, Action: walk, Probability: 1, Reward: 1}}},
		},
		nil,
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Node Shapes",
			contains: []string{
				"graph TD",
				`s0(("start"))`,
				`s1["say 'hi'"]`,
				`s2[["end"]]`,
			},
		},
		{
			name: "Edge Labels",
			contains: []string{
				`s0 -->|"walk p=1"| s1`,
				`s0 -->|"run p=0.5 r=3"| s2`,
				`s0 -->|"run p=0.5"| s0`,
				`s1 -->|"walk p=1 r=1"| s2`,
			},
			excludes: []string{"Overlay Styles"},
		},
		{
			name: "Policy Overlay",
			overlay: &graph.Overlay{
				Policy: policy.New([]*domain.ActionID{&run, &walk, nil}),
			},
			contains: []string{
				`s0 ==>|"run p=0.5 r=3"| s2`,
				`s0 -->|"walk p=1"| s1`,
				`s1 ==>|"walk p=1 r=1"| s2`,
			},
		},
		{
			name: "Trajectory Overlay",
			overlay: &graph.Overlay{
				Visited: []int{0, 0, 2, 9},
				Current: 2,
			},
			contains: []string{
				"classDef visited",
				"class s0 visited;",
				"class s2 current;",
			},
			excludes: []string{"class s9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(fixture(), tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
			assert.LessOrEqual(t, strings.Count(got, "class s0 visited;"), 1, "visited states are deduplicated")
		})
	}
}
