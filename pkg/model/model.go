package model

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/aretw0/markov/internal/digest"
	"github.com/aretw0/markov/pkg/domain"
)

// View is the state-type independent, read-only surface of a model, used by solvers,
// simulators and presentation.
type View interface {
	Len() int
	Label(i int) string
	Actions(i int) []domain.ActionTransitions
	Edges() []domain.Transition
	NumTransitions() int
	ActionSet() []domain.ActionID
}

var _ View = (*Model[struct{}])(nil)

// Model is a frozen Markov Decision Process graph.
type Model[S any] struct {
	states      []S
	buckets     map[uint64][]int
	adjacency   [][]domain.ActionTransitions
	transitions int
	hasher      func(S) uint64
	equal       func(a, b S) bool
}

// Len returns the number of reachable states.
func (m *Model[S]) Len() int {
	return len(m.states)
}

// States returns the states by index. The slice must not be modified.
func (m *Model[S]) States() []S {
	return m.states
}

// State returns the state at index i. Panics if i is out of range.
func (m *Model[S]) State(i int) S {
	return m.states[i]
}

// Label returns the display form of the state at index i.
func (m *Model[S]) Label(i int) string {
	return fmt.Sprintf("%+v", m.states[i])
}

// Actions returns the enabled actions at state i with their outgoing transitions, in action
// registration order. Panics if i is out of range.
func (m *Model[S]) Actions(i int) []domain.ActionTransitions {
	return m.adjacency[i]
}

// Transitions returns the transitions of the given action at state i.
func (m *Model[S]) Transitions(i int, id domain.ActionID) ([]domain.Transition, bool) {
	for _, at := range m.adjacency[i] {
		if at.Action.Equal(id) {
			return at.Transitions, true
		}
	}
	return nil, false
}

// Edges returns every transition of the model, grouped by origin state then action.
func (m *Model[S]) Edges() []domain.Transition {
	edges := make([]domain.Transition, 0, m.transitions)
	for _, actions := range m.adjacency {
		for _, at := range actions {
			edges = append(edges, at.Transitions...)
		}
	}
	return edges
}

// NumTransitions returns the total number of recorded transitions.
func (m *Model[S]) NumTransitions() int {
	return m.transitions
}

// ActionSet returns the distinct actions that are enabled in at least one state, ordered by
// registration sequence.
func (m *Model[S]) ActionSet() []domain.ActionID {
	seen := make(map[domain.ActionID]bool)
	var ids []domain.ActionID
	for _, actions := range m.adjacency {
		for _, at := range actions {
			if !seen[at.Action] {
				seen[at.Action] = true
				ids = append(ids, at.Action)
			}
		}
	}
	slices.SortFunc(ids, func(a, b domain.ActionID) int { return a.Seq - b.Seq })
	return ids
}

// Index resolves the index of a state value. Absent states are not a fault.
func (m *Model[S]) Index(state S) (int, bool) {
	return m.lookup(m.hasher(state), state)
}

func defaultHasher[S any](s S) uint64 {
	return digest.Of(s)
}

func defaultEqual[S any](a, b S) bool {
	if eq, ok := any(a).(domain.Equaler[S]); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
