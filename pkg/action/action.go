package action

import (
	"reflect"

	"github.com/mohae/deepcopy"

	"github.com/aretw0/markov/internal/digest"
	"github.com/aretw0/markov/pkg/domain"
)

// Precondition gates an action. It must be a pure function of the state.
type Precondition[S any] func(state S) bool

// Outcome is one stochastic branch of an action. It mutates its private copy of the state into
// the successor, sets the reward (zero when left untouched) and returns the branch probability.
// The probability is taken at face value; branches of one action are not required to sum to 1.
type Outcome[S any] func(state *S, reward *float64) float64

// Successor is the result of evaluating one outcome branch.
type Successor[S any] struct {
	State       S
	Probability float64
	Reward      float64
}

// Definition is anything that expands into concrete actions at registration time.
type Definition[S any] interface {
	Expand() []*Action[S]
}

// Action is a concrete, registrable action.
type Action[S any] struct {
	payload       any
	hash          uint64
	label         string
	seq           int
	preconditions []Precondition[S]
	outcomes      []Outcome[S]
}

func newAction[S any](payload any, pre []Precondition[S], out []Outcome[S]) *Action[S] {
	return &Action[S]{
		payload:       payload,
		hash:          digest.Of(payload),
		label:         digest.Label(payload),
		seq:           -1,
		preconditions: append([]Precondition[S](nil), pre...),
		outcomes:      append([]Outcome[S](nil), out...),
	}
}

// ID returns the identity of the action. The sequence number is -1 until the action is
// registered.
func (a *Action[S]) ID() domain.ActionID {
	return domain.ActionID{Seq: a.seq, Hash: a.hash, Label: a.label}
}

// Payload returns the value the action was declared with.
func (a *Action[S]) Payload() any {
	return a.payload
}

func (a *Action[S]) String() string {
	return a.label
}

// Enabled reports whether every precondition holds at state. An action without preconditions
// is always enabled.
func (a *Action[S]) Enabled(state S) bool {
	for _, pre := range a.preconditions {
		if !pre(state) {
			return false
		}
	}
	return true
}

// Successors evaluates every outcome branch against an independent copy of state, in the order
// the branches were added.
func (a *Action[S]) Successors(state S) []Successor[S] {
	out := make([]Successor[S], 0, len(a.outcomes))
	for _, branch := range a.outcomes {
		next := Clone(state)
		var reward float64
		p := branch(&next, &reward)
		out = append(out, Successor[S]{State: next, Probability: p, Reward: reward})
	}
	return out
}

// Expand makes a concrete action its own definition.
func (a *Action[S]) Expand() []*Action[S] {
	return []*Action[S]{a}
}

// Clone returns an independent copy of state. Types implementing domain.Cloner copy themselves.
// Everything else starts from a plain value copy, so unexported fields keep their values, and
// exported fields are then replaced by reflective deep copies. Reference types held in
// unexported fields stay shared with the input, and structs reached through pointers lose their
// unexported fields; such states should implement domain.Cloner.
func Clone[S any](state S) S {
	if c, ok := any(state).(domain.Cloner[S]); ok {
		return c.Clone()
	}
	cp, ok := deepcopy.Copy(state).(S)
	if !ok {
		// deepcopy returns nil for nil interfaces and pointers; a plain copy is all there is.
		return state
	}
	next := state
	restore(reflect.ValueOf(&next).Elem(), reflect.ValueOf(&cp).Elem())
	return next
}

// restore overwrites the exported fields of dst with their deep copies from src, descending into
// nested struct values. Unexported fields of dst are left as they are.
func restore(dst, src reflect.Value) {
	if dst.Kind() != reflect.Struct {
		dst.Set(src)
		return
	}
	t := dst.Type()
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			continue
		}
		restore(dst.Field(i), src.Field(i))
	}
}
