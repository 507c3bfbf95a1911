// Package policy holds the result of solving a Markov Decision Process: for every state, the
// action to take, or none when no action is enabled there.
package policy

import "github.com/aretw0/markov/pkg/domain"

// Policy is an immutable, index-addressable sequence of optional actions.
type Policy struct {
	choices []*domain.ActionID
}

// New creates a policy from per-state choices; nil means no action. The input is copied.
func New(choices []*domain.ActionID) *Policy {
	p := &Policy{choices: make([]*domain.ActionID, len(choices))}
	for i, c := range choices {
		if c != nil {
			id := *c
			p.choices[i] = &id
		}
	}
	return p
}

// Len returns the number of states covered by the policy.
func (p *Policy) Len() int {
	return len(p.choices)
}

// Action returns the chosen action at state index i. Panics if i is out of range.
func (p *Policy) Action(i int) (domain.ActionID, bool) {
	c := p.choices[i]
	if c == nil {
		return domain.ActionID{}, false
	}
	return *c, true
}

// Actions returns a copy of every per-state choice, suitable for serialisation.
func (p *Policy) Actions() []*domain.ActionID {
	return New(p.choices).choices
}

// Decided returns the number of states that have an action.
func (p *Policy) Decided() int {
	n := 0
	for _, c := range p.choices {
		if c != nil {
			n++
		}
	}
	return n
}
