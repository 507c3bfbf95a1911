package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/model"
)

// Problem manages the declaration of one Markov Decision Process.
type Problem[S any] struct {
	name    string
	initial S
	defs    []action.Definition[S]
	opts    []model.Option[S]
}

// New creates a new problem starting from the given initial state.
func New[S any](initial S) *Problem[S] {
	return &Problem[S]{initial: initial}
}

// Named sets a descriptive name, used in logs and error messages.
func (p *Problem[S]) Named(name string) *Problem[S] {
	p.name = name
	return p
}

// Name returns the problem name.
func (p *Problem[S]) Name() string {
	return p.name
}

// Action declares a simple action and returns its builder for configuration.
// The builder is expanded at Build time, so it may be configured after the call.
func (p *Problem[S]) Action(payload any) *action.Builder[S] {
	b := action.New[S](payload)
	p.defs = append(p.defs, b)
	return b
}

// Add appends action definitions, simple or grounding, in order.
func (p *Problem[S]) Add(defs ...action.Definition[S]) *Problem[S] {
	p.defs = append(p.defs, defs...)
	return p
}

// With appends graph construction options.
func (p *Problem[S]) With(opts ...model.Option[S]) *Problem[S] {
	p.opts = append(p.opts, opts...)
	return p
}

// Initial returns the initial state.
func (p *Problem[S]) Initial() S {
	return p.initial
}

// Definitions returns the declared definitions in order.
func (p *Problem[S]) Definitions() []action.Definition[S] {
	return append([]action.Definition[S](nil), p.defs...)
}

// Options returns the declared construction options.
func (p *Problem[S]) Options() []model.Option[S] {
	return append([]model.Option[S](nil), p.opts...)
}

// Build explores the problem and returns the frozen model. Extra options are applied after
// the ones declared with With.
func (p *Problem[S]) Build(ctx context.Context, opts ...model.Option[S]) (*model.Model[S], error) {
	all := append(p.Options(), opts...)
	m, err := model.Build(ctx, p.initial, p.defs, all...)
	if err != nil {
		if p.name != "" {
			return nil, fmt.Errorf("failed to build %s: %w", p.name, err)
		}
		return nil, fmt.Errorf("failed to build problem: %w", err)
	}
	return m, nil
}
