package action

// Builder declares a simple action around a single payload.
type Builder[S any] struct {
	payload       any
	preconditions []Precondition[S]
	outcomes      []Outcome[S]
}

// New starts a simple action. The payload provides the action's identity hash and display form,
// e.g. a string name or a small struct.
func New[S any](payload any) *Builder[S] {
	return &Builder[S]{payload: payload}
}

// When adds preconditions. All of them must hold for the action to be enabled.
func (b *Builder[S]) When(pre ...Precondition[S]) *Builder[S] {
	b.preconditions = append(b.preconditions, pre...)
	return b
}

// Outcome adds a branch. Branches are evaluated in the order they are added.
func (b *Builder[S]) Outcome(branch Outcome[S]) *Builder[S] {
	b.outcomes = append(b.outcomes, branch)
	return b
}

// Build returns the concrete, not yet registered action.
func (b *Builder[S]) Build() *Action[S] {
	return newAction(b.payload, b.preconditions, b.outcomes)
}

// Expand implements Definition.
func (b *Builder[S]) Expand() []*Action[S] {
	return []*Action[S]{b.Build()}
}
