package action

// Enumerable is implemented by finite parameter domains.
type Enumerable[P any] interface {
	Enumerate() []P
}

// Grounding declares a parametrized action family. Preconditions and outcomes are written as
// functions of a parameter value; expansion produces one concrete action per domain value,
// each closing over its own parameter. The parameter value is the concrete action's payload.
type Grounding[S, P any] struct {
	domain        []P
	preconditions []func(P) Precondition[S]
	outcomes      []func(P) Outcome[S]
}

// Ground starts a grounding action over the given domain values, expanded in the given order.
func Ground[S, P any](domain ...P) *Grounding[S, P] {
	return &Grounding[S, P]{domain: append([]P(nil), domain...)}
}

// GroundOver starts a grounding action over an enumerable domain.
func GroundOver[S, P any](e Enumerable[P]) *Grounding[S, P] {
	return Ground[S](e.Enumerate()...)
}

// When adds a precondition template.
func (g *Grounding[S, P]) When(pre ...func(P) Precondition[S]) *Grounding[S, P] {
	g.preconditions = append(g.preconditions, pre...)
	return g
}

// Outcome adds an outcome branch template.
func (g *Grounding[S, P]) Outcome(branch func(P) Outcome[S]) *Grounding[S, P] {
	g.outcomes = append(g.outcomes, branch)
	return g
}

// Expand implements Definition: one action per domain value.
func (g *Grounding[S, P]) Expand() []*Action[S] {
	actions := make([]*Action[S], 0, len(g.domain))
	for _, param := range g.domain {
		pre := make([]Precondition[S], 0, len(g.preconditions))
		for _, tmpl := range g.preconditions {
			pre = append(pre, tmpl(param))
		}
		out := make([]Outcome[S], 0, len(g.outcomes))
		for _, tmpl := range g.outcomes {
			out = append(out, tmpl(param))
		}
		actions = append(actions, newAction(any(param), pre, out))
	}
	return actions
}
