/*
Package dsl provides a fluent builder for declaring Markov Decision Processes in Go.

A Problem collects an initial state and action definitions in declaration order, then builds
the frozen model. Declaration order fixes action sequence numbers, which in turn fixes the
order of per-state actions and the tie-break of policy extraction.

Example usage:

	package main

	import (
		"context"

		"github.com/aretw0/markov/pkg/action"
		"github.com/aretw0/markov/pkg/dsl"
	)

	type Bakery struct {
		Visits int
		Banned bool
	}

	func main() {
		p := dsl.New(Bakery{}).Named("cookie-monster")

		p.Action("rob").
			When(func(s Bakery) bool { return !s.Banned }).
			Outcome(func(s *Bakery, reward *float64) float64 {
				*reward = 5
				return 0.85
			}).
			Outcome(func(s *Bakery, _ *float64) float64 {
				s.Banned = true
				return 0.15
			})

		p.Add(action.Ground[Bakery]("left", "right"))

		m, err := p.Build(context.Background())
		// ... pass m to solver.New(m)
	}
*/
package dsl
