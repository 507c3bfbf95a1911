/*
Package markov is a library for declaring and solving Markov Decision Processes.

A problem is declared as an initial state plus a set of actions. Each action has preconditions
over the state and one or more stochastic outcome branches that mutate a copy of the state, set a
reward and return a probability. Parametrized action families ("grounding") expand into one
concrete action per parameter value.

From this declaration the engine explores every reachable state into a frozen transition graph,
then runs value iteration to compute the optimal value of each state and the greedy policy.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/markov"
		"github.com/aretw0/markov/pkg/dsl"
	)

	type Bakery struct {
		Banned bool
	}

	func main() {
		p := dsl.New(Bakery{}).Named("cookie-monster")
		p.Action("rob").
			When(func(s Bakery) bool { return !s.Banned }).
			Outcome(func(_ *Bakery, reward *float64) float64 {
				*reward = 5
				return 0.85
			}).
			Outcome(func(s *Bakery, _ *float64) float64 {
				s.Banned = true
				return 0.15
			})

		ctx := context.Background()
		eng, err := markov.Compile(ctx, p, markov.WithDiscount(0.9))
		if err != nil {
			log.Fatal(err)
		}

		res, err := eng.Solve(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Values[0])
	}

# Layers

  - pkg/action: concrete and grounding action definitions, and the registry.
  - pkg/model: reachability exploration and the frozen graph.
  - pkg/solver: value iteration and policy extraction.
  - pkg/dsl: a fluent builder tying the above together.
  - pkg/adapters: solution stores, HTTP and MCP surfaces.
*/
package markov
