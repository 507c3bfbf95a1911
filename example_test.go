package markov_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/dsl"
)

// ExampleCompile demonstrates declaring a problem with the DSL and solving it.
func ExampleCompile() {
	// 1. Declare a two-state problem: flipping always pays 1.
	p := dsl.New(false).Named("toggle")
	p.Action("flip").Outcome(func(s *bool, reward *float64) float64 {
		*s = !*s
		*reward = 1
		return 1
	})

	// 2. Build the engine with a custom discount
	ctx := context.Background()
	eng, err := markov.Compile(ctx, p, markov.WithDiscount(0.9))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Solve
	res, err := eng.Solve(ctx)
	if err != nil {
		log.Fatal(err)
	}

	best, _ := res.Policy.Action(0)
	fmt.Printf("states: %d\n", eng.View().Len())
	fmt.Printf("value: %.2f\n", res.Values[0])
	fmt.Printf("best: %s\n", best.Label)

	// Output:
	// states: 2
	// value: 10.00
	// best: flip
}

type position struct{ X, Y int }

// ExampleNew_grounding demonstrates a grounded action family over a bounded line.
func ExampleNew_grounding() {
	walk := action.Ground[position](-1, 1).
		Outcome(func(step int) action.Outcome[position] {
			return func(s *position, reward *float64) float64 {
				s.X = max(0, min(3, s.X+step))
				if s.X == 3 {
					*reward = 1
				}
				return 1
			}
		})

	ctx := context.Background()
	eng, err := markov.New(ctx, position{}, []action.Definition[position]{walk})
	if err != nil {
		log.Fatal(err)
	}

	for _, id := range eng.Model().ActionSet() {
		fmt.Println(id)
	}

	// Output:
	// -1#0
	// 1#1
}
