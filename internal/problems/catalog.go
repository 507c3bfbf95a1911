// Package problems holds the built-in example problems served by the CLI, HTTP and MCP surfaces.
package problems

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/dsl"
)

// Problem is one catalog entry.
type Problem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`

	build func(ctx context.Context, opts []markov.Option) (markov.Runner, error)
}

// Build explores the problem. The entry's discount applies unless opts override it.
func (p Problem) Build(ctx context.Context, opts ...markov.Option) (markov.Runner, error) {
	opts = append([]markov.Option{markov.WithName(p.Name), markov.WithDiscount(p.Discount)}, opts...)
	return p.build(ctx, opts)
}

func entry[S any](name, description string, discount float64, problem func() *dsl.Problem[S]) Problem {
	return Problem{
		Name:        name,
		Description: description,
		Discount:    discount,
		build: func(ctx context.Context, opts []markov.Option) (markov.Runner, error) {
			return markov.Compile(ctx, problem(), opts...)
		},
	}
}

var catalog = []Problem{
	entry("bridge", "Four people with one lamp cross a bridge at most two at a time.", 1, func() *dsl.Problem[Bridge] {
		return BridgeProblem(1, 2, 5, 10)
	}),
	entry("cookie-monster", "Visit the bakery, rob it, or play the vending machine.", 0.99, CookieMonster),
	entry("dice", "Roll a 20 sided die or take its value as reward, for 100 turns.", 1, func() *dsl.Problem[Dice] {
		return DiceGame(100, 20)
	}),
	entry("gridworld", "Reach the far corner of a slippery 4x4 grid.", 0.95, func() *dsl.Problem[Position] {
		return GridWorld(4, 4)
	}),
}

// All returns the catalog sorted by name.
func All() []Problem {
	all := slices.Clone(catalog)
	slices.SortFunc(all, func(a, b Problem) int { return strings.Compare(a.Name, b.Name) })
	return all
}

// Names returns the sorted problem names.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, p := range All() {
		names = append(names, p.Name)
	}
	return names
}

// Lookup finds a problem by name.
func Lookup(name string) (Problem, error) {
	for _, p := range catalog {
		if p.Name == name {
			return p, nil
		}
	}
	return Problem{}, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownProblem, name, strings.Join(Names(), ", "))
}
