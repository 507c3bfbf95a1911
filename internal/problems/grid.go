package problems

import (
	"fmt"

	"github.com/aretw0/markov/pkg/action"
	"github.com/aretw0/markov/pkg/dsl"
)

// Direction of a walk on the grid.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	return [...]string{"up", "down", "left", "right"}[d]
}

// sideways returns the two directions a slip may take instead.
func (d Direction) sideways() [2]Direction {
	if d == Up || d == Down {
		return [2]Direction{Left, Right}
	}
	return [2]Direction{Up, Down}
}

// Walk is the grounded move action.
type Walk struct{}

// Enumerate implements action.Enumerable.
func (Walk) Enumerate() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// Position on a grid with 1-based coordinates.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// GridWorld declares a slippery grid: a walk goes the intended way with probability 0.8 and
// slips sideways otherwise, bumping into the borders. Each step costs 1 until the walker stands
// on the goal in the far corner.
func GridWorld(width, height int) *dsl.Problem[Position] {
	goal := Position{X: width, Y: height}

	move := func(p *Position, d Direction) {
		switch d {
		case Up:
			p.Y = min(p.Y+1, height)
		case Down:
			p.Y = max(p.Y-1, 1)
		case Left:
			p.X = max(p.X-1, 1)
		case Right:
			p.X = min(p.X+1, width)
		}
	}

	branch := func(prob float64, slip func(Direction) Direction) func(Direction) action.Outcome[Position] {
		return func(d Direction) action.Outcome[Position] {
			return func(p *Position, reward *float64) float64 {
				move(p, slip(d))
				*reward = -1
				return prob
			}
		}
	}

	walk := action.GroundOver[Position, Direction](Walk{}).
		When(func(Direction) action.Precondition[Position] {
			return func(p Position) bool { return p != goal }
		}).
		Outcome(branch(0.8, func(d Direction) Direction { return d })).
		Outcome(branch(0.1, func(d Direction) Direction { return d.sideways()[0] })).
		Outcome(branch(0.1, func(d Direction) Direction { return d.sideways()[1] }))

	return dsl.New(Position{X: 1, Y: 1}).Named(fmt.Sprintf("gridworld-%dx%d", width, height)).Add(walk)
}
