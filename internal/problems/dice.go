package problems

import (
	"fmt"

	"github.com/aretw0/markov/pkg/dsl"
)

// Dice is the state of the dice game. Value is -1 before the first roll.
type Dice struct {
	Value int
	Turns int
}

// DiceGame declares a game of the given number of turns: each turn either rolls a fair die
// with the given number of faces or takes the current value as reward. The opening roll costs
// an extra turn.
func DiceGame(turns, faces int) *dsl.Problem[Dice] {
	p := dsl.New(Dice{Value: -1, Turns: turns + 1}).Named(fmt.Sprintf("dice-%dx%d", turns, faces))

	roll := p.Action("roll").When(func(s Dice) bool { return s.Turns > 0 })
	for face := 1; face <= faces; face++ {
		roll.Outcome(func(s *Dice, _ *float64) float64 {
			s.Value = face
			s.Turns--
			return 1 / float64(faces)
		})
	}

	p.Action("take").
		When(func(s Dice) bool { return s.Turns > 0 && s.Value >= 0 }).
		Outcome(func(s *Dice, reward *float64) float64 {
			*reward = float64(s.Value)
			s.Turns--
			return 1
		})

	return p
}
