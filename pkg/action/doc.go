/*
Package action declares the actions of a Markov Decision Process.

An action is a payload (any value, used for identity and display), an ordered list of
preconditions that gate it, and an ordered list of outcome branches. Each branch receives a
private copy of the current state, mutates it into a successor, sets the reward and returns the
branch probability.

Two kinds of definitions exist:

  - Simple actions, built with New and configured with When and Outcome.
  - Grounding actions, built with Ground: a template written as functions of a parameter,
    expanded into one concrete action per value of a finite domain.

	walk := action.Ground[World](North, East, South, West).
		Outcome(func(d Dir) action.Outcome[World] {
			return func(w *World, reward *float64) float64 {
				w.Move(d)
				*reward = -1
				return 0.8
			}
		})

Definitions are expanded once, when they are registered in a Registry; the Registry assigns
the sequence numbers that make every registered action's identity unique.
*/
package action
