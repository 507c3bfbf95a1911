package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/simulate"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "simulate <problem>",
		Short:     "Solve a problem, then follow its policy from the initial state",
		Args:      cobra.ExactArgs(1),
		ValidArgs: problems.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			seed, _ := cmd.Flags().GetUint64("seed")

			out, err := a.service(memory.NewStore(), nil).Solve(cmd.Context(), args[0], solverFlags(cmd)...)
			if err != nil && !errors.Is(err, domain.ErrNotConverged) {
				return err
			}

			view := out.Runner.View()
			rng := rand.New(rand.NewPCG(seed, seed))
			traj, err := simulate.Run(cmd.Context(), view, out.Result.Policy, 0, steps, rng)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "start %s\n", view.Label(traj.Start))
			for _, s := range traj.Steps {
				fmt.Fprintf(w, "  %s -> %s (reward %g)\n", s.Action.Label, view.Label(s.To), s.Reward)
			}
			status := "step limit reached"
			if traj.Halted {
				status = "no action left"
			}
			fmt.Fprintf(w, "total reward %g after %d steps, %s\n", traj.Total, len(traj.Steps), status)
			return nil
		},
	}
	addSolverFlags(cmd)
	cmd.Flags().Int("steps", 20, "Maximum number of steps, stopping earlier when no action is left")
	cmd.Flags().Uint64("seed", 1, "Random seed for outcome sampling")
	return cmd
}
