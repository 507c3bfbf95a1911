package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/domain"
)

func newGraphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "graph <problem>",
		Short:     "Export the transition graph visualization",
		Long:      `Builds the problem and outputs a Mermaid diagram (graph TD) of its states and transitions.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: problems.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			withPolicy, _ := cmd.Flags().GetBool("policy")
			svc := a.service(memory.NewStore(), nil)

			if !withPolicy {
				runner, err := svc.Build(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(runner.View(), nil))
				return err
			}

			out, err := svc.Solve(cmd.Context(), args[0])
			if err != nil && !errors.Is(err, domain.ErrNotConverged) {
				return err
			}
			overlay := &graph.Overlay{Policy: out.Result.Policy}
			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(out.Runner.View(), overlay))
			return err
		},
	}
	cmd.Flags().Bool("policy", false, "Solve first and highlight the policy's edges")
	return cmd
}
