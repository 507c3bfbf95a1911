package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/markov/internal/presentation/report"
	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/pkg/adapters/memory"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "inspect <problem>",
		Short:     "Print every state of a problem with its transitions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: problems.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.service(memory.NewStore(), nil).Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report.Transitions(cmd.OutOrStdout(), runner.View())
		},
	}
}
