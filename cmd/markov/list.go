package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/markov/internal/problems"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISCOUNT\tDESCRIPTION")
			for _, p := range problems.All() {
				fmt.Fprintf(w, "%s\t%g\t%s\n", p.Name, p.Discount, p.Description)
			}
			return w.Flush()
		},
	}
}
