package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/presentation/chart"
	"github.com/aretw0/markov/internal/presentation/report"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/aretw0/markov/internal/problems"
	"github.com/aretw0/markov/internal/service"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "solve <problem>",
		Short:     "Solve a problem and print its policy",
		Long:      `Builds the problem, runs value iteration and prints the optimal action and value of every state.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: problems.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")
			asJSON, _ := cmd.Flags().GetBool("json")
			chartPath, _ := cmd.Flags().GetString("chart")

			// Solutions go to the configured store only when asked to.
			var store ports.SolutionStore = memory.NewStore()
			if save {
				var err error
				if store, err = a.store(); err != nil {
					return err
				}
			}

			out, err := a.service(store, nil).Solve(cmd.Context(), args[0], solverFlags(cmd)...)
			if err != nil && !errors.Is(err, domain.ErrNotConverged) {
				return err
			}
			if err != nil {
				a.logger.Warn("policy is not converged", "error", err)
			}

			if chartPath != "" {
				if err := writeChart(chartPath, out); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Solution)
			}
			return printSolution(cmd, out)
		},
	}

	addSolverFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the solution as JSON")
	cmd.Flags().Bool("save", false, "Persist the solution in the configured store")
	cmd.Flags().String("chart", "", "Write an HTML convergence chart to this file")
	return cmd
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("discount", 0, "Discount factor in (0, 1] (default: the problem's)")
	cmd.Flags().Float64("tolerance", 0, "Convergence tolerance (default: 1e-5)")
	cmd.Flags().Int("max-iterations", 0, "Cap on the number of sweeps (0: until convergence)")
}

// solverFlags turns explicitly set flags into options, which win over the config file.
func solverFlags(cmd *cobra.Command) []markov.Option {
	var opts []markov.Option
	if cmd.Flags().Changed("discount") {
		v, _ := cmd.Flags().GetFloat64("discount")
		opts = append(opts, markov.WithDiscount(v))
	}
	if cmd.Flags().Changed("tolerance") {
		v, _ := cmd.Flags().GetFloat64("tolerance")
		opts = append(opts, markov.WithTolerance(v))
	}
	if cmd.Flags().Changed("max-iterations") {
		v, _ := cmd.Flags().GetInt("max-iterations")
		opts = append(opts, markov.WithMaxIterations(v))
	}
	return opts
}

func writeChart(path string, out *service.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	defer f.Close()

	series := chart.Series{Name: fmt.Sprintf("γ=%g", out.Result.Config.Discount), Deltas: out.Deltas}
	return chart.Convergence(f, out.Result.Name, series)
}

func printSolution(cmd *cobra.Command, out *service.Outcome) error {
	w := cmd.OutOrStdout()
	view := out.Runner.View()
	res := out.Result

	if !rich(cmd) {
		fmt.Fprintf(w, "%s: %d states, %d iterations, delta %.3g\n", res.Name, view.Len(), res.Iterations, res.Delta)
		return report.Policy(w, view, res.Policy, res.Values)
	}

	tui.PrintBanner(w)
	fmt.Fprintf(w, "%s %s\n", tui.Heading(res.Name), tui.Status(res.Converged))
	fmt.Fprintln(w, tui.Detail("run "+res.RunID))

	md := report.Markdown(report.Summary{
		Name:       res.Name,
		RunID:      res.RunID,
		Discount:   res.Config.Discount,
		Iterations: res.Iterations,
		Delta:      res.Delta,
		Converged:  res.Converged,
	}, view, res.Policy, res.Values)
	rendered, err := tui.NewRenderer(0)(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
