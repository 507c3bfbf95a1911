// Package report renders models and solutions as plain text and markdown.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/markov/pkg/model"
	"github.com/aretw0/markov/pkg/policy"
)

// Transitions writes every state followed by its actions and their outcome branches.
func Transitions(w io.Writer, view model.View) error {
	for i := range view.Len() {
		if _, err := fmt.Fprintf(w, "[%d] %s\n", i, view.Label(i)); err != nil {
			return err
		}
		for _, at := range view.Actions(i) {
			if _, err := fmt.Fprintf(w, "    %s\n", at.Action.Label); err != nil {
				return err
			}
			for _, t := range at.Transitions {
				if _, err := fmt.Fprintf(w, "        -> [%d] p=%g r=%g\n", t.To, t.Probability, t.Reward); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d states, %d transitions\n", view.Len(), view.NumTransitions())
	return err
}

// Policy writes the chosen action and value of every state.
func Policy(w io.Writer, view model.View, pol *policy.Policy, values []float64) error {
	for i := range view.Len() {
		choice := "-"
		if id, ok := pol.Action(i); ok {
			choice = id.Label
		}
		if _, err := fmt.Fprintf(w, "[%d] %s: %s (%.4f)\n", i, view.Label(i), choice, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Summary describes one solve for the markdown report.
type Summary struct {
	Name       string
	RunID      string
	Discount   float64
	Iterations int
	Delta      float64
	Converged  bool
}

// Markdown renders the solve summary and the policy table.
func Markdown(s Summary, view model.View, pol *policy.Policy, values []float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", s.Name)

	status := "converged"
	if !s.Converged {
		status = "**not converged**"
	}
	fmt.Fprintf(&sb, "- run: `%s`\n", s.RunID)
	fmt.Fprintf(&sb, "- discount: %g\n", s.Discount)
	fmt.Fprintf(&sb, "- iterations: %d (%s, delta %.3g)\n", s.Iterations, status, s.Delta)
	fmt.Fprintf(&sb, "- states: %d, transitions: %d\n\n", view.Len(), view.NumTransitions())

	sb.WriteString("| # | State | Action | Value |\n")
	sb.WriteString("|---|-------|--------|-------|\n")
	for i := range view.Len() {
		choice := "-"
		if id, ok := pol.Action(i); ok {
			choice = id.Label
		}
		label := strings.ReplaceAll(view.Label(i), "|", "\\|")
		fmt.Fprintf(&sb, "| %d | %s | %s | %.4f |\n", i, label, choice, values[i])
	}
	return sb.String()
}
