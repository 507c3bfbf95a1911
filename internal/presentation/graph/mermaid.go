package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/markov/pkg/model"
	"github.com/aretw0/markov/pkg/policy"
)

// Overlay contains solve and simulation data to visualize on the graph.
type Overlay struct {
	Policy  *policy.Policy
	Visited []int
	Current int
}

// GenerateMermaid produces a Mermaid flowchart of the model.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Terminal state (no actions): [[Subroutine]]
// - Default: [Rectangle]
// Edges are labelled with action, probability and reward. With an overlay, policy edges are
// drawn thick and visited states are styled.
func GenerateMermaid(view model.View, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i := range view.Len() {
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))"
		case len(view.Actions(i)) == 0:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(i), opener, escape(view.Label(i)), closer)

		for _, at := range view.Actions(i) {
			arrow := "-->"
			if overlay != nil && overlay.Policy != nil {
				if best, ok := overlay.Policy.Action(i); ok && best.Equal(at.Action) {
					arrow = "==>"
				}
			}
			for _, t := range at.Transitions {
				label := fmt.Sprintf("%s p=%g", at.Action.Label, t.Probability)
				if t.Reward != 0 {
					label += fmt.Sprintf(" r=%g", t.Reward)
				}
				fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n", nodeID(t.From), arrow, escape(label), nodeID(t.To))
			}
		}
	}

	// Apply Overlay Styles
	if overlay != nil && (len(overlay.Visited) > 0 || overlay.Current > 0) {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, i := range overlay.Visited {
			if i < 0 || i >= view.Len() || seen[i] {
				continue
			}
			seen[i] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(i))
		}
		if overlay.Current > 0 && overlay.Current < view.Len() {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.Current))
		}
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("s%d", i)
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
