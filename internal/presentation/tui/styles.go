package tui

import "github.com/charmbracelet/lipgloss"

var (
	headingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")).Bold(true)
	convergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	stoppedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	detailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// Heading styles a section title.
func Heading(text string) string {
	return headingStyle.Render(text)
}

// Status renders the convergence state of a solve.
func Status(converged bool) string {
	if converged {
		return convergedStyle.Render("converged")
	}
	return stoppedStyle.Render("not converged")
}

// Detail styles secondary information.
func Detail(text string) string {
	return detailStyle.Render(text)
}
