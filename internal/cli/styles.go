package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/monoctl/monoctl/internal/models"
)

var (
	modifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)

	affectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	unaffectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	rootStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)
)

// renderStatus returns the styled string for a project status.
func renderStatus(status models.Status) string {
	switch status {
	case models.StatusModified:
		return modifiedStyle.Render(string(status))
	case models.StatusAffected:
		return affectedStyle.Render(string(status))
	default:
		return unaffectedStyle.Render(string(status))
	}
}
