package browser

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#D75F00", Dark: "#FF8700"}
	muted  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}

	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted)
	highlightStyle = lipgloss.NewStyle().Foreground(accent)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Reverse(true)
	dirStyle       = lipgloss.NewStyle().Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted)
	activePaneStyle = paneStyle.BorderForeground(accent)
)
