// Package theme holds the lipgloss styles used by the drover CLI.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors is the active color palette.
var Colors = struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	TextMuted lipgloss.Color
}{
	Primary:   lipgloss.Color("#5fafff"),
	Success:   lipgloss.Color("#00af5f"),
	Error:     lipgloss.Color("#ff5f5f"),
	Warning:   lipgloss.Color("#ffaf00"),
	TextMuted: lipgloss.Color("#808080"),
}

var (
	// SuccessStyle renders completed-run status lines.
	SuccessStyle = lipgloss.NewStyle().Foreground(Colors.Success).Bold(true)

	// ErrorStyle renders failed-run status lines.
	ErrorStyle = lipgloss.NewStyle().Foreground(Colors.Error).Bold(true)

	// WarningStyle renders limit/timeout status lines.
	WarningStyle = lipgloss.NewStyle().Foreground(Colors.Warning).Bold(true)

	// MutedStyle renders secondary detail such as step counts.
	MutedStyle = lipgloss.NewStyle().Foreground(Colors.TextMuted)

	// ToolNameStyle renders tool names in listings.
	ToolNameStyle = lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true)
)
