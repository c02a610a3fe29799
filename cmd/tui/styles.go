package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"}
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	success = lipgloss.Color("#16A34A")
	danger  = lipgloss.Color("#DC2626")
)

// Styles groups the lipgloss styles used by the browser.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Section  lipgloss.Style
	Heading  lipgloss.Style
	Option   lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Card     lipgloss.Style
	Meta     lipgloss.Style
	Copied   lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Spinner  lipgloss.Style
}

// DefaultStyles returns the browser's default look.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle: lipgloss.NewStyle().Foreground(muted),
		Section:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		Heading:  lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Option:   lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1),
		Selected: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent),
		Cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Card:     lipgloss.NewStyle().Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(muted).PaddingLeft(4),
		Copied:   lipgloss.NewStyle().Foreground(success).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(danger).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Spinner:  lipgloss.NewStyle().Foreground(accent),
	}
}
