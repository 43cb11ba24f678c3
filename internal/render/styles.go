// Package render draws view rows as a card grid or a fixed-column table,
// plus the header, tab bar and horizontal scroll state for the table.
package render

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	SuccessColor = lipgloss.Color("#10B981") // Green
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	ErrorColor   = lipgloss.Color("#F87171") // Red
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	TextColor    = lipgloss.Color("#F9FAFB") // Light text
	BorderColor  = lipgloss.Color("#6B7280") // Gray

	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Error = lipgloss.NewStyle().Foreground(ErrorColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Tab styles
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	ToggleActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// Card styles
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	CardVendor = lipgloss.NewStyle().Bold(true).Foreground(TextColor)

	// Highlighted query matches. Cards emphasize like <i><u>, the table like <b>.
	CardMatch  = lipgloss.NewStyle().Italic(true).Underline(true)
	TableMatch = lipgloss.NewStyle().Bold(true)

	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(MutedColor)

	Badge = lipgloss.NewStyle().Padding(0, 1)

	EmptyState = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Padding(1, 2)

	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SuccessColor)
)

// StatusColor returns the badge color for a status class.
func StatusColor(class string) lipgloss.Color {
	switch class {
	case "no-issues":
		return SuccessColor
	case "few-issues":
		return WarningColor
	case "many-issues", "critical":
		return ErrorColor
	default:
		return MutedColor
	}
}

// StatusBadge renders the status text colored by class.
func StatusBadge(text, class string) string {
	if text == "" {
		return ""
	}
	return Badge.Foreground(StatusColor(class)).Render(text)
}
