package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorBlue     = lipgloss.Color("#5555FF")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8
)

// ConfigureOutput picks the colour profile for w. Non-terminals and NO_COLOR
// get plain text, so messages stay readable in git GUIs and CI logs.
func ConfigureOutput(w io.Writer) {
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
}

// TicketBadge highlights a ticket ID
func TicketBadge(ticket string) string {
	return lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorBlue).
		Bold(true).
		Render(ticket)
}

// Warning tints text that needs attention but is not a failure
func Warning(text string) string {
	return lipgloss.NewStyle().Foreground(ColorYellow).Render(text)
}

// ErrorBadge highlights a short failure summary
func ErrorBadge(text string) string {
	return lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorRed).
		Bold(true).
		Render(text)
}
