package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.commitmsg/internal/models"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "ok":
		return "✓", ColorGreen
	case "missing":
		return "✗", ColorRed
	default:
		return "·", ColorWhite
	}
}

// CommitLine renders one commit of `attmsg log`:
//
//	✓ 1a2b3c4 [ATT-1] add login  ATT-1
func CommitLine(c models.CommitInfo) string {
	status := "missing"
	if c.HasTicket() {
		status = "ok"
	}
	icon, color := StatusIcon(status)

	hashStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)

	line := fmt.Sprintf("%s %s %s",
		lipgloss.NewStyle().Foreground(color).Render(icon),
		hashStyle.Render(c.Hash),
		c.Subject,
	)

	if c.HasTicket() {
		badges := make([]string, 0, len(c.Tickets))
		for _, ticket := range c.Tickets {
			badges = append(badges, TicketBadge(ticket))
		}
		line += "  " + strings.Join(badges, " ")
	}

	return line
}
