// Package commitmsg reconciles a commit message with the ticket found in the
// branch name. Everything here is a pure function of its inputs.
package commitmsg

import (
	"github.com/wahlandcase/attuned.commitmsg/internal/config"
)

// ExtractTicket returns the leftmost match of the configured ticket pattern
// in text, or "" when there is none or extraction is disabled.
func ExtractTicket(text string, cfg *config.Config) string {
	re := cfg.TicketRegex()
	if re == nil {
		return ""
	}
	return re.FindString(text)
}
