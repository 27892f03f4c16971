package models

// CommitInfo contains information about a git commit
type CommitInfo struct {
	// Hash is the short commit hash (7 characters)
	Hash string
	// Subject is the first line of commit message
	Subject string
	// Tickets are ticket IDs found in the full message (e.g., ["ATT-123", "ATT-456"])
	Tickets []string
}

// NewCommitInfo creates a new CommitInfo
func NewCommitInfo(hash, subject string, tickets []string) CommitInfo {
	return CommitInfo{
		Hash:    hash,
		Subject: subject,
		Tickets: tickets,
	}
}

// HasTicket reports whether any ticket was found in the message
func (c CommitInfo) HasTicket() bool {
	return len(c.Tickets) > 0
}
