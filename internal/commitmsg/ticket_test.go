package commitmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wahlandcase/attuned.commitmsg/internal/config"
)

func TestExtractTicketFromBranch(t *testing.T) {
	cfg := config.New()

	tests := []struct {
		name   string
		branch string
		want   string
	}{
		{"bare ticket", "TASK-100", "TASK-100"},
		{"ticket with suffix", "JIRA-1-is-the-best", "JIRA-1"},
		{"uppercase words after ticket", "ROBOT-777-LETS-get-it-done-2", "ROBOT-777"},
		{"issue directory", "issue/EASY-42-its-too-easy-baby", "EASY-42"},
		{"ticket as directory", "TST-123/test-branch-name", "TST-123"},
		{"first of two tickets", "TST-123-TST-456/test-branch-name", "TST-123"},
		{"lowercase code", "test-500-lowercase-wont-work", ""},
		{"no dash", "TEST100-nope-not-like-this", ""},
		{"no dash short", "BOSS42", ""},
		{"no ticket", "branch-name", ""},
		{"digits in code", "issue/P2X-543-refactor-externalAssetsType-to-assetsScriptType*", "X-543"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTicket(tt.branch, cfg))
		})
	}
}

func TestExtractTicketCustomPattern(t *testing.T) {
	cfg := config.New()
	cfg.Ticket.Pattern = `[A-Z0-9]+-\d+`
	path := writeConfig(t, cfg)

	loaded, err := config.Load(path, "")
	assert.NoError(t, err)
	assert.Equal(t, "P2X-543", ExtractTicket("issue/P2X-543-refactor", loaded))
}

func TestExtractTicketDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Ticket.Pattern = ""
	path := writeConfig(t, cfg)

	loaded, err := config.Load(path, "")
	assert.NoError(t, err)
	assert.Equal(t, "", ExtractTicket("TASK-100", loaded))
}

func TestExtractTicketIsRepeatable(t *testing.T) {
	cfg := config.New()

	// The compiled pattern keeps no state between calls
	for i := 0; i < 3; i++ {
		assert.Equal(t, "ABC-1", ExtractTicket("x ABC-1 y DEF-2", cfg))
		assert.Equal(t, "", ExtractTicket("nothing here", cfg))
	}
}
