package commitmsg

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.commitmsg/internal/config"
)

func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attmsg.toml")
	require.NoError(t, cfg.Save(path))
	return path
}

func TestInsertTicketFromBranch(t *testing.T) {
	cfg := config.New()
	const message = "hello there"

	tests := []struct {
		branch  string
		message string
		want    string
	}{
		{"TASK-100", message, "[TASK-100] hello there"},
		{"JIRA-1-is-the-best", message, "[JIRA-1] hello there"},
		{"issue/EASY-42-its-too-easy-baby", message, "[EASY-42] hello there"},
		{"TST-123-TST-456/test-branch-name", message, "[TST-123] hello there"},
		{"test-500-lowercase-wont-work", message, "hello there"},
		{"TEST100-nope-not-like-this", message, "hello there"},
		{"BOSS42", message, "hello there"},
		// Same ticket in branch and message
		{"TEST-100-branch-name", "TEST-100 hello there", "TEST-100 hello there"},
		// Different ticket in message: both are kept
		{"TEST-100-branch-name", "DIFF-123 hello there", "[TEST-100] DIFF-123 hello there"},
		// Ticket only in message
		{"branch-name", "TEST-123 hello there", "TEST-123 hello there"},
		{"branch-name", message, "hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.branch+"/"+tt.message, func(t *testing.T) {
			ticket := ExtractTicket(tt.branch, cfg)
			got := tt.message
			if ShouldInsertTicket(tt.message, ticket, cfg) {
				got = InsertTicket(tt.message, ticket, cfg)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertTicket(t *testing.T) {
	tests := []struct {
		name    string
		message string
		ticket  string
		modify  func(*config.Config)
		want    string
	}{
		{
			name:    "plain message",
			message: "hello there",
			ticket:  "TASK-100",
			want:    "[TASK-100] hello there",
		},
		{
			name:    "conventional commit with scope",
			message: "build(top-secret): Added feature",
			ticket:  "BOSS-420",
			want:    "build(top-secret): [BOSS-420] Added feature",
		},
		{
			name:    "conventional commit without scope",
			message: "fix: handle timeout",
			ticket:  "BOSS-420",
			want:    "fix: [BOSS-420] handle timeout",
		},
		{
			name:    "breaking change marker after scope",
			message: "feat(api)!: drop v1",
			ticket:  "BOSS-420",
			want:    "feat(api)!: [BOSS-420] drop v1",
		},
		{
			name:    "unknown type is plain text",
			message: "wip(api): stuff",
			ticket:  "BOSS-420",
			want:    "[BOSS-420] wip(api): stuff",
		},
		{
			name:    "conventional commit disabled",
			message: "chore(deps): bump",
			ticket:  "BOSS-420",
			modify:  func(c *config.Config) { c.Message.ConventionalCommit = false },
			want:    "[BOSS-420] chore(deps): bump",
		},
		{
			name:    "custom pattern with conventional commit",
			message: "chore(deps): Finally solved that problem!",
			ticket:  "JIRA-4321",
			modify:  func(c *config.Config) { c.Message.Pattern = "[$J]. $M" },
			want:    "chore(deps): [JIRA-4321]. Finally solved that problem!",
		},
		{
			name:    "hyphenated scope",
			message: "feat(new-service): Finally solved that problem!",
			ticket:  "JIRA-4321",
			want:    "feat(new-service): [JIRA-4321] Finally solved that problem!",
		},
		{
			name:    "comment before first line",
			message: "# This line is comment\nchore(deps): Finally solved that problem!",
			ticket:  "JIRA-4321",
			want:    "# This line is comment\nchore(deps): [JIRA-4321] Finally solved that problem!",
		},
		{
			name:    "blank lines before first line",
			message: "\n\nhello\n\nbody text",
			ticket:  "TASK-1",
			want:    "\n\n[TASK-1] hello\n\nbody text",
		},
		{
			name:    "leading whitespace is stripped",
			message: "   hello  \n  body",
			ticket:  "TASK-1",
			want:    "[TASK-1] hello  \nbody",
		},
		{
			name:    "different ticket already present",
			message: "[BOSS-456] Added feature",
			ticket:  "BOSS-420",
			want:    "[BOSS-420] [BOSS-456] Added feature",
		},
		{
			name:    "ticket already in body",
			message: "TEST-100 hello there",
			ticket:  "TEST-100",
			want:    "TEST-100 hello there",
		},
		{
			name:    "comment only message is commented out",
			message: "# comment only\n#Great job!",
			ticket:  "BOSS-420",
			want:    "# [BOSS-420] \n# " + uncommentHint + "\n# comment only\n#Great job!",
		},
		{
			name:    "editor template is commented out",
			message: "\n# Please enter the commit message for your changes.\n# On branch TASK-1\n",
			ticket:  "TASK-1",
			want:    "# [TASK-1] \n# " + uncommentHint + "\n\n# Please enter the commit message for your changes.\n# On branch TASK-1\n",
		},
		{
			name:    "editor template with empty allowed",
			message: "\n# Please enter the commit message for your changes.\n# On branch TASK-1\n",
			ticket:  "TASK-1",
			modify:  func(c *config.Config) { c.Message.AllowEmpty = true },
			want:    "[TASK-1] \n\n# Please enter the commit message for your changes.\n# On branch TASK-1\n",
		},
		{
			name:    "comment only message with empty allowed",
			message: "# comment only\n#Great job!",
			ticket:  "BOSS-420",
			modify:  func(c *config.Config) { c.Message.AllowEmpty = true },
			want:    "[BOSS-420] \n# comment only\n#Great job!",
		},
		{
			name:    "empty message with empty allowed",
			message: "",
			ticket:  "BOSS-420",
			modify:  func(c *config.Config) { c.Message.AllowEmpty = true },
			want:    "[BOSS-420] \n",
		},
		{
			name:    "empty message is left alone",
			message: "",
			ticket:  "BOSS-420",
			want:    "",
		},
		{
			name:    "whitespace message is left alone",
			message: "  \n",
			ticket:  "BOSS-420",
			want:    "  \n",
		},
		{
			name:    "custom comment char",
			message: "; generated\nhello",
			ticket:  "TASK-1",
			modify:  func(c *config.Config) { c.Message.CommentChar = ";" },
			want:    "; generated\n[TASK-1] hello",
		},
		{
			name:    "hash is text with custom comment char",
			message: "#123 fixed",
			ticket:  "TASK-1",
			modify:  func(c *config.Config) { c.Message.CommentChar = ";" },
			want:    "[TASK-1] #123 fixed",
		},
		{
			name:    "pattern without placeholders",
			message: "hello",
			ticket:  "TASK-1",
			modify:  func(c *config.Config) { c.Message.Pattern = "static" },
			want:    "static",
		},
		{
			name:    "empty ticket",
			message: "hello",
			ticket:  "",
			want:    "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			if tt.modify != nil {
				tt.modify(cfg)
			}
			assert.Equal(t, tt.want, InsertTicket(tt.message, tt.ticket, cfg))
		})
	}
}

func TestInsertTicketVerboseCommit(t *testing.T) {
	cfg := config.New()
	diff := strings.Join([]string{
		"# " + VerboseSeparator,
		"# Do not modify or remove the line above.",
		"diff --git a/main.go b/main.go",
		"+hello world",
		" unchanged context",
	}, "\n")

	t.Run("user text above separator", func(t *testing.T) {
		message := "add greeting\n# Please enter the commit message\n" + diff
		want := "[TASK-7] add greeting\n# Please enter the commit message\n" + diff
		assert.Equal(t, want, InsertTicket(message, "TASK-7", cfg))
	})

	t.Run("only template above separator", func(t *testing.T) {
		message := " \n# Please enter the commit message\n#\n# On branch main\n" + diff
		want := "# [TASK-7] \n# " + uncommentHint + "\n\n# Please enter the commit message\n#\n# On branch main\n" + diff
		assert.Equal(t, want, InsertTicket(message, "TASK-7", cfg))
	})

	t.Run("bare separator line with empty allowed", func(t *testing.T) {
		allowEmpty := config.New()
		allowEmpty.Message.AllowEmpty = true
		message := "\n" + VerboseSeparator + "\ndiff text"
		want := "[TASK-7] \n\n" + VerboseSeparator + "\ndiff text"
		assert.Equal(t, want, InsertTicket(message, "TASK-7", allowEmpty))
	})
}

func TestInsertTicketIdempotent(t *testing.T) {
	messages := []string{
		"hello there",
		"build(top-secret): Added feature",
		"# comment only\n#Great job!",
		"[BOSS-456] Added feature",
		"",
		"   \n\n",
		"\n# comment\nsubject\n\nbody\n# " + VerboseSeparator + "\ndiff",
	}
	configs := map[string]func(*config.Config){
		"default":         func(*config.Config) {},
		"allow empty":     func(c *config.Config) { c.Message.AllowEmpty = true },
		"no conventional": func(c *config.Config) { c.Message.ConventionalCommit = false },
		"suffix pattern":  func(c *config.Config) { c.Message.Pattern = "$M ($J)" },
	}

	for name, modify := range configs {
		cfg := config.New()
		modify(cfg)
		for _, message := range messages {
			once := InsertTicket(message, "BOSS-420", cfg)
			twice := InsertTicket(once, "BOSS-420", cfg)
			assert.Equal(t, once, twice, "config %q, message %q", name, message)
		}
	}
}

func TestShouldInsertTicket(t *testing.T) {
	cfg := config.New()

	tests := []struct {
		name    string
		message string
		ticket  string
		want    bool
	}{
		{"empty ticket", "hello", "", false},
		{"empty ticket with ticket in message", "ABC-1 hello", "", false},
		{"same ticket", "TEST-100 hello there", "TEST-100", false},
		{"same ticket in body", "hello\n\nrefs TEST-100", "TEST-100", false},
		{"different ticket", "[BOSS-456] Added feature", "BOSS-420", true},
		{"no ticket", "hello there", "TASK-100", true},
		{"empty message", "", "TASK-100", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldInsertTicket(tt.message, tt.ticket, cfg))
		})
	}
}

func TestShouldInsertTicketAfterInsert(t *testing.T) {
	cfg := config.New()
	rewritten := InsertTicket("hello there", "TASK-100", cfg)
	assert.False(t, ShouldInsertTicket(rewritten, "TASK-100", cfg))
}

func TestClassify(t *testing.T) {
	cfg := config.New()

	tests := []struct {
		name    string
		message string
		want    Classification
	}{
		{
			name:    "empty",
			message: "",
			want:    Classification{Separator: -1, Target: -1},
		},
		{
			name:    "whitespace only",
			message: " \n\t\n",
			want:    Classification{Separator: -1, Target: -1},
		},
		{
			name:    "comments only",
			message: "# one\n  # two",
			want:    Classification{HasAnyText: true, Separator: -1, Target: -1},
		},
		{
			name:    "user text after comment",
			message: "# one\n\nsubject",
			want:    Classification{HasAnyText: true, HasUserText: true, Separator: -1, Target: 2},
		},
		{
			name:    "text only after separator",
			message: "# one\n# " + VerboseSeparator + "\ndiff --git",
			want:    Classification{HasAnyText: true, HasVerboseText: true, Separator: 1, Target: -1},
		},
		{
			name:    "text before separator",
			message: "subject\n# " + VerboseSeparator + "\ndiff --git",
			want:    Classification{HasAnyText: true, HasUserText: true, HasVerboseText: true, Separator: 1, Target: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message, cfg))
		})
	}
}

func TestApplyPattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"[$J] $M", "[ABC-1] body"},
		{"$M ($J)", "body (ABC-1)"},
		{"$J: $M $J", "ABC-1: body $J"},
		{"no placeholders", "no placeholders"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPattern(tt.pattern, "ABC-1", "body"))
		})
	}

	// Placeholders inside the body are not expanded again
	assert.Equal(t, "[ABC-1] costs $J", ApplyPattern("[$J] $M", "ABC-1", "costs $J"))
}
