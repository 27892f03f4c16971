package commitmsg

import (
	"strings"
	"unicode"

	"github.com/wahlandcase/attuned.commitmsg/internal/config"
)

// VerboseSeparator starts the diff section git appends for `commit --verbose`
// or `commit.status`. Nothing from it onwards is rewritten.
const VerboseSeparator = "------------------------ >8 ------------------------"

// uncommentHint follows a commented-out ticket suggestion
const uncommentHint = "attmsg > Please uncomment the line above if you want to insert the ticket into the commit message"

// Classification describes the structure of a commit message.
type Classification struct {
	// HasAnyText is false for a message made only of whitespace
	HasAnyText bool
	// HasUserText is true when a non-blank, non-comment line precedes the separator
	HasUserText bool
	// HasVerboseText is true when the verbose separator is present
	HasVerboseText bool
	// Separator is the index of the separator line, -1 if absent
	Separator int
	// Target is the index of the first user text line, -1 if absent
	Target int
}

// splitLines splits message into lines with leading whitespace removed. The
// verbose section is returned untouched.
func splitLines(message string) []string {
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		if strings.Contains(line, VerboseSeparator) {
			break
		}
		lines[i] = strings.TrimLeftFunc(line, unicode.IsSpace)
	}
	return lines
}

// Classify inspects message without modifying it.
func Classify(message string, cfg *config.Config) Classification {
	return classifyLines(splitLines(message), strings.TrimSpace(message) != "", cfg)
}

func classifyLines(lines []string, hasAnyText bool, cfg *config.Config) Classification {
	c := Classification{
		HasAnyText: hasAnyText,
		Separator:  -1,
		Target:     -1,
	}

	for i, line := range lines {
		if strings.Contains(line, VerboseSeparator) {
			c.HasVerboseText = true
			c.Separator = i
			break
		}
		if c.Target == -1 && isUserText(line, cfg.Message.CommentChar) {
			c.Target = i
			c.HasUserText = true
		}
	}

	return c
}

// isUserText picks the first meaningful line: blank lines before the subject
// are skipped so the ticket lands on the subject rather than an empty line.
func isUserText(line, commentChar string) bool {
	return strings.TrimSpace(line) != "" && !strings.HasPrefix(line, commentChar)
}

// ApplyPattern substitutes the first "$J" with ticket and then the first "$M"
// with body. Placeholders missing from pattern are simply not substituted.
func ApplyPattern(pattern, ticket, body string) string {
	result := strings.Replace(pattern, "$J", ticket, 1)
	return strings.Replace(result, "$M", body, 1)
}

// ShouldInsertTicket reports whether InsertTicket has anything to do: ticket
// is non-empty and differs from the first ticket already in message.
func ShouldInsertTicket(message, ticket string, cfg *config.Config) bool {
	if ticket == "" {
		return false
	}
	return ExtractTicket(message, cfg) != ticket
}

// InsertTicket splices ticket into message. A message without user text gets
// a new leading line, commented out unless empty messages are allowed; an
// entirely empty message is left alone unless they are. Otherwise the first
// user text line is rewritten with the message pattern, keeping a
// conventional-commit prefix in front. Applying it twice with the same ticket
// gives the same result as applying it once.
func InsertTicket(message, ticket string, cfg *config.Config) string {
	if ticket == "" {
		return message
	}

	lines := splitLines(message)
	c := classifyLines(lines, strings.TrimSpace(message) != "", cfg)

	switch {
	case c.HasUserText:
		lines[c.Target] = rewriteLine(lines[c.Target], ticket, cfg)
	case !c.HasAnyText && !cfg.Message.AllowEmpty:
		// Nothing was written, leave the empty message to git
		return message
	default:
		lines = prependSuggestion(lines, ticket, cfg)
	}

	return strings.Join(lines, "\n")
}

func prependSuggestion(lines []string, ticket string, cfg *config.Config) []string {
	prepared := strings.TrimLeftFunc(ApplyPattern(cfg.Message.Pattern, ticket, ""), unicode.IsSpace)
	commented := cfg.Message.CommentChar + " " + prepared

	// Already suggested on a previous run
	if lines[0] == prepared || lines[0] == commented {
		return lines
	}

	if cfg.Message.AllowEmpty {
		return append([]string{prepared}, lines...)
	}
	// Commented out so quitting the editor still aborts the commit
	return append([]string{commented, cfg.Message.CommentChar + " " + uncommentHint}, lines...)
}

func rewriteLine(line, ticket string, cfg *config.Config) string {
	prefix, body := "", line
	if cfg.Message.ConventionalCommit {
		if cc, ok := ParseConventional(line); ok {
			prefix, body = cc.Prefix(), cc.Body
		}
	}

	if strings.Contains(body, ticket) {
		return line
	}
	return prefix + ApplyPattern(cfg.Message.Pattern, ticket, body)
}
