// Package hook wires ticket insertion to the prepare-commit-msg hook: it finds
// and rewrites the message file using the branch git is on.
package hook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wahlandcase/attuned.commitmsg/internal/commitmsg"
	"github.com/wahlandcase/attuned.commitmsg/internal/config"
	"github.com/wahlandcase/attuned.commitmsg/internal/ui"
)

// ErrNoMessageFile is returned when neither the arguments nor the environment
// name a commit message file
var ErrNoMessageFile = errors.New("no commit message file given; pass git's $1 to attmsg")

// MessageFilePath finds the commit message file. Git passes it as the first
// hook argument; husky 2-4 stash the hook arguments in HUSKY_GIT_PARAMS.
func MessageFilePath(args []string, getenv func(string) string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	// Paths with escaped spaces can't be recovered from this variable
	if fields := strings.Fields(getenv("HUSKY_GIT_PARAMS")); len(fields) > 0 {
		return fields[0], nil
	}

	return "", ErrNoMessageFile
}

// ReadMessage returns the content of the commit message file
func ReadMessage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read the file %q: %w", path, err)
	}
	return string(data), nil
}

// WriteMessage replaces the commit message file content
func WriteMessage(path, message string) error {
	if err := os.WriteFile(path, []byte(message), 0644); err != nil {
		return fmt.Errorf("unable to write the file %q: %w", path, err)
	}
	return nil
}

// BranchFunc resolves the name of the current branch
type BranchFunc func() (string, error)

// Hook rewrites commit messages with the ticket of the current branch
type Hook struct {
	cfg    *config.Config
	logger *zap.Logger
	branch BranchFunc
}

func New(cfg *config.Config, logger *zap.Logger, branch BranchFunc) *Hook {
	return &Hook{cfg: cfg, logger: logger, branch: branch}
}

// Prepare returns message with the ticket from branchName inserted, and
// whether anything changed.
func (h *Hook) Prepare(message, branchName string) (string, bool) {
	branchTicket := commitmsg.ExtractTicket(branchName, h.cfg)
	messageTicket := commitmsg.ExtractTicket(message, h.cfg)

	h.logger.Debug("tickets",
		zap.String("branch", branchName),
		zap.String("branchTicket", branchTicket),
		zap.String("messageTicket", messageTicket),
	)

	if !commitmsg.ShouldInsertTicket(message, branchTicket, h.cfg) {
		switch {
		case branchTicket == "" && messageTicket == "":
			h.logger.Warn(ui.ErrorBadge("No ticket found") + " in the branch name or the commit message")
		case messageTicket != "":
			h.logger.Info("nothing to do. Message already contains issue key " + ui.TicketBadge(messageTicket))
		}
		return message, false
	}

	c := commitmsg.Classify(message, h.cfg)
	h.logger.Debug("classified message",
		zap.Bool("hasAnyText", c.HasAnyText),
		zap.Bool("hasUserText", c.HasUserText),
		zap.Bool("hasVerboseText", c.HasVerboseText),
		zap.Int("target", c.Target),
	)

	result := commitmsg.InsertTicket(message, branchTicket, h.cfg)
	if result == message {
		return message, false
	}

	h.logger.Info("add issue key " + ui.TicketBadge(branchTicket))
	return result, true
}

// Run rewrites the message file at path in place. With dryRun the result is
// written to out instead.
func (h *Hook) Run(path string, dryRun bool, out io.Writer) error {
	message, err := ReadMessage(path)
	if err != nil {
		return err
	}

	branchName, err := h.branch()
	if err != nil {
		return fmt.Errorf("failed to resolve branch: %w", err)
	}

	result, changed := h.Prepare(message, branchName)

	if dryRun {
		_, err := io.WriteString(out, result)
		return err
	}

	if !changed {
		return nil
	}
	return WriteMessage(path, result)
}
