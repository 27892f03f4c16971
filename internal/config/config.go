package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the repository-level config file, looked up in the repo root
const FileName = ".attmsg.toml"

type Config struct {
	Ticket  TicketConfig  `toml:"ticket"`
	Message MessageConfig `toml:"message"`

	// Compiled regex from Ticket.Pattern (not serialized)
	ticketRegex *regexp.Regexp
}

type TicketConfig struct {
	Pattern string `toml:"pattern"`
}

type MessageConfig struct {
	CommentChar        string `toml:"comment_char"`
	Pattern            string `toml:"pattern"`
	ConventionalCommit bool   `toml:"conventional_commit"`
	AllowEmpty         bool   `toml:"allow_empty"`
}

// DefaultConfig returns the built-in settings before any file is applied.
// The ticket pattern is not compiled yet, so TicketRegex() is nil until the
// config goes through Load; use New for a ready-to-use default config.
func DefaultConfig() *Config {
	return &Config{
		Ticket: TicketConfig{
			Pattern: `[A-Z]+-\d+`,
		},
		Message: MessageConfig{
			CommentChar:        "#",
			Pattern:            "[$J] $M",
			ConventionalCommit: true,
			AllowEmpty:         false,
		},
	}
}

// New returns the defaults with a compiled ticket pattern
func New() *Config {
	cfg := DefaultConfig()
	if err := cfg.compileRegex(); err != nil {
		// Default pattern is a constant
		panic(err)
	}
	return cfg
}

func userConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "attmsg.toml"), nil
}

// Load builds the effective config. With an explicit path only that file is
// read. Otherwise the user file is applied first and the repository file in
// repoRoot (if any) overrides it.
func Load(explicitPath, repoRoot string) (*Config, error) {
	cfg := DefaultConfig()

	if explicitPath != "" {
		if err := cfg.merge(explicitPath, true); err != nil {
			return nil, err
		}
	} else {
		if path, err := userConfigPath(); err == nil {
			if err := cfg.merge(path, false); err != nil {
				return nil, err
			}
		}
		if repoRoot != "" {
			if err := cfg.merge(filepath.Join(repoRoot, FileName), false); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.compileRegex(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// merge overlays the TOML file at path onto c. Keys missing from the file keep
// their current value.
func (c *Config) merge(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks option values that cannot be expressed in the TOML types
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Message.CommentChar) != 1 {
		return fmt.Errorf("invalid message.comment_char %q: must be a single character", c.Message.CommentChar)
	}
	return nil
}

func (c *Config) compileRegex() error {
	// Empty pattern = ticket extraction disabled
	if c.Ticket.Pattern == "" {
		c.ticketRegex = nil
		return nil
	}
	re, err := regexp.Compile(c.Ticket.Pattern)
	if err != nil {
		return fmt.Errorf("invalid ticket.pattern %q: %w", c.Ticket.Pattern, err)
	}
	c.ticketRegex = re
	return nil
}

// TicketRegex returns the compiled ticket pattern regex (nil if disabled)
func (c *Config) TicketRegex() *regexp.Regexp {
	return c.ticketRegex
}

// Marshal renders the config as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) Save(path string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
