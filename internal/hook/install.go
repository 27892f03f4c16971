package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HookName is the git hook attmsg runs as
const HookName = "prepare-commit-msg"

const installMarker = "# installed by attmsg"

// HookExistsError is returned when a hook not written by attmsg is in the way
type HookExistsError struct {
	Path string
}

func (e *HookExistsError) Error() string {
	return fmt.Sprintf("%s already exists and was not installed by attmsg (use --force to replace it)", e.Path)
}

// Script returns the hook script that runs binary with git's hook arguments
func Script(binary string) string {
	return "#!/bin/sh\n" +
		installMarker + "\n" +
		"exec " + shellQuote(binary) + " \"$@\"\n"
}

// Install writes the prepare-commit-msg script into hooksDir and returns its path
func Install(hooksDir, binary string, force bool) (string, error) {
	path := filepath.Join(hooksDir, HookName)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !force && !strings.Contains(string(existing), installMarker) {
			return "", &HookExistsError{Path: path}
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(Script(binary)), 0755); err != nil {
		return "", err
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, 0755); err != nil {
		return "", err
	}

	return path, nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
