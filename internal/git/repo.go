package git

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// open finds the repository containing path, walking up to the .git dir
func open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// IsGitRepo checks if the path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

// RepoRoot returns the top-level working tree directory containing path
func RepoRoot(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		out, cliErr := runGit(path, "rev-parse", "--show-toplevel")
		if cliErr != nil {
			return "", cliErr
		}
		return out, nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// CurrentBranch returns the short name of the branch HEAD points to. It works
// on an unborn branch (before the first commit) and fails with
// DetachedHeadError when HEAD is not a branch.
func CurrentBranch(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		// go-git can't read every layout (e.g. some worktree setups), ask git itself
		return cliCurrentBranch(path)
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", err
	}

	if head.Type() != plumbing.SymbolicReference {
		return "", &DetachedHeadError{Hash: head.Hash().String()}
	}

	target := head.Target()
	if !target.IsBranch() {
		return "", &DetachedHeadError{}
	}
	return target.Short(), nil
}

func cliCurrentBranch(path string) (string, error) {
	out, err := runGit(path, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		var gitErr *GitError
		if errors.As(err, &gitErr) && strings.Contains(gitErr.Output, "not a symbolic ref") {
			return "", &DetachedHeadError{}
		}
		return "", err
	}
	return out, nil
}

// HooksDir returns the directory git runs hooks from, honouring core.hooksPath
func HooksDir(path string) (string, error) {
	out, err := runGit(path, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(out) {
		return out, nil
	}
	return filepath.Join(path, out), nil
}

// DetectMainBranch determines if the repo uses "main" or "master"
func DetectMainBranch(path string) string {
	repo, err := open(path)
	if err != nil {
		return "main"
	}

	refs, err := repo.References()
	if err != nil {
		return "main"
	}

	hasRemoteMain := false
	hasRemoteMaster := false
	hasLocalMain := false
	hasLocalMaster := false

	refs.ForEach(func(ref *plumbing.Reference) error {
		switch ref.Name().String() {
		case "refs/remotes/origin/main":
			hasRemoteMain = true
		case "refs/remotes/origin/master":
			hasRemoteMaster = true
		case "refs/heads/main":
			hasLocalMain = true
		case "refs/heads/master":
			hasLocalMaster = true
		}
		return nil
	})

	// Prefer remote refs
	if hasRemoteMain {
		return "main"
	}
	if hasRemoteMaster {
		return "master"
	}

	// Fall back to local refs
	if hasLocalMain {
		return "main"
	}
	if hasLocalMaster {
		return "master"
	}

	// Default to main
	return "main"
}

// runGit runs the git CLI in dir and returns its trimmed stdout
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	outputStr := strings.TrimSpace(string(output))
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &GitError{Command: args[0], Output: "git executable not found in PATH"}
		}
		if outputStr == "" {
			outputStr = err.Error()
		}
		return "", &GitError{Command: args[0], Output: outputStr}
	}

	return outputStr, nil
}

// GitError provides better context for git command failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}

// DetachedHeadError indicates HEAD does not point to a branch
type DetachedHeadError struct {
	Hash string
}

func (e *DetachedHeadError) Error() string {
	if e.Hash == "" {
		return "HEAD is detached, no branch to read a ticket from"
	}
	return "HEAD is detached at " + e.Hash[:min(7, len(e.Hash))] + ", no branch to read a ticket from"
}

// BranchNotFoundError indicates a branch was not found locally or on origin
type BranchNotFoundError struct {
	Branches []string
}

func (e *BranchNotFoundError) Error() string {
	return "Branch not found: " + strings.Join(e.Branches, ", ")
}
