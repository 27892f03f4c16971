package git

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.commitmsg/internal/models"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ExtractTickets returns every distinct ticket ID in text, sorted
func ExtractTickets(text string, ticketRegex *regexp.Regexp) []string {
	if ticketRegex == nil {
		return nil
	}

	ticketSet := make(map[string]bool)
	for _, ticket := range ticketRegex.FindAllString(text, -1) {
		ticketSet[ticket] = true
	}

	// Convert to sorted slice
	tickets := make([]string, 0, len(ticketSet))
	for ticket := range ticketSet {
		tickets = append(tickets, ticket)
	}
	sort.Strings(tickets)

	return tickets
}

// resolveBranch resolves a local branch, falling back to origin's copy
func resolveBranch(repo *git.Repository, branch string) (*plumbing.Hash, error) {
	candidates := []string{
		branch,
		"refs/heads/" + branch,
		"refs/remotes/origin/" + branch,
	}
	for _, rev := range candidates {
		if hash, err := repo.ResolveRevision(plumbing.Revision(rev)); err == nil {
			return hash, nil
		}
	}
	return nil, &BranchNotFoundError{Branches: []string{branch}}
}

// CommitsSince returns the commits reachable from HEAD but not from baseBranch,
// newest first, with the tickets found in each full message.
func CommitsSince(repoPath, baseBranch string, ticketRegex *regexp.Regexp) ([]models.CommitInfo, error) {
	repo, err := open(repoPath)
	if err != nil {
		return nil, err
	}

	baseHash, err := resolveBranch(repo, baseBranch)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, err
	}

	// Build set of commits reachable from base
	baseCommits := make(map[plumbing.Hash]bool)
	baseIter, err := repo.Log(&git.LogOptions{From: *baseHash})
	if err != nil {
		return nil, err
	}
	err = baseIter.ForEach(func(c *object.Commit) error {
		baseCommits[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	headIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}

	var commits []models.CommitInfo
	seen := make(map[plumbing.Hash]bool)
	err = headIter.ForEach(func(c *object.Commit) error {
		// Don't stop at the first base commit: merge commits have multiple
		// parents and every path has to be walked.
		if seen[c.Hash] || baseCommits[c.Hash] {
			return nil
		}
		seen[c.Hash] = true

		hash := c.Hash.String()[:7]
		subject := strings.Split(c.Message, "\n")[0]
		tickets := ExtractTickets(c.Message, ticketRegex)

		commits = append(commits, models.NewCommitInfo(hash, subject, tickets))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}
