// Package gitinfo stamps validation sessions with the commit state of
// the target checkout.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

const shortHashLen = 7

// Adapter implements domain.GitInfo with go-git, so no git binary is
// needed on PATH. The target path may be any directory inside the
// checkout, not only its root.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

func (a *Adapter) IsGitRepo(path string) bool {
	_, err := a.open(path)
	return err == nil
}

// CommitHash returns the full HEAD hash of the checkout containing
// path.
func (a *Adapter) CommitHash(path string) (string, error) {
	repo, err := a.open(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ShortHash abbreviates a full commit hash for display.
func ShortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
