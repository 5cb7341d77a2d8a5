// Package gitrepo inspects the project working tree for the release
// preflight checks.
package gitrepo

import (
	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
)

// Inspector reports the status of the git repository containing the project.
type Inspector struct {
	dir string
}

// New creates an inspector rooted at dir. The repository is discovered
// upwards from dir the way the git CLI would.
func New(dir string) *Inspector {
	return &Inspector{dir: dir}
}

// HasUncommittedChanges reports whether the working tree has modifications
// not yet committed to HEAD.
func (i *Inspector) HasUncommittedChanges() (bool, error) {
	repo, err := git.PlainOpenWithOptions(i.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return false, goerr.Wrap(err, "failed to open git repository", goerr.V("dir", i.dir))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, goerr.Wrap(err, "failed to access worktree", goerr.V("dir", i.dir))
	}

	status, err := wt.Status()
	if err != nil {
		return false, goerr.Wrap(err, "failed to read worktree status", goerr.V("dir", i.dir))
	}

	return !status.IsClean(), nil
}
