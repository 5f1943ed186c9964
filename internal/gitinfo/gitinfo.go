// Package gitinfo reads the commit the site sources are built from.
package gitinfo

import (
	stderrors "errors"
	"time"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// Info describes HEAD of the repository holding the site sources.
type Info struct {
	Commit      string
	Branch      string
	CommittedAt time.Time
	Dirty       bool
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// ErrNotRepository is returned when dir is not inside a git working tree.
var ErrNotRepository = errors.NewError(errors.CategoryNotFound, "not a git repository").Build()

// Head returns HEAD information for the repository containing dir. Parent
// directories are searched for the .git directory.
func Head(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return Info{}, ErrNotRepository
		}
		return Info{}, errors.GitError("open repository").WithCause(err).WithContext("path", dir).Build()
	}

	ref, err := repo.Head()
	if err != nil {
		return Info{}, errors.GitError("resolve HEAD").WithCause(err).WithContext("path", dir).Build()
	}
	info := Info{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}

	if commit, cerr := repo.CommitObject(ref.Hash()); cerr == nil {
		info.CommittedAt = commit.Committer.When
	}

	if wt, werr := repo.Worktree(); werr == nil {
		if status, serr := wt.Status(); serr == nil {
			info.Dirty = !status.IsClean()
		}
	}
	return info, nil
}
