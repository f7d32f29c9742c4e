package git

import (
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Overlay is the discovered repository handle plus the last refreshed
// status map, keyed by absolute path.
type Overlay struct {
	repo     *gogit.Repository
	workRoot string
	statuses map[string]Status
}

// Discover opens the repository containing path, walking upward the way
// `git status` would. It returns (nil, nil) when path is not inside a
// repository; that is the no-overlay case, not an error.
func Discover(path string) (*Overlay, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err == gogit.ErrRepositoryNotExists {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository: nothing to overlay.
		return nil, nil
	}
	return &Overlay{
		repo:     repo,
		workRoot: wt.Filesystem.Root(),
	}, nil
}

// Refresh replaces the whole status map with a fresh working-tree scan.
// On failure the previous map is kept and the error returned; callers
// treat it as non-fatal.
func (o *Overlay) Refresh() error {
	wt, err := o.repo.Worktree()
	if err != nil {
		return err
	}
	st, err := wt.Status()
	if err != nil {
		return err
	}

	statuses := make(map[string]Status, len(st))
	for rel, fs := range st {
		s := mapStatus(fs)
		if s == StatusNone {
			continue
		}
		abs := filepath.Join(o.workRoot, filepath.FromSlash(rel))
		statuses[abs] = s

		// Propagate upward so a collapsed directory still shows that
		// something inside it changed. Untracked children win over
		// nothing; anything else marks the ancestor modified.
		for dir := filepath.Dir(abs); len(dir) >= len(o.workRoot); dir = filepath.Dir(dir) {
			if _, ok := statuses[dir]; !ok {
				if s == StatusUntracked {
					statuses[dir] = StatusUntracked
				} else {
					statuses[dir] = StatusModified
				}
			}
			if dir == o.workRoot {
				break
			}
		}
	}
	o.statuses = statuses
	return nil
}

// Status looks up the absolute path in the overlay map.
func (o *Overlay) Status(path string) Status {
	if o == nil || o.statuses == nil {
		return StatusNone
	}
	return o.statuses[path]
}

// Len reports how many paths currently carry a status.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.statuses)
}

func mapStatus(fs *gogit.FileStatus) Status {
	switch fs.Worktree {
	case gogit.Untracked:
		return StatusUntracked
	case gogit.Modified:
		return StatusModified
	case gogit.Deleted:
		return StatusDeleted
	case gogit.UpdatedButUnmerged:
		return StatusUnmerged
	}
	switch fs.Staging {
	case gogit.Renamed:
		return StatusRenamed
	case gogit.Added, gogit.Modified, gogit.Copied, gogit.Deleted:
		return StatusStaged
	case gogit.UpdatedButUnmerged:
		return StatusUnmerged
	}
	if fs.Worktree == gogit.Unmodified && fs.Staging == gogit.Unmodified {
		return StatusNone
	}
	return StatusUnknown
}
