// Package gitstatus resolves the version-control status of files under a
// scan root against an enclosing git repository.
//
// Repository state is read exactly once per root into a Snapshot; per-file
// status checks are pure set lookups. Resolver cost is proportional to the
// repository size once, not to the number of files scanned.
package gitstatus

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

// Snapshot is the read-only repository state for one scan root. The zero
// value (and a nil *Snapshot) reports false for every file, which is the
// defined behavior when no repository encloses the root.
//
// Lookups match on base file name only, not full path. Two files with the
// same name in different directories are indistinguishable here; this
// matches the established audit output.
type Snapshot struct {
	tracked  map[string]bool
	modified map[string]bool
	staged   map[string]bool
}

// Resolve locates a repository enclosing root (searching upward from the
// root itself) and computes its status snapshot. A root outside any
// repository returns (nil, nil): not an error, every file simply reports
// all-false status.
func Resolve(root string, logger fgaudit.Logger) (*Snapshot, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			logger.Verbose("no repository found enclosing %s", root)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open repository for %s: %w", root, err)
	}

	snap := &Snapshot{
		tracked:  make(map[string]bool),
		modified: make(map[string]bool),
		staged:   make(map[string]bool),
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to compute worktree status: %w", err)
	}
	for path, fileStatus := range status {
		name := filepath.Base(path)
		if fileStatus.Worktree != git.Unmodified && fileStatus.Worktree != git.Untracked {
			snap.modified[name] = true
		}
		if fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked {
			snap.staged[name] = true
		}
	}

	if err := snap.fillTracked(repo); err != nil {
		return nil, err
	}

	logger.Verbose("repository snapshot for %s: %d tracked, %d modified, %d staged",
		root, len(snap.tracked), len(snap.modified), len(snap.staged))
	return snap, nil
}

// fillTracked collects every file reachable from the HEAD commit tree.
// A repository without commits has no tracked files; that is not an error.
func (s *Snapshot) fillTracked(repo *git.Repository) error {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil
		}
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("failed to load HEAD tree: %w", err)
	}

	return tree.Files().ForEach(func(f *object.File) error {
		s.tracked[filepath.Base(f.Name)] = true
		return nil
	})
}

// Status returns the repository flags for the given file name. Safe on a
// nil snapshot.
func (s *Snapshot) Status(name string) fgaudit.RepoStatus {
	if s == nil {
		return fgaudit.RepoStatus{}
	}
	return fgaudit.RepoStatus{
		Tracked:  s.tracked[name],
		Modified: s.modified[name],
		Staged:   s.staged[name],
	}
}
