package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// RepoTracker answers tracking queries by reading the repository directly
// with go-git, without spawning git.
type RepoTracker struct {
	dir     string
	repo    *gogit.Repository
	root    string
	openErr error
	opened  bool
}

// NewRepoTracker creates a tracker for the repository containing dir.
// The repository is opened on first use so that a missing repository is
// reported per path rather than failing the whole run.
func NewRepoTracker(dir string) *RepoTracker {
	return &RepoTracker{dir: dir}
}

func (r *RepoTracker) open() error {
	if r.opened {
		return r.openErr
	}
	r.opened = true

	repo, err := gogit.PlainOpenWithOptions(r.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			r.openErr = fmt.Errorf("%s: %w", r.dir, ErrNotRepository)
		} else {
			r.openErr = fmt.Errorf("open repository: %w", err)
		}
		return r.openErr
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no working copy to compare against.
		r.openErr = fmt.Errorf("%s: %w: %v", r.dir, ErrNotRepository, err)
		return r.openErr
	}

	r.repo = repo
	r.root = evalDir(wt.Filesystem.Root())
	return nil
}

// Resolve looks the path up in the repository index.
func (r *RepoTracker) Resolve(_ context.Context, path string) (string, error) {
	if err := r.open(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	// Resolve symlinked parents only; a tracked symlink must keep its own name.
	abs = filepath.Join(evalDir(filepath.Dir(abs)), filepath.Base(abs))

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: outside %s: %w", path, r.root, ErrNotRepository)
	}
	rel = filepath.ToSlash(rel)

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return "", fmt.Errorf("read index: %w", err)
	}
	if _, err := idx.Entry(rel); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return "", fmt.Errorf("%s: %w", path, ErrUntracked)
		}
		return "", fmt.Errorf("read index entry %s: %w", rel, err)
	}

	return rel, nil
}

// Show reads the blob for path from the commit that revision resolves to.
func (r *RepoTracker) Show(_ context.Context, revision, path string) ([]byte, error) {
	if err := r.open(); err != nil {
		return nil, err
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, &RevisionError{Revision: revision, Path: path, Detail: err.Error(), Err: err}
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, &RevisionError{Revision: revision, Path: path, Detail: err.Error(), Err: err}
	}

	file, err := commit.File(path)
	if err != nil {
		return nil, &RevisionError{Revision: revision, Path: path, Detail: err.Error(), Err: err}
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", file.Hash, err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func evalDir(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return dir
}
