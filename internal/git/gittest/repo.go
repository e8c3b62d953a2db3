// Package gittest builds throwaway git repositories with go-git for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a non-bare repository rooted in a test temp directory.
type Repo struct {
	Dir  string
	Repo *gogit.Repository

	t    testing.TB
	when time.Time
}

// NewRepo initializes an empty repository in t.TempDir().
func NewRepo(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	return &Repo{
		Dir:  dir,
		Repo: repo,
		t:    t,
		when: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the absolute path of a repository-relative name.
func (r *Repo) Path(name string) string {
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}

// WriteFile writes content to name in the working copy without staging it.
func (r *Repo) WriteFile(name, content string) string {
	r.t.Helper()

	path := r.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

// Commit writes and stages files (repository-relative name to content) and commits them.
func (r *Repo) Commit(message string, files map[string]string) plumbing.Hash {
	r.t.Helper()

	w, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("Failed to get worktree: %v", err)
	}

	for name, content := range files {
		r.WriteFile(name, content)
		if _, err := w.Add(name); err != nil {
			r.t.Fatalf("Failed to add file: %v", err)
		}
	}

	r.when = r.when.Add(time.Hour)
	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  r.when,
		},
	})
	if err != nil {
		r.t.Fatalf("Failed to commit: %v", err)
	}
	return hash
}
