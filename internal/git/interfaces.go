package git

import "context"

// Tracker answers the two questions the diff command asks of a repository.
// This abstraction allows for easier testing and alternative implementations.
type Tracker interface {
	// Resolve reports whether path is tracked and returns its repository-relative
	// path. Untracked paths yield ErrUntracked, paths outside a work tree ErrNotRepository.
	Resolve(ctx context.Context, path string) (string, error)
	// Show returns the content of the repository-relative path at revision.
	// Failures to resolve the revision or path are reported as *RevisionError.
	Show(ctx context.Context, revision, path string) ([]byte, error)
}

// Compile-time interface conformance checks.
var (
	_ Tracker = (*CLITracker)(nil)
	_ Tracker = (*RepoTracker)(nil)
	_ Tracker = (*MockTracker)(nil)
)
