package git

import (
	"context"
	"fmt"
)

// MockTracker is a test double for Tracker.
// It serves tracked paths and revision contents from maps and records every call.
type MockTracker struct {
	// Tracked maps a caller path to its repository-relative path.
	Tracked map[string]string
	// Contents maps "revision:gitpath" to file content.
	Contents map[string][]byte
	// ResolveErr, when set, is returned by every Resolve call.
	ResolveErr error

	ResolveCalls []string
	ShowCalls    []string
}

// NewMockTracker creates a MockTracker with empty maps.
func NewMockTracker() *MockTracker {
	return &MockTracker{
		Tracked:  make(map[string]string),
		Contents: make(map[string][]byte),
	}
}

// Track registers path as tracked under gitPath with content at revision.
func (m *MockTracker) Track(path, gitPath, revision string, content []byte) {
	m.Tracked[path] = gitPath
	m.Contents[revision+":"+gitPath] = content
}

// Resolve returns the registered repository path or ErrUntracked.
func (m *MockTracker) Resolve(_ context.Context, path string) (string, error) {
	m.ResolveCalls = append(m.ResolveCalls, path)
	if m.ResolveErr != nil {
		return "", m.ResolveErr
	}
	gitPath, ok := m.Tracked[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, ErrUntracked)
	}
	return gitPath, nil
}

// Show returns the registered content or a *RevisionError.
func (m *MockTracker) Show(_ context.Context, revision, path string) ([]byte, error) {
	key := revision + ":" + path
	m.ShowCalls = append(m.ShowCalls, key)
	content, ok := m.Contents[key]
	if !ok {
		return nil, &RevisionError{Revision: revision, Path: path, Detail: "invalid object name " + key}
	}
	return content, nil
}
