package shadow

import (
	"fmt"
	"os"
)

// CleanResult summarizes one janitor pass.
type CleanResult struct {
	Removed []string
	Failed  map[string]error
}

// Clean removes leftover shadow files from the store directory.
//
// An entry is removed only if it is a regular file (symlinks are not followed),
// its name carries the store prefix, and it is owned by uid. Failure to remove
// one file is recorded in the result and the scan continues; an error is
// returned only when the directory itself cannot be listed.
//
// onRemove, if non-nil, is called with each path just before it is removed.
func (s Store) Clean(uid int, onRemove func(path string)) (*CleanResult, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Dir, err)
	}

	result := &CleanResult{Failed: make(map[string]error)}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !s.Matches(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Vanished between listing and stat.
			continue
		}
		if !ownedBy(info, uid) {
			continue
		}

		path := s.shadowPath(entry.Name())
		if onRemove != nil {
			onRemove(path)
		}
		if err := os.Remove(path); err != nil {
			result.Failed[path] = err
			continue
		}
		result.Removed = append(result.Removed, path)
	}

	return result, nil
}
