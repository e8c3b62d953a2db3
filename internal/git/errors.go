package git

import (
	"errors"
	"fmt"
)

var (
	// ErrUntracked is returned when a path is not registered in the repository index.
	ErrUntracked = errors.New("path is not tracked")
	// ErrNotRepository is returned when a path does not live inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")
)

// RevisionError reports that the content of Path could not be read at Revision.
type RevisionError struct {
	Revision string
	Path     string
	Detail   string
	Err      error
}

func (e *RevisionError) Error() string {
	msg := fmt.Sprintf("cannot read %s at revision %s", e.Path, e.Revision)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RevisionError) Unwrap() error {
	return e.Err
}
