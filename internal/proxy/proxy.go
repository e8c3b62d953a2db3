// Package proxy adapts git's external diff calling convention to the viewer.
//
// git invokes the external diff program as
//
//	prog path old-file old-hex old-mode new-file new-hex new-mode
//
// Only old-file (argv[2]) and new-file (argv[5]) are used. Both files belong
// to git and are never removed here.
package proxy

import (
	"context"
	"errors"
	"fmt"

	"github.com/masmgr/git-chdiff/internal/viewer"
)

const (
	oldFileIndex = 2
	newFileIndex = 5
)

// ErrTooFewArgs is returned when argv does not reach the new-file slot.
var ErrTooFewArgs = errors.New("insufficient arguments supplied by git")

// Pair is the two files git asks to compare.
type Pair struct {
	Old string
	New string
}

// ParseArgs extracts the old and new file paths from a full argv, program name included.
func ParseArgs(argv []string) (Pair, error) {
	if len(argv) <= newFileIndex {
		return Pair{}, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewArgs, len(argv), newFileIndex+1)
	}
	return Pair{Old: argv[oldFileIndex], New: argv[newFileIndex]}, nil
}

// Run parses argv and opens the viewer on the pair, always waiting for it to close.
func Run(ctx context.Context, argv []string, launcher viewer.Launcher) error {
	pair, err := ParseArgs(argv)
	if err != nil {
		return err
	}
	return launcher.Launch(ctx, true, pair.Old, pair.New)
}
