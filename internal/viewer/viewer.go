// Package viewer launches the external graphical diff program.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/masmgr/git-chdiff/config"
)

// ErrNotFound is returned when the viewer executable cannot be located.
var ErrNotFound = errors.New("diff viewer not found")

// Launcher opens a two-way diff of left and right.
// With wait set, Launch returns only after the viewer is closed.
type Launcher interface {
	Launch(ctx context.Context, wait bool, left, right string) error
}

// Command runs the viewer as a subprocess: `<Program> [WaitFlag] <left> <right>`.
type Command struct {
	Program  string
	WaitFlag string
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewCommand returns a Command configured from cfg. Viewer stdout is
// discarded; stderr goes to stderr.
func NewCommand(cfg config.ViewerConfig, stderr io.Writer) *Command {
	return &Command{
		Program:  cfg.Command,
		WaitFlag: cfg.WaitFlag,
		Stderr:   stderr,
	}
}

// Args returns the argument list passed to the viewer.
func (c *Command) Args(wait bool, left, right string) []string {
	args := make([]string, 0, 3)
	if wait && c.WaitFlag != "" {
		args = append(args, c.WaitFlag)
	}
	return append(args, left, right)
}

// Launch runs the viewer and blocks until the launcher process exits.
func (c *Command) Launch(ctx context.Context, wait bool, left, right string) error {
	path, err := exec.LookPath(c.Program)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, c.Program, err)
	}

	cmd := exec.CommandContext(ctx, path, c.Args(wait, left, right)...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.Program, err)
	}
	return nil
}

var _ Launcher = (*Command)(nil)
