package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CLITracker answers tracking queries by running the git binary.
// Only plumbing commands are used and outcomes are read from exit codes.
type CLITracker struct {
	// Dir is the working directory for git; empty means the process cwd.
	Dir string
	// Timeout bounds each git invocation; zero disables it.
	Timeout time.Duration
	// GitPath overrides the git executable; empty means "git" from PATH.
	GitPath string
}

// NewCLITracker creates a tracker that runs git in dir.
func NewCLITracker(dir string, timeout time.Duration) *CLITracker {
	return &CLITracker{Dir: dir, Timeout: timeout}
}

// Resolve runs `git ls-files -z --full-name --error-unmatch`.
// Exit 1 means untracked; exit 128 means the path is outside any work tree.
func (t *CLITracker) Resolve(ctx context.Context, path string) (string, error) {
	stdout, stderr, err := t.run(ctx, "ls-files", "-z", "--full-name", "--error-unmatch", "--", path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case 1:
				return "", fmt.Errorf("%s: %w", path, ErrUntracked)
			case 128:
				return "", fmt.Errorf("%s: %w: %s", path, ErrNotRepository, firstLine(stderr))
			}
			return "", fmt.Errorf("git ls-files %s failed: %w: %s", path, err, firstLine(stderr))
		}
		return "", fmt.Errorf("git ls-files failed: %w", err)
	}

	// A tracked file yields exactly its own NUL-terminated entry, unquoted.
	gitPath := string(stdout)
	if idx := strings.IndexByte(gitPath, 0); idx != -1 {
		gitPath = gitPath[:idx]
	}
	if gitPath == "" {
		return "", fmt.Errorf("%s: %w", path, ErrUntracked)
	}
	return gitPath, nil
}

// Show runs `git cat-file blob <revision>:<path>` and returns the raw blob.
func (t *CLITracker) Show(ctx context.Context, revision, path string) ([]byte, error) {
	stdout, stderr, err := t.run(ctx, "cat-file", "blob", revision+":"+path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &RevisionError{
				Revision: revision,
				Path:     path,
				Detail:   firstLine(stderr),
				Err:      err,
			}
		}
		return nil, fmt.Errorf("git cat-file failed: %w", err)
	}
	return stdout, nil
}

func (t *CLITracker) run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	gitPath := t.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	// Paths are file names, never pathspec globs or magic.
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, gitPath, append([]string{"--literal-pathspecs"}, args...)...)
	cmd.Dir = t.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		// Killed by the deadline; not a git verdict about the path.
		err = fmt.Errorf("git %s: %w", args[0], ctx.Err())
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

func firstLine(b []byte) string {
	s := string(b)
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
