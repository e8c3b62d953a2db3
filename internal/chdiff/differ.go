// Package chdiff compares working-copy files against a historical revision
// in the external viewer, one file at a time.
package chdiff

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/masmgr/git-chdiff/internal/git"
	"github.com/masmgr/git-chdiff/internal/output"
	"github.com/masmgr/git-chdiff/internal/shadow"
	"github.com/masmgr/git-chdiff/internal/viewer"
)

// Options are the per-run settings taken from the command line.
type Options struct {
	Revision string
	Wait     bool
	// ChangedOnly skips files whose content at Revision equals the working copy.
	ChangedOnly bool
}

// Outcome classifies what happened to one path.
type Outcome int

const (
	OutcomeViewed Outcome = iota
	OutcomeNotFile
	OutcomeUntracked
	OutcomeUnchanged
	OutcomeFetchFailed
	OutcomeFailed
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeViewed:
		return "viewed"
	case OutcomeNotFile:
		return "not-a-file"
	case OutcomeUntracked:
		return "untracked"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeFetchFailed:
		return "fetch-failed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records the handling of one requested path.
type Result struct {
	Path    string // normalized path as given
	GitPath string // repository-relative path, when resolved
	Shadow  string // shadow file path, when one was created
	Outcome Outcome
	Err     error
}

// Differ runs the shadow-and-view loop.
type Differ struct {
	tracker  git.Tracker
	launcher viewer.Launcher
	store    shadow.Store
	out      *output.Printer
	opts     Options
}

// New creates a Differ.
func New(tracker git.Tracker, launcher viewer.Launcher, store shadow.Store, out *output.Printer, opts Options) *Differ {
	return &Differ{
		tracker:  tracker,
		launcher: launcher,
		store:    store,
		out:      out,
		opts:     opts,
	}
}

// Run processes paths in order. A failure on one path never stops the others.
func (d *Differ) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		results = append(results, d.diffFile(ctx, p))
	}
	return results
}

func (d *Differ) diffFile(ctx context.Context, path string) Result {
	path = filepath.Clean(path)
	res := Result{Path: path}
	d.out.Tracef("-> working on %s", path)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		d.out.Noticef("%s is not a file", path)
		res.Outcome = OutcomeNotFile
		res.Err = err
		return res
	}

	gitPath, err := d.tracker.Resolve(ctx, path)
	if err != nil {
		res.Err = err
		if errors.Is(err, git.ErrUntracked) || errors.Is(err, git.ErrNotRepository) {
			d.out.Noticef("%s not in git repository.....skipping", path)
			res.Outcome = OutcomeUntracked
			return res
		}
		d.out.Errorf("Execution failed: %v", err)
		res.Outcome = OutcomeFailed
		return res
	}
	res.GitPath = gitPath
	d.out.Tracef("    git path: %s", gitPath)

	content, err := d.tracker.Show(ctx, d.opts.Revision, gitPath)
	if err != nil {
		res.Err = err
		var revErr *git.RevisionError
		if errors.As(err, &revErr) {
			d.out.Noticef("problem getting revision %s of file %s", d.opts.Revision, path)
			d.out.Noticef("    %s", revErr.Detail)
			res.Outcome = OutcomeFetchFailed
			return res
		}
		d.out.Errorf("Execution failed: %v", err)
		res.Outcome = OutcomeFailed
		return res
	}

	if d.opts.ChangedOnly {
		if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, content) {
			d.out.Tracef("    %s unchanged.....skipping", path)
			res.Outcome = OutcomeUnchanged
			return res
		}
	}

	shadowPath, err := d.store.Create(content)
	if err != nil {
		d.out.Errorf("Execution failed: %v", err)
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}
	res.Shadow = shadowPath
	d.out.Tracef("    temp file: %s", shadowPath)

	if err := d.launcher.Launch(ctx, d.opts.Wait, shadowPath, path); err != nil {
		d.out.Errorf("Execution failed: %v", err)
		// No viewer holds the file, so nothing will ever read it.
		d.removeShadow(shadowPath)
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	// Without wait the viewer may still be reading the file; the janitor reclaims it.
	if d.opts.Wait {
		d.removeShadow(shadowPath)
	}

	res.Outcome = OutcomeViewed
	return res
}

func (d *Differ) removeShadow(path string) {
	if err := d.store.Remove(path); err != nil {
		d.out.Errorf("Execution failed: %v", err)
	}
}
