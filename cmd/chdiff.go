package cmd

import (
	"errors"
	"os"

	"github.com/masmgr/git-chdiff/config"
	"github.com/masmgr/git-chdiff/internal/chdiff"
	"github.com/masmgr/git-chdiff/internal/output"
	"github.com/masmgr/git-chdiff/internal/shadow"
	"github.com/masmgr/git-chdiff/internal/viewer"
	"github.com/urfave/cli/v2"
)

var errEmptyRevision = errors.New("flag -r/--revision must not be empty")

func chdiffAction(c *cli.Context) error {
	if c.IsSet("revision") && c.String("revision") == "" {
		return usageError(c, errEmptyRevision, false)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}

	out := output.NewPrinter(c.App.Writer, c.App.ErrWriter, c.Bool("verbose"))
	store := shadow.NewStore(cfg.Shadow)

	if c.Bool("clean") {
		return runClean(cfg, store, out)
	}

	// Nothing to compare.
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	revision := c.String("revision")
	if revision == "" {
		revision = cfg.Git.DefaultRevision
	}

	differ := chdiff.New(
		newTracker(cfg),
		viewer.NewCommand(cfg.Viewer, c.App.ErrWriter),
		store,
		out,
		chdiff.Options{
			Revision:    revision,
			Wait:        c.Bool("wait"),
			ChangedOnly: c.Bool("changed-only"),
		},
	)
	differ.Run(c.Context, c.Args().Slice())

	// Per-file problems have already been reported and never fail the run.
	return nil
}

// runClean removes leftover shadow files owned by the current user.
func runClean(cfg *config.Config, store shadow.Store, out *output.Printer) error {
	out.Tracef("scanning for %s temp files to clean", cfg.Shadow.Prefix)

	result, err := store.Clean(os.Getuid(), func(path string) {
		out.Tracef("removing temp file: %s", path)
	})
	if err != nil {
		out.VerboseErrorf("Clean failed: %v", err)
		return cli.Exit("", exitError)
	}

	for path, removeErr := range result.Failed {
		out.VerboseErrorf("could not remove %s: %v", path, removeErr)
	}
	return nil
}
