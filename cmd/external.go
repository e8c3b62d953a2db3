package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/masmgr/git-chdiff/config"
	"github.com/masmgr/git-chdiff/internal/output"
	"github.com/masmgr/git-chdiff/internal/proxy"
	"github.com/masmgr/git-chdiff/internal/viewer"
)

// RunExternal executes git-external-chdiff with git's external diff argv
// and returns the process exit code. It takes no flags; configuration comes
// from $GIT_CHDIFF_CONFIG or the default config locations.
func RunExternal(args []string) int {
	cfg, err := config.LoadConfig("")
	if err != nil {
		output.NewPrinter(os.Stdout, os.Stderr, false).Errorf("error: failed to load config: %v", err)
		return exitError
	}
	return runExternal(context.Background(), args, viewer.NewCommand(cfg.Viewer, os.Stderr), os.Stderr)
}

func runExternal(ctx context.Context, args []string, launcher viewer.Launcher, stderr io.Writer) int {
	out := output.NewPrinter(io.Discard, stderr, false)

	err := proxy.Run(ctx, args, launcher)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, proxy.ErrTooFewArgs), errors.Is(err, viewer.ErrNotFound):
		out.Errorf("error: %v", err)
		return exitError
	default:
		// The viewer ran but failed; let git carry on with the remaining files.
		out.Errorf("error: %v", err)
		return exitOK
	}
}
