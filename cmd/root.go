package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/masmgr/git-chdiff/config"
	"github.com/masmgr/git-chdiff/internal/git"
	"github.com/urfave/cli/v2"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// App creates the git-chdiff CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                   "git-chdiff",
		Usage:                  "display diffs of git files using the chdiff utility",
		UsageText:              "git-chdiff [options] [file1 file2 ...]",
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "revision",
				Aliases:     []string{"r"},
				Usage:       "the revision of the file to use",
				DefaultText: "HEAD, the last commit",
			},
			&cli.BoolFlag{
				Name:    "wait",
				Aliases: []string{"w"},
				Usage:   "cause the viewer to wait between files and remove each temp file after it closes",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print more messages during operation",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "clean any temp files that might have been left around",
			},
			&cli.BoolFlag{
				Name:  "changed-only",
				Usage: "skip files whose content at the revision matches the working copy",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action:       chdiffAction,
		OnUsageError: usageError,
		// Exit codes are mapped by Run; keep the library from calling os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// usageError prints the parse error and usage to stderr and selects exit code 2.
func usageError(c *cli.Context, err error, _ bool) error {
	fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err)
	cli.HelpPrinter(c.App.ErrWriter, cli.AppHelpTemplate, c.App)
	return cli.Exit("", exitUsage)
}

// loadConfig loads configuration from the --config flag, the environment, or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newTracker builds the configured git backend. The CLI backend runs in the
// process working directory so paths resolve the same way for git and os.Stat.
func newTracker(cfg *config.Config) git.Tracker {
	switch cfg.Git.Backend {
	case config.BackendGoGit:
		return git.NewRepoTracker(".")
	default:
		return git.NewCLITracker("", cfg.Git.Timeout())
	}
}

// Run executes the git-chdiff application and returns the process exit code.
func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := App()
	app.Writer = stdout
	app.ErrWriter = stderr
	return exitCode(app.RunContext(ctx, args), stderr)
}

// exitCode maps an action error to a process exit code, printing its message.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
