package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the tsqlfmt CLI with the fx lifecycle.
//
// The CLI runs on its own goroutine once the application has started so that
// long running commands (fmt --watch) are not bound by the start timeout. When
// the command returns, the application is shut down with exit code 1 on error
// and 0 otherwise. Stopping the application (for example on SIGINT) cancels
// the context handed to the running command.
func Run(p Params) {
	app := newApp(p.Version, p.Commands)
	ctx, cancel := context.WithCancel(p.Ctx)

	p.Lifecycle.Append(fx.StartStopHook(
		func() {
			go func() {
				code := 0
				if err := app.Run(ctx, p.Args); err != nil {
					slog.Error("Error running command", "err", err)
					code = 1
				}

				_ = p.Shutdowner.Shutdown(fx.ExitCode(code))
			}()
		},
		cancel,
	))
}

// newApp builds the root command.
//
// Global Flags:
//   - --config, -c: Config file to use instead of .tsqlfmt.yaml (env TSQLFMT_CONFIG)
//   - --verbose: Enable debug logging
func newApp(version *Version, commands []*cli.Command) *cli.Command {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Root().Writer, "Version:", version.Version)
		fmt.Fprintln(cmd.Root().Writer, "Commit:", version.Commit)
		fmt.Fprintln(cmd.Root().Writer, "Date:", version.Timestamp)
	}

	return &cli.Command{
		Name:  "tsqlfmt",
		Usage: "A formatter for T-SQL scripts",
		Description: `tsqlfmt re-indents T-SQL scripts: clause keywords start new lines,
subqueries, CASE expressions and IN lists are indented, and keyword casing is
normalized. Formatting never changes the token sequence of a script.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the config file (defaults to .tsqlfmt.yaml when present)",
				Sources: cli.EnvVars("TSQLFMT_CONFIG"),
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			return ctx, nil
		},
		Commands: commands,
	}
}
