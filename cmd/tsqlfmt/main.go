package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pseudomuto/tsqlfmt/pkg/cmd"
	"github.com/pseudomuto/tsqlfmt/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(&cmd.Version{
			Version:   version,
			Commit:    commit,
			Timestamp: date,
		}),
		fx.Provide(
			func() context.Context { return context.Background() },
			func() []string { return os.Args },
		),
		config.Module,
		cmd.Module,
	)

	// fx.NopLogger hides startup failures
	if err := app.Err(); err != nil {
		slog.Error("Failed to start", "err", err)
		os.Exit(1)
	}

	app.Run()
}
