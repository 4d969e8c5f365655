package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/tsqlfmt/pkg/config"
	"github.com/pseudomuto/tsqlfmt/pkg/consts"
	"github.com/urfave/cli/v3"
)

// initCmd returns a CLI command that writes a default .tsqlfmt.yaml into the
// given directory (the current directory when omitted).
//
// An existing config file is left untouched unless --force is passed.
//
// Example usage:
//
//	# Create .tsqlfmt.yaml in the current directory
//	tsqlfmt init
//
//	# Replace an existing config in db/
//	tsqlfmt init --force db
func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default config file",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "."
			if cmd.Args().Len() > 0 {
				dir = cmd.Args().First()
			}

			if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "failed to create directory: %s", dir)
			}

			path := filepath.Join(dir, consts.DefaultConfigFile)
			if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
				return errors.Errorf("%s already exists (use --force to overwrite)", path)
			}

			f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.ModeFile)
			if err != nil {
				return errors.Wrapf(err, "failed to create file: %s", path)
			}
			defer func() { _ = f.Close() }()

			if err := config.Default().Write(f); err != nil {
				return errors.Wrapf(err, "failed to write file: %s", path)
			}

			slog.Info("Wrote config", "path", path)
			return nil
		},
	}
}
