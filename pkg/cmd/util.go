package cmd

import (
	"io"
	"os"

	"github.com/pseudomuto/tsqlfmt/pkg/config"
	"github.com/urfave/cli/v3"
)

// resolveConfig returns the config named by the global --config flag, falling
// back to load (and then to the defaults) when the flag is not set.
func resolveConfig(cmd *cli.Command, load config.Loader) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadConfigFile(path)
	}

	if load == nil {
		return config.Default(), nil
	}

	return load()
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
