package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// Result holds what a command wrote to its output.
type Result struct {
	Stdout string
}

// RunCommand executes a command below a test root that carries the same global
// flags as the real CLI (--config and --verbose).
func RunCommand(t *testing.T, command *cli.Command, args ...string) (Result, error) {
	t.Helper()
	return RunCommandWithInput(t.Context(), t, command, "", args...)
}

// RunCommandWithInput executes a command with stdin set to input.
func RunCommandWithInput(ctx context.Context, t *testing.T, command *cli.Command, input string, args ...string) (Result, error) {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{
		Name:   "test",
		Reader: strings.NewReader(input),
		Writer: &out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
			&cli.BoolFlag{Name: "verbose"},
		},
		Commands: []*cli.Command{command},
	}

	err := app.Run(ctx, append([]string{"test", command.Name}, args...))
	return Result{Stdout: out.String()}, err
}
