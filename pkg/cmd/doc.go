// Package cmd provides CLI commands for the tsqlfmt tool.
//
// # Available Commands
//
//   - fmt: Format files, directory trees or standard input
//   - init: Write a default .tsqlfmt.yaml
//
// # Command Structure
//
// Each command is implemented as a function that returns a *cli.Command,
// following the urfave/cli/v3 pattern. Commands are registered with fx in the
// "commands" value group and assembled into the root command by Run.
//
// # Global Options
//
//   - --config, -c: Config file to use instead of .tsqlfmt.yaml
//   - --verbose: Enable debug logging
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	tsqlfmt init                          # Write .tsqlfmt.yaml
//	tsqlfmt fmt -w db/                    # Format every .sql file below db/
//	tsqlfmt fmt -l .                      # List files that need formatting
//	tsqlfmt fmt --watch db/               # Keep db/ formatted while editing
//	cat proc.sql | tsqlfmt fmt -          # Format standard input
package cmd
