package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/pseudomuto/tsqlfmt/pkg/config"
	"github.com/pseudomuto/tsqlfmt/pkg/consts"
	"github.com/pseudomuto/tsqlfmt/pkg/format"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates a CLI command for formatting T-SQL files.
// This command provides gofmt-like functionality for SQL files, allowing users
// to format individual files, entire directory trees or standard input.
//
// Output modes:
//   - Stdout mode (default): Formatted SQL is written to standard output
//   - Write mode (-w): Files are modified in-place
//   - List mode (-l): Names of files whose formatting differs are printed
//   - Diff mode (-d): A unified diff against the formatted result is printed
//   - Watch mode (--watch): Files are re-formatted in-place whenever they change
//
// Path handling:
//   - File paths: Format the specified file directly
//   - Directory paths: Recursively format every file with a configured extension
//   - "-": Read SQL from standard input
//
// Style flags override the matching settings from the config file.
//
// Examples:
//
//	# Format single file to stdout
//	tsqlfmt fmt proc.sql
//
//	# Format all SQL files in a directory tree in-place
//	tsqlfmt fmt -w db/
//
//	# Show what would change, with lower-case keywords and 2-space indents
//	tsqlfmt fmt -d --keyword-case lower --use-tabs=false --indent-size 2 db/
//
//	# Format a snippet from stdin
//	echo "select 1" | tsqlfmt fmt -
func fmtCmd(load config.Loader) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path|->",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List files whose formatting differs",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "Display diffs instead of rewriting files",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Re-format files in place whenever they change",
			},
			&cli.IntFlag{
				Name:  "indent-size",
				Usage: "Spaces per indent level when tabs are disabled",
			},
			&cli.BoolFlag{
				Name:  "use-tabs",
				Usage: "Indent with tabs",
			},
			&cli.StringFlag{
				Name:  "keyword-case",
				Usage: "Keyword casing: upper, lower or preserve",
			},
			&cli.BoolFlag{
				Name:  "expand-comma-lists",
				Usage: "Break the line after every comma",
			},
			&cli.BoolFlag{
				Name:  "expand-case",
				Usage: "Break CASE expressions over multiple lines",
			},
			&cli.BoolFlag{
				Name:  "expand-between",
				Usage: "Break BETWEEN ... AND ... over multiple lines",
			},
			&cli.BoolFlag{
				Name:  "expand-in-lists",
				Usage: "Put each item of an IN list on its own line",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			c, err := resolveConfig(cmd, load)
			if err != nil {
				return err
			}

			options, err := styleOptions(cmd, c.Options())
			if err != nil {
				return err
			}

			f := &fileFormatter{
				formatter: format.New(options),
				config:    c,
				out:       stdout(cmd),
				write:     cmd.Bool("write"),
				list:      cmd.Bool("list"),
				diff:      cmd.Bool("diff"),
			}

			path := cmd.Args().First()
			if path == consts.StdinPath {
				if f.write || cmd.Bool("watch") {
					return errors.New("cannot write back to standard input")
				}
				return f.formatReader(consts.StdinPath, stdin(cmd))
			}

			if cmd.Bool("watch") {
				f.write = true
				return watch(ctx, path, f)
			}

			return f.formatPath(path)
		},
	}
}

// styleOptions applies the style flags that were explicitly set on top of
// options.
func styleOptions(cmd *cli.Command, options format.FormatterOptions) (format.FormatterOptions, error) {
	if cmd.IsSet("indent-size") {
		size := int(cmd.Int("indent-size"))
		if size <= 0 {
			return options, errors.Errorf("indent-size must be positive, got %d", size)
		}
		options.IndentSize = size
	}

	if cmd.IsSet("keyword-case") {
		casing, err := format.ParseCasing(cmd.String("keyword-case"))
		if err != nil {
			return options, err
		}
		options.KeywordCasing = casing
	}

	bools := []struct {
		flag   string
		target *bool
	}{
		{"use-tabs", &options.IndentUseTab},
		{"expand-comma-lists", &options.ExpandCommaLists},
		{"expand-case", &options.ExpandCaseStatements},
		{"expand-between", &options.ExpandBetweenAndStatements},
		{"expand-in-lists", &options.ExpandInLists},
	}
	for _, b := range bools {
		if cmd.IsSet(b.flag) {
			*b.target = cmd.Bool(b.flag)
		}
	}

	return options, nil
}

// fileFormatter formats files and reports the result according to the output
// mode flags.
type fileFormatter struct {
	formatter *format.Formatter
	config    *config.Config
	out       io.Writer

	write bool
	list  bool
	diff  bool

	// onWrite is called after a file has been rewritten.
	onWrite func(path string, content []byte)
}

// formatPath handles formatting of either a single file or directory recursively.
func (f *fileFormatter) formatPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return f.formatDirectory(path)
	}

	return f.formatFile(path)
}

// formatDirectory recursively walks through a directory and formats all files
// with a configured extension. Files are processed in lexicographical order.
func (f *fileFormatter) formatDirectory(dir string) error {
	files, err := f.collect(dir)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, file := range files {
		if err := f.formatFile(file); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", file)
		}
	}

	return nil
}

func (f *fileFormatter) collect(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && f.config.Matches(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	return files, nil
}

func (f *fileFormatter) formatFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	return f.process(path, content)
}

func (f *fileFormatter) formatReader(name string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read standard input")
	}

	return f.process(name, content)
}

// process formats content and emits the result for name.
func (f *fileFormatter) process(name string, content []byte) error {
	formatted, err := f.formatSource(string(content))
	if err != nil {
		return errors.Wrapf(err, "failed to format SQL in file: %s", name)
	}

	changed := formatted != string(content)
	slog.Debug("Formatted file", "path", name, "changed", changed)

	if f.list && changed {
		if _, err := fmt.Fprintln(f.out, name); err != nil {
			return errors.Wrap(err, "failed to write file name to output")
		}
	}

	if f.diff && changed {
		if err := f.writeDiff(name, string(content), formatted); err != nil {
			return err
		}
	}

	if f.write {
		if !changed {
			return nil
		}

		if err := os.WriteFile(name, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", name)
		}
		if f.onWrite != nil {
			f.onWrite(name, []byte(formatted))
		}
		return nil
	}

	if !f.list && !f.diff {
		if _, err := fmt.Fprint(f.out, formatted); err != nil {
			return errors.Wrap(err, "failed to write formatted content to output")
		}
	}

	return nil
}

// formatSource formats the contents of a file. Non-empty results end with a
// newline; whitespace-only sources are left alone.
func (f *fileFormatter) formatSource(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return src, nil
	}

	formatted, err := f.formatter.SQL(src)
	if err != nil {
		return "", err
	}

	return formatted + "\n", nil
}

func (f *fileFormatter) writeDiff(name, original, formatted string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: name + ".orig",
		ToFile:   name,
		Context:  3,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to diff file: %s", name)
	}

	if _, err := io.WriteString(f.out, diff); err != nil {
		return errors.Wrap(err, "failed to write diff to output")
	}

	return nil
}
