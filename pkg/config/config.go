package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/tsqlfmt/pkg/consts"
	"github.com/pseudomuto/tsqlfmt/pkg/format"
	"gopkg.in/yaml.v3"
)

type (
	// Format holds the formatting style settings. Every field maps onto the
	// matching field of format.FormatterOptions.
	Format struct {
		// IndentSize is the number of spaces per level when tabs are disabled
		IndentSize int `yaml:"indent_size"`

		// IndentUseTab indents with one tab per level
		IndentUseTab bool `yaml:"indent_use_tab"`

		// KeywordCasing is one of upper, lower or preserve
		KeywordCasing format.Casing `yaml:"keyword_casing"`

		ExpandCommaLists           bool `yaml:"expand_comma_lists"`
		ExpandCaseStatements       bool `yaml:"expand_case_statements"`
		ExpandBetweenAndStatements bool `yaml:"expand_between_and_statements"`
		ExpandInLists              bool `yaml:"expand_in_lists"`
	}

	// Config represents the tsqlfmt configuration file.
	Config struct {
		// Format contains the formatting style
		Format Format `yaml:"format"`

		// Extensions lists the file extensions picked up when formatting a directory
		Extensions []string `yaml:"extensions"`
	}
)

// Default returns the configuration used when no config file is present.
func Default() *Config {
	d := format.Defaults
	return &Config{
		Format: Format{
			IndentSize:                 d.IndentSize,
			IndentUseTab:               d.IndentUseTab,
			KeywordCasing:              d.KeywordCasing,
			ExpandCommaLists:           d.ExpandCommaLists,
			ExpandCaseStatements:       d.ExpandCaseStatements,
			ExpandBetweenAndStatements: d.ExpandBetweenAndStatements,
			ExpandInLists:              d.ExpandInLists,
		},
		Extensions: []string{consts.DefaultExtension},
	}
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// The document is decoded on top of Default(), so keys that are not present
// keep their default values and an empty document yields the defaults.
//
// Example:
//
//	yamlData := `
//	format:
//	  indent_use_tab: false
//	  indent_size: 2
//	  keyword_casing: lower
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	out, err := cfg.GetFormatter().SQL("SELECT 1")
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file: %s", path)
	}

	return cfg, nil
}

// Loader resolves the Config a command should use. It is only called when the
// command needs a config.
type Loader func() (*Config, error)

// Static returns a Loader that always yields cfg.
func Static(cfg *Config) Loader {
	return func() (*Config, error) { return cfg, nil }
}

// LoadWorkingDir loads .tsqlfmt.yaml from the working directory when it exists
// and returns Default() otherwise.
func LoadWorkingDir() (*Config, error) {
	if _, err := os.Stat(consts.DefaultConfigFile); os.IsNotExist(err) {
		return Default(), nil
	}

	slog.Debug("Loading config", "path", consts.DefaultConfigFile)
	return LoadConfigFile(consts.DefaultConfigFile)
}

// Options converts the format section into formatter options.
func (c *Config) Options() format.FormatterOptions {
	return format.FormatterOptions{
		IndentSize:                 c.Format.IndentSize,
		IndentUseTab:               c.Format.IndentUseTab,
		KeywordCasing:              c.Format.KeywordCasing,
		ExpandCommaLists:           c.Format.ExpandCommaLists,
		ExpandCaseStatements:       c.Format.ExpandCaseStatements,
		ExpandBetweenAndStatements: c.Format.ExpandBetweenAndStatements,
		ExpandInLists:              c.Format.ExpandInLists,
	}
}

// GetFormatter returns a formatter configured with Options.
func (c *Config) GetFormatter() *format.Formatter {
	return format.New(c.Options())
}

// Matches reports whether path has one of the configured extensions. The
// comparison ignores case.
func (c *Config) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Write encodes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	return errors.Wrap(enc.Close(), "failed to flush config")
}

func (c *Config) validate() error {
	if c.Format.IndentSize <= 0 {
		return errors.Errorf("indent_size must be positive, got %d", c.Format.IndentSize)
	}

	if len(c.Extensions) == 0 {
		c.Extensions = []string{consts.DefaultExtension}
	}

	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return errors.Errorf("invalid extension: %q", c.Extensions[i])
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}

	return nil
}
