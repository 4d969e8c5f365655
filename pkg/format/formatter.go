package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/tsqlfmt/pkg/tokenizer"
)

// Formatter handles SQL formatting with configurable options
type Formatter struct {
	options FormatterOptions
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	return &Formatter{options: options}
}

// NewDefault creates a new Formatter with default options
func NewDefault() *Formatter {
	return New(Defaults)
}

// Options returns the options the formatter was created with.
func (f *Formatter) Options() FormatterOptions {
	return f.options
}

// Tokens formats a token sequence. It never fails: tokens it cannot place are
// written verbatim.
func (f *Formatter) Tokens(tokens []tokenizer.Token) string {
	r := newRun(&f.options)
	for _, tok := range tokens {
		r.token(tok)
	}
	return r.out.String()
}

// SQL tokenizes and formats sql. Empty or whitespace-only input is returned
// unchanged.
func (f *Formatter) SQL(sql string) (string, error) {
	if strings.TrimSpace(sql) == "" {
		return sql, nil
	}

	tokens, err := tokenizer.Tokenize(sql)
	if err != nil {
		return "", errors.Wrap(err, "failed to tokenize SQL")
	}

	return f.Tokens(tokens), nil
}

// Format writes the formatted form of sql to w.
func (f *Formatter) Format(w io.Writer, sql string) error {
	formatted, err := f.SQL(sql)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, formatted)
	return err
}

// Format writes the formatted form of sql to w using the given options
// (convenience function).
func Format(w io.Writer, options FormatterOptions, sql string) error {
	return New(options).Format(w, sql)
}

// SQL formats sql with the default options (convenience function).
func SQL(sql string) (string, error) {
	return NewDefault().SQL(sql)
}
