package format

import (
	"bytes"
	"strings"
)

// printer accumulates formatted output. It owns all whitespace decisions:
// separating spaces, trailing-space trimming, line breaks and indentation.
type printer struct {
	options   *FormatterOptions
	output    bytes.Buffer
	lineStart int
}

func newPrinter(options *FormatterOptions) *printer {
	return &printer{options: options}
}

// String returns the output with leading and trailing whitespace removed.
func (p *printer) String() string {
	return strings.TrimSpace(p.output.String())
}

func (p *printer) write(s string) {
	p.output.WriteString(s)
}

func (p *printer) keyword(s string) string {
	return p.options.KeywordCasing.apply(s)
}

// needsSpace reports whether a separating space is required before the next
// token.
func (p *printer) needsSpace() bool {
	b := p.output.Bytes()
	if len(b) == 0 {
		return false
	}

	switch b[len(b)-1] {
	case ' ', '\t', '\n', '(', '.':
		return false
	}
	return true
}

func (p *printer) space() {
	if p.needsSpace() {
		p.output.WriteByte(' ')
	}
}

// trimSpace removes trailing spaces and tabs from the current line.
func (p *printer) trimSpace() {
	b := p.output.Bytes()
	n := len(b)
	for n > 0 && (b[n-1] == ' ' || b[n-1] == '\t') {
		n--
	}
	p.output.Truncate(n)
}

// newline ends the current line and indents the next one. An empty current
// line is reused instead of producing a blank line.
func (p *printer) newline(depth int) {
	p.breakLine(depth, false)
}

// blankLine is like newline but leaves exactly one empty line behind.
func (p *printer) blankLine(depth int) {
	p.breakLine(depth, true)
}

func (p *printer) breakLine(depth int, blank bool) {
	p.trimSpace()
	if p.output.Len() > 0 {
		if p.output.Len() != p.lineStart {
			p.output.WriteByte('\n')
		}
		if blank && !bytes.HasSuffix(p.output.Bytes(), []byte("\n\n")) {
			p.output.WriteByte('\n')
		}
	}

	p.lineStart = p.output.Len()
	p.write(p.options.indent(depth))
}
