package format

import (
	"strings"

	"github.com/pkg/errors"
)

// Casing controls how keywords are written.
type Casing int

const (
	// UpperCase writes keywords in upper case.
	UpperCase Casing = iota
	// LowerCase writes keywords in lower case.
	LowerCase
	// PreserveCase writes keywords as they appear in the input.
	PreserveCase
)

// ParseCasing converts a casing name (upper, lower, preserve) into a Casing.
// "unchanged" is accepted as an alias of "preserve".
func ParseCasing(s string) (Casing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper", "uppercase":
		return UpperCase, nil
	case "lower", "lowercase":
		return LowerCase, nil
	case "preserve", "unchanged", "none":
		return PreserveCase, nil
	default:
		return UpperCase, errors.Errorf("unknown keyword casing: %q", s)
	}
}

func (c Casing) String() string {
	switch c {
	case LowerCase:
		return "lower"
	case PreserveCase:
		return "preserve"
	default:
		return "upper"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Casing) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Casing) UnmarshalText(text []byte) error {
	parsed, err := ParseCasing(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// apply returns word cased according to c.
func (c Casing) apply(word string) string {
	switch c {
	case UpperCase:
		return strings.ToUpper(word)
	case LowerCase:
		return strings.ToLower(word)
	default:
		return word
	}
}

// FormatterOptions controls formatting behavior
type FormatterOptions struct {
	// IndentSize is the number of spaces per indent level when IndentUseTab is false
	IndentSize int
	// IndentUseTab indents with one tab per level instead of spaces
	IndentUseTab bool
	// KeywordCasing controls how keywords are written
	KeywordCasing Casing
	// ExpandCommaLists breaks the line after every comma
	ExpandCommaLists bool
	// ExpandCaseStatements breaks CASE expressions over multiple lines
	ExpandCaseStatements bool
	// ExpandBetweenAndStatements breaks BETWEEN x AND y over multiple lines
	ExpandBetweenAndStatements bool
	// ExpandInLists puts every item of an IN (...) list on its own line
	ExpandInLists bool
}

// Defaults are the standard formatting options
var Defaults = FormatterOptions{
	IndentSize:                 4,
	IndentUseTab:               true,
	KeywordCasing:              UpperCase,
	ExpandCommaLists:           false,
	ExpandCaseStatements:       true,
	ExpandBetweenAndStatements: false,
	ExpandInLists:              true,
}

// indent returns the indentation string for the given depth.
func (o *FormatterOptions) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	if o.IndentUseTab {
		return strings.Repeat("\t", depth)
	}
	if o.IndentSize <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*o.IndentSize)
}
