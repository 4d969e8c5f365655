// Package format pretty-prints T-SQL text.
//
// The formatter is a single-pass transformer over the token stream produced by
// pkg/tokenizer. It never builds a syntax tree; instead it tracks the open
// syntactic contexts (parentheses, subqueries, CASE expressions, CTEs,
// BETWEEN predicates, IN lists and comma lists) on a small stack and derives
// the indentation depth from it.
//
// Key features:
//   - Keyword casing (upper, lower or preserved)
//   - Line breaks before clause keywords (SELECT, FROM, WHERE, JOIN, ...)
//   - Indented subqueries, CASE expressions, CTE bodies and IN lists
//   - Optional expansion of comma lists and BETWEEN/AND predicates
//   - Comments and unterminated trailing input preserved verbatim
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//	out, err := formatter.SQL("select a from t where b in (1,2,3)")
//
//	// Object-oriented API with custom options
//	formatter := format.New(format.FormatterOptions{
//		IndentSize:    2,
//		KeywordCasing: format.LowerCase,
//		ExpandInLists: true,
//	})
//
//	// Functional API
//	var buf bytes.Buffer
//	err := format.Format(&buf, format.Defaults, "select 1")
//
// Output for the first example:
//
//	SELECT a
//	FROM t
//	WHERE b IN
//	(
//		1,
//		2,
//		3
//	)
//
// A Formatter holds only its options; every call works on its own state, so a
// single Formatter may be shared between goroutines.
package format
