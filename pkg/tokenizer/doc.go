// Package tokenizer splits T-SQL text into a lossless sequence of typed tokens.
//
// The tokenizer is built on github.com/alecthomas/participle/v2/lexer and never
// fails on odd input: every character of the source ends up in exactly one token,
// so concatenating the Text of all tokens reproduces the input. Unterminated
// comments, strings and quoted identifiers are reported with the Incomplete*
// kinds instead of an error.
//
// Key features:
//   - Keyword, identifier and built-in function classification
//   - Variables (@x), system variables (@@x) and system columns ($action)
//   - String, numeric, money and binary literals
//   - Whitespace and comments preserved as tokens
//
// Usage:
//
//	tokens, err := tokenizer.Tokenize("select a from t where b = 1")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, tok := range tokens {
//		fmt.Printf("%s %q\n", tok.Kind, tok.Text)
//	}
package tokenizer
