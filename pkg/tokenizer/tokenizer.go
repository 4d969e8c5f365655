package tokenizer

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// sqlLexer defines the T-SQL token rules. Order matters: the first rule that
	// matches at the current position wins, and Other guarantees progress.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "SingleLineComment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "IncompleteComment", Pattern: `/\*[\s\S]*`},
		{Name: "String", Pattern: `[nN]?'(?:[^']|'')*'`},
		{Name: "IncompleteString", Pattern: `[nN]?'(?:[^']|'')*`},
		{Name: "BracketIdent", Pattern: `\[(?:[^\]]|\]\])*\]`},
		{Name: "QuotedIdent", Pattern: `"(?:[^"]|"")*"`},
		{Name: "IncompleteIdent", Pattern: `\[(?:[^\]]|\]\])*|"(?:[^"]|"")*`},
		{Name: "Binary", Pattern: `0[xX][0-9a-fA-F]*`},
		{Name: "Money", Pattern: `\$[+-]?(?:\d+(?:\.\d*)?|\.\d+)`},
		{Name: "SystemColumn", Pattern: `\$[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Number", Pattern: `(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`},
		{Name: "SystemVariable", Pattern: `@@[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Variable", Pattern: `@[\p{L}\p{N}_#$@]+`},
		{Name: "Word", Pattern: `[\p{L}_#][\p{L}\p{N}_#$@]*`},
		{Name: "Operator", Pattern: `<>|!=|!<|!>|<=|>=|\+=|-=|\*=|/=|%=|&=|\^=|\|=|::|[=<>+\-*/%&|^~!()]`},
		{Name: "Character", Pattern: `[,.;:{}]`},
		{Name: "Other", Pattern: `[\s\S]`},
	})

	// ruleKinds maps lexer rule names to token kinds. Word is resolved per value.
	ruleKinds = map[string]Kind{
		"Whitespace":        Whitespace,
		"SingleLineComment": SingleLineComment,
		"MultilineComment":  MultilineComment,
		"IncompleteComment": IncompleteComment,
		"String":            StringLiteral,
		"IncompleteString":  IncompleteString,
		"BracketIdent":      Identifier,
		"QuotedIdent":       Identifier,
		"IncompleteIdent":   IncompleteIdentifier,
		"Binary":            BinaryLiteral,
		"Money":             MoneyLiteral,
		"SystemColumn":      SystemColumnIdentifier,
		"Number":            NumericLiteral,
		"SystemVariable":    SystemVariable,
		"Variable":          Variable,
		"Operator":          Operator,
		"Character":         Character,
		"Other":             Unknown,
	}

	// symbolNames is the reverse of sqlLexer.Symbols().
	symbolNames map[lexer.TokenType]string
)

func init() {
	symbols := sqlLexer.Symbols()
	symbolNames = make(map[lexer.TokenType]string, len(symbols))
	for name, typ := range symbols {
		symbolNames[typ] = name
	}
}

// Tokenize splits sql into tokens. The concatenated Text of the result is always
// equal to sql.
//
// Example:
//
//	tokens, err := tokenizer.Tokenize("select [name] from dbo.users")
//	// Keyword("select") Whitespace(" ") Identifier("[name]") ...
func Tokenize(sql string) ([]Token, error) {
	lex, err := sqlLexer.LexString("", sql)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create lexer")
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize SQL")
	}

	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}

		tokens = append(tokens, Token{Kind: classify(symbolNames[t.Type], t.Value), Text: t.Value})
	}

	return tokens, nil
}

func classify(rule, value string) Kind {
	if rule != "Word" {
		return ruleKinds[rule]
	}

	word := strings.ToUpper(value)
	if _, ok := keywords[word]; ok {
		return Keyword
	}
	if _, ok := systemIdentifiers[word]; ok {
		return SystemIdentifier
	}
	return Identifier
}
