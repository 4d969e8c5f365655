package tokenizer

import "strings"

// Kind is the category of a token.
type Kind int

const (
	Unknown Kind = iota
	Keyword
	Identifier
	SystemIdentifier
	StringLiteral
	NumericLiteral
	MoneyLiteral
	BinaryLiteral
	Operator
	Character
	Variable
	SystemVariable
	SystemColumnIdentifier
	Whitespace
	SingleLineComment
	MultilineComment
	IncompleteComment
	IncompleteIdentifier
	IncompleteString
)

var kindNames = [...]string{
	Unknown:                "Unknown",
	Keyword:                "Keyword",
	Identifier:             "Identifier",
	SystemIdentifier:       "SystemIdentifier",
	StringLiteral:          "StringLiteral",
	NumericLiteral:         "NumericLiteral",
	MoneyLiteral:           "MoneyLiteral",
	BinaryLiteral:          "BinaryLiteral",
	Operator:               "Operator",
	Character:              "Character",
	Variable:               "Variable",
	SystemVariable:         "SystemVariable",
	SystemColumnIdentifier: "SystemColumnIdentifier",
	Whitespace:             "Whitespace",
	SingleLineComment:      "SingleLineComment",
	MultilineComment:       "MultilineComment",
	IncompleteComment:      "IncompleteComment",
	IncompleteIdentifier:   "IncompleteIdentifier",
	IncompleteString:       "IncompleteString",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// IsComment reports whether the kind is a complete comment.
func (k Kind) IsComment() bool {
	return k == SingleLineComment || k == MultilineComment
}

// IsIncomplete reports whether the kind marks an unterminated construct.
func (k Kind) IsIncomplete() bool {
	return k == IncompleteComment || k == IncompleteIdentifier || k == IncompleteString
}

// Token is a single lexical unit with its original text.
type Token struct {
	Kind Kind
	Text string
}

// Is reports whether the token has the given kind and, ignoring case, the given text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && strings.EqualFold(t.Text, text)
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Text + ")"
}
