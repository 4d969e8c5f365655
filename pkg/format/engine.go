package format

import (
	"strings"

	"github.com/pseudomuto/tsqlfmt/pkg/tokenizer"
)

// run is the state of one formatting pass. It is created per call and thrown
// away afterwards.
type run struct {
	opts     *FormatterOptions
	out      *printer
	contexts contextStack

	// base is the indent WHERE returns to.
	base int
	// pendingIn is set between an IN keyword and the parenthesis of its list.
	pendingIn bool

	prev tokenizer.Token // previous token, whitespace included
	last tokenizer.Token // previous non-whitespace token
}

func newRun(opts *FormatterOptions) *run {
	return &run{
		opts: opts,
		out:  newPrinter(opts),
		prev: tokenizer.Token{Kind: tokenizer.Whitespace},
	}
}

func (r *run) depth() int {
	return r.contexts.depth(r.opts)
}

func (r *run) newline() {
	r.out.newline(r.depth())
}

func (r *run) token(tok tokenizer.Token) {
	switch kind := tok.Kind; {
	case kind.IsComment():
		r.comment(tok)
	case kind.IsIncomplete(), kind == tokenizer.Unknown:
		// passed through untouched
		if r.prev.Kind == tokenizer.Whitespace {
			r.out.space()
		}
		r.out.write(tok.Text)
	case kind == tokenizer.Keyword:
		r.keyword(tok)
	case kind == tokenizer.Operator:
		r.operator(tok)
	case kind == tokenizer.Character:
		r.character(tok)
	case kind == tokenizer.Whitespace:
		r.whitespace(tok)
	default:
		// identifiers, literals and variables
		r.out.space()
		r.out.write(tok.Text)
	}

	r.prev = tok
	if tok.Kind != tokenizer.Whitespace {
		r.last = tok
	}
}

func (r *run) comment(tok tokenizer.Token) {
	r.out.space()
	r.out.write(tok.Text)

	// keep the rest of the statement out of the comment
	if tok.Kind == tokenizer.SingleLineComment {
		r.newline()
	}
}

func (r *run) whitespace(tok tokenizer.Token) {
	switch n := strings.Count(tok.Text, "\n"); {
	case n == 1:
		r.newline()
	case n > 1:
		r.out.blankLine(r.depth())
	}
}

func (r *run) keyword(tok tokenizer.Token) {
	word := strings.ToUpper(tok.Text)
	kw := r.out.keyword(tok.Text)

	switch classifyKeyword(word, r.contexts.parenLevel()) {
	case caseKeyword:
		r.caseKeyword(word, kw)
	case betweenKeyword:
		r.betweenKeyword(word, kw)
	case inKeyword:
		r.out.space()
		r.out.write(kw)
		r.pendingIn = true
	case cteKeyword:
		r.cteKeyword(word, kw)
	case subqueryKeyword:
		r.openSubquery()
		r.newline()
		r.out.write(kw)
	case fromKeyword:
		r.newline()
		r.out.write(kw)
		r.out.write(" ")
	case whereKeyword:
		r.out.newline(r.base)
		r.out.write(kw)
	case newlineKeyword:
		r.newline()
		r.out.write(kw)
	default:
		r.out.space()
		r.out.write(kw)
	}
}

func (r *run) caseKeyword(word, kw string) {
	if !r.opts.ExpandCaseStatements {
		r.out.space()
		r.out.write(kw)
		return
	}

	switch word {
	case "CASE":
		r.contexts.push(CaseContext)
		r.out.space()
		r.out.write(kw)
		r.newline()
	case "WHEN":
		r.newline()
		r.out.write(kw)
		r.out.write(" ")
	case "THEN":
		r.out.space()
		r.out.write(kw)
		r.newline()
	case "ELSE":
		r.newline()
		r.out.write(kw)
		r.newline()
	case "END":
		r.contexts.closeInLevel(CaseContext)
		r.newline()
		r.out.write(kw)
	}
}

func (r *run) betweenKeyword(word, kw string) {
	if word == "BETWEEN" {
		r.contexts.push(BetweenContext)
		r.out.space()
		r.out.write(kw)
		if r.opts.ExpandBetweenAndStatements {
			r.newline()
		}
		return
	}

	// AND only ends a BETWEEN when one is open; otherwise it is the boolean operator.
	if !r.contexts.closeInLevel(BetweenContext) {
		r.out.space()
		r.out.write(kw)
		r.out.write(" ")
		return
	}

	if r.opts.ExpandBetweenAndStatements {
		r.newline()
	} else {
		r.out.space()
	}
	r.out.write(kw)
	r.out.write(" ")
}

func (r *run) cteKeyword(word, kw string) {
	if word == "WITH" {
		r.contexts.push(CteContext)
		r.out.space()
		r.out.write(kw)
		r.newline()
		return
	}

	// AS separates a CTE name from its body; anywhere else it is an alias.
	if r.contexts.has(CteContext) {
		r.newline()
		r.out.write(kw)
		r.newline()
		return
	}

	r.out.space()
	r.out.write(kw)
	r.out.write(" ")
}

// openSubquery marks the current parenthesis as a subquery body. A SELECT
// directly inside an IN list turns the list into a subquery.
func (r *run) openSubquery() {
	if r.contexts.inLevel(SubqueryContext) {
		return
	}

	if !r.contexts.replaceInLevel(InListContext, SubqueryContext) {
		r.contexts.push(SubqueryContext)
	}
	r.base = r.depth()
}

func (r *run) operator(tok tokenizer.Token) {
	switch tok.Text {
	case "(":
		r.openParen(tok)
	case ")":
		r.closeParen(tok)
	default:
		r.out.space()
		r.out.write(tok.Text)
		r.out.write(" ")
	}
}

func (r *run) openParen(tok tokenizer.Token) {
	inList := r.pendingIn
	r.pendingIn = false
	afterFrom := r.last.Is(tokenizer.Keyword, "FROM")

	switch {
	case inList && r.opts.ExpandInLists:
		r.newline()
	case r.contexts.has(SubqueryContext) && r.startsOperand():
		r.newline()
	case r.prev.Kind == tokenizer.Whitespace:
		r.out.space()
	}

	r.contexts.pushParen(r.base)
	if inList {
		r.contexts.push(InListContext)
	}
	r.out.write(tok.Text)

	switch {
	case afterFrom:
		r.base = r.depth()
		r.newline()
	case inList && r.opts.ExpandInLists:
		r.newline()
	}
}

// startsOperand reports whether a parenthesis at this point opens an operand
// rather than a call, a column list or a keyword argument.
func (r *run) startsOperand() bool {
	switch r.last.Kind {
	case tokenizer.Operator:
		return r.last.Text != ")"
	case tokenizer.Character:
		return r.last.Text == ","
	}
	return false
}

func (r *run) closeParen(tok tokenizer.Token) {
	popped, ok := r.contexts.closeParen()
	if !ok {
		// unbalanced input; nothing to close
		r.out.trimSpace()
		r.out.write(tok.Text)
		return
	}

	r.base = popped[len(popped)-1].base

	switch {
	case containsKind(popped, InListContext):
		if r.opts.ExpandInLists {
			r.newline()
		} else {
			r.out.trimSpace()
		}
	case containsKind(popped, SubqueryContext):
		r.newline()
	default:
		r.out.trimSpace()
	}
	r.out.write(tok.Text)
}

func (r *run) character(tok tokenizer.Token) {
	switch tok.Text {
	case ",":
		r.out.trimSpace()
		r.out.write(tok.Text)
		r.comma()
	case ".", ";", ":":
		r.out.trimSpace()
		r.out.write(tok.Text)
	default:
		r.out.write(tok.Text)
	}
}

func (r *run) comma() {
	switch {
	case r.opts.ExpandInLists && r.contexts.inLevel(InListContext):
		r.newline()
	case r.opts.ExpandCommaLists || r.contexts.has(SubqueryContext):
		if !r.contexts.inLevel(CommaListContext) {
			r.contexts.push(CommaListContext)
		}
		r.newline()
	default:
		r.out.write(" ")
	}
}
