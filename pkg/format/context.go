package format

// ContextKind identifies a syntactic region that affects indentation.
type ContextKind int

const (
	ParenContext ContextKind = iota
	SubqueryContext
	CaseContext
	CteContext
	InListContext
	CommaListContext
	BetweenContext
)

func (k ContextKind) String() string {
	switch k {
	case ParenContext:
		return "paren"
	case SubqueryContext:
		return "subquery"
	case CaseContext:
		return "case"
	case CteContext:
		return "cte"
	case InListContext:
		return "in-list"
	case CommaListContext:
		return "comma-list"
	case BetweenContext:
		return "between"
	default:
		return "unknown"
	}
}

// frame is one open context. base is only meaningful for parentheses and holds
// the WHERE base indent to restore when the parenthesis closes.
type frame struct {
	kind ContextKind
	base int
}

// contextStack tracks the open contexts in the order they were opened.
//
// Frames opened inside a parenthesis belong to it: closing the parenthesis
// closes them as well.
type contextStack struct {
	frames []frame
}

func (s *contextStack) push(kind ContextKind) {
	s.frames = append(s.frames, frame{kind: kind})
}

func (s *contextStack) pushParen(base int) {
	s.frames = append(s.frames, frame{kind: ParenContext, base: base})
}

// parenLevel returns the number of open parentheses.
func (s *contextStack) parenLevel() int {
	n := 0
	for _, f := range s.frames {
		if f.kind == ParenContext {
			n++
		}
	}
	return n
}

// levelStart returns the index of the first frame above the innermost
// parenthesis.
func (s *contextStack) levelStart() int {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == ParenContext {
			return i + 1
		}
	}
	return 0
}

// has reports whether a context of the given kind is open anywhere.
func (s *contextStack) has(kind ContextKind) bool {
	for _, f := range s.frames {
		if f.kind == kind {
			return true
		}
	}
	return false
}

// inLevel reports whether a context of the given kind is open at the current
// parenthesis level.
func (s *contextStack) inLevel(kind ContextKind) bool {
	for _, f := range s.frames[s.levelStart():] {
		if f.kind == kind {
			return true
		}
	}
	return false
}

// closeInLevel pops the innermost context of the given kind at the current
// parenthesis level together with everything opened after it. It reports
// whether such a context was open.
func (s *contextStack) closeInLevel(kind ContextKind) bool {
	start := s.levelStart()
	for i := len(s.frames) - 1; i >= start; i-- {
		if s.frames[i].kind == kind {
			s.frames = s.frames[:i]
			return true
		}
	}
	return false
}

// replaceInLevel swaps the innermost context of kind from at the current level
// for a context of kind to. It reports whether a swap happened.
func (s *contextStack) replaceInLevel(from, to ContextKind) bool {
	start := s.levelStart()
	for i := len(s.frames) - 1; i >= start; i-- {
		if s.frames[i].kind == from {
			s.frames[i].kind = to
			return true
		}
	}
	return false
}

// closeParen pops the innermost parenthesis and every context opened inside
// it. The popped frames are returned innermost first, ending with the
// parenthesis itself. ok is false when no parenthesis is open.
func (s *contextStack) closeParen() (popped []frame, ok bool) {
	start := s.levelStart()
	if start == 0 {
		return nil, false
	}

	for i := len(s.frames) - 1; i >= start-1; i-- {
		popped = append(popped, s.frames[i])
	}
	s.frames = s.frames[:start-1]
	return popped, true
}

// depth returns the indentation depth implied by the open contexts.
func (s *contextStack) depth(opts *FormatterOptions) int {
	d := 0
	for _, f := range s.frames {
		switch f.kind {
		case SubqueryContext, CaseContext, CteContext:
			d++
		case InListContext:
			if opts.ExpandInLists {
				d++
			}
		case CommaListContext:
			if opts.ExpandCommaLists {
				d++
			}
		}
	}
	return d
}

// kinds returns the kinds of the open contexts, outermost first.
func (s *contextStack) kinds() []ContextKind {
	kinds := make([]ContextKind, len(s.frames))
	for i, f := range s.frames {
		kinds[i] = f.kind
	}
	return kinds
}

func containsKind(frames []frame, kind ContextKind) bool {
	for _, f := range frames {
		if f.kind == kind {
			return true
		}
	}
	return false
}
