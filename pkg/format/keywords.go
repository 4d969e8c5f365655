package format

// keywordClass is the formatting rule a keyword falls under.
type keywordClass int

const (
	inlineKeyword keywordClass = iota
	caseKeyword
	betweenKeyword
	inKeyword
	cteKeyword
	subqueryKeyword
	fromKeyword
	whereKeyword
	newlineKeyword
)

var (
	caseKeywords    = toSet("CASE", "WHEN", "THEN", "ELSE", "END")
	betweenKeywords = toSet("BETWEEN", "AND")
	cteKeywords     = toSet("WITH", "AS")

	// newlineKeywords start a new line at the current depth.
	newlineKeywords = toSet(
		"SELECT", "FROM", "WHERE", "GROUP", "ORDER", "HAVING",
		"JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS",
		"UNION", "INTERSECT", "EXCEPT", "WITH", "INSERT", "UPDATE",
		"DELETE", "MERGE", "VALUES", "SET", "INTO", "ON", "AND", "OR",
	)
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

// classifyKeyword picks the rule for an upper-cased keyword. Earlier checks win:
// CASE family, BETWEEN family, IN, CTE family, then clause keywords.
func classifyKeyword(word string, parenLevel int) keywordClass {
	switch {
	case inSet(caseKeywords, word):
		return caseKeyword
	case inSet(betweenKeywords, word):
		return betweenKeyword
	case word == "IN":
		return inKeyword
	case inSet(cteKeywords, word):
		return cteKeyword
	case word == "SELECT" && parenLevel > 0:
		return subqueryKeyword
	case word == "FROM":
		return fromKeyword
	case word == "WHERE":
		return whereKeyword
	case inSet(newlineKeywords, word):
		return newlineKeyword
	default:
		return inlineKeyword
	}
}
