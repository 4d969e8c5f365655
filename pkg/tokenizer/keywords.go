package tokenizer

import "strings"

// T-SQL reserved keywords. Words outside this set lex as identifiers.
var keywords = toSet(
	"ADD", "ALL", "ALTER", "AND", "ANY", "AS", "ASC", "AUTHORIZATION",
	"BACKUP", "BEGIN", "BETWEEN", "BREAK", "BROWSE", "BULK", "BY",
	"CASCADE", "CASE", "CHECK", "CHECKPOINT", "CLOSE", "CLUSTERED", "COALESCE",
	"COLLATE", "COLUMN", "COMMIT", "COMPUTE", "CONSTRAINT", "CONTAINS",
	"CONTAINSTABLE", "CONTINUE", "CONVERT", "CREATE", "CROSS", "CURRENT",
	"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER", "CURSOR",
	"DATABASE", "DBCC", "DEALLOCATE", "DECLARE", "DEFAULT", "DELETE", "DENY",
	"DESC", "DISK", "DISTINCT", "DISTRIBUTED", "DOUBLE", "DROP", "DUMP",
	"ELSE", "END", "ERRLVL", "ESCAPE", "EXCEPT", "EXEC", "EXECUTE", "EXISTS",
	"EXIT", "EXTERNAL",
	"FETCH", "FILE", "FILLFACTOR", "FOR", "FOREIGN", "FREETEXT", "FREETEXTTABLE",
	"FROM", "FULL", "FUNCTION",
	"GOTO", "GRANT", "GROUP",
	"HAVING", "HOLDLOCK",
	"IDENTITY", "IDENTITY_INSERT", "IDENTITYCOL", "IF", "IN", "INDEX", "INNER",
	"INSERT", "INTERSECT", "INTO", "IS",
	"JOIN",
	"KEY", "KILL",
	"LEFT", "LIKE", "LINENO", "LOAD",
	"MERGE",
	"NATIONAL", "NOCHECK", "NONCLUSTERED", "NOT", "NULL", "NULLIF",
	"OF", "OFF", "OFFSETS", "ON", "OPEN", "OPENDATASOURCE", "OPENQUERY",
	"OPENROWSET", "OPENXML", "OPTION", "OR", "ORDER", "OUTER", "OVER",
	"PERCENT", "PIVOT", "PLAN", "PRECISION", "PRIMARY", "PRINT", "PROC",
	"PROCEDURE", "PUBLIC",
	"RAISERROR", "READ", "READTEXT", "RECONFIGURE", "REFERENCES", "REPLICATION",
	"RESTORE", "RESTRICT", "RETURN", "REVERT", "REVOKE", "RIGHT", "ROLLBACK",
	"ROWCOUNT", "ROWGUIDCOL", "RULE",
	"SAVE", "SCHEMA", "SECURITYAUDIT", "SELECT", "SEMANTICKEYPHRASETABLE",
	"SEMANTICSIMILARITYDETAILSTABLE", "SEMANTICSIMILARITYTABLE", "SESSION_USER",
	"SET", "SETUSER", "SHUTDOWN", "SOME", "STATISTICS", "SYSTEM_USER",
	"TABLE", "TABLESAMPLE", "TEXTSIZE", "THEN", "TO", "TOP", "TRAN",
	"TRANSACTION", "TRIGGER", "TRUNCATE", "TRY_CONVERT", "TSEQUAL",
	"UNION", "UNIQUE", "UNPIVOT", "UPDATE", "UPDATETEXT", "USE", "USER",
	"VALUES", "VARYING", "VIEW",
	"WAITFOR", "WHEN", "WHERE", "WHILE", "WITH", "WITHIN", "WRITETEXT",
)

// Built-in functions that are not reserved words.
var systemIdentifiers = toSet(
	"ABS", "AVG", "CAST", "CEILING", "CHARINDEX", "CHECKSUM", "CHOOSE", "CONCAT",
	"CONCAT_WS", "COUNT", "COUNT_BIG", "CUME_DIST", "DATEADD", "DATEDIFF",
	"DATEFROMPARTS", "DATENAME", "DATEPART", "DAY", "DENSE_RANK", "EOMONTH",
	"FIRST_VALUE", "FLOOR", "FORMAT", "GETDATE", "GETUTCDATE", "GREATEST", "IIF",
	"ISNULL", "ISNUMERIC", "LAG", "LAST_VALUE", "LEAD", "LEAST", "LEN", "LOWER",
	"LTRIM", "MAX", "MIN", "MONTH", "NEWID", "NTILE", "OBJECT_ID", "PATINDEX",
	"RANK", "REPLACE", "REPLICATE", "REVERSE", "ROUND", "ROW_NUMBER", "RTRIM",
	"SCOPE_IDENTITY", "SIGN", "SQRT", "STDEV", "STRING_AGG", "STRING_SPLIT",
	"STUFF", "SUBSTRING", "SUM", "SYSDATETIME", "TRIM", "TRY_CAST", "UPPER",
	"VAR", "YEAR",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsKeyword reports whether word is a reserved T-SQL keyword, ignoring case.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// IsSystemIdentifier reports whether word names a built-in function, ignoring case.
func IsSystemIdentifier(word string) bool {
	_, ok := systemIdentifiers[strings.ToUpper(word)]
	return ok
}
