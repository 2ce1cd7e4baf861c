package dialect

import (
	"strings"
)

// DefaultNormalizeType is a default implementation for type normalization:
// upper-case, with any length or precision suffix removed.
func DefaultNormalizeType(sqlType string) string {
	t := strings.TrimSpace(sqlType)
	if i := strings.Index(t, "("); i >= 0 {
		t = t[:i]
	}
	return strings.ToUpper(strings.TrimSpace(t))
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

const currentTimestamp = "CURRENT_TIMESTAMP"

var temporalTypes = map[string]bool{
	"DATETIME": true, "DATE": true, "TIME": true, "TIMESTAMP": true, "YEAR": true,
}

var numericTypes = map[string]bool{
	"TINYINT": true, "SMALLINT": true, "MEDIUMINT": true, "INT": true, "INTEGER": true,
	"BIGINT": true, "FLOAT": true, "DOUBLE": true, "DECIMAL": true, "NUMERIC": true,
	"DEC": true, "BOOLEAN": true, "BOOL": true,
}

// isCurrentTimestamp recognizes the spellings engines use for "now".
func isCurrentTimestamp(def string) bool {
	switch strings.ToLower(strings.TrimSpace(def)) {
	case "current_timestamp", "current_timestamp()", "now()", "getdate()",
		"sysdate", "systimestamp", "localtimestamp", "sysdatetime()":
		return true
	}
	return strings.HasPrefix(strings.ToLower(def), "current_timestamp(")
}

// quoteLiteral wraps s in single quotes unless it already is a quoted literal.
func quoteLiteral(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

// literalDefault turns an unquoted information_schema default into the SQL
// literal form the renderer expects.
func literalDefault(def, dataType string) string {
	if def == "" || strings.EqualFold(def, "NULL") {
		return ""
	}
	if isCurrentTimestamp(def) {
		return currentTimestamp
	}
	if numericTypes[dataType] {
		return def
	}
	if temporalTypes[dataType] && strings.ContainsAny(def, "()") {
		// Expression defaults other than now() are not representable
		return ""
	}
	return quoteLiteral(def)
}

// stripParens removes balanced outer parentheses: ((0)) -> 0.
func stripParens(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
