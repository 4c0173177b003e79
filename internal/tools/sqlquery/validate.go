// Package sqlquery implements the read-only SQL tool handlers: SELECT
// execution against the managed MySQL database and schema introspection.
package sqlquery

import (
	"regexp"
	"strings"
)

var (
	lineComment  = regexp.MustCompile(`(?m)--.*$`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// dangerousKeywords must not appear anywhere in a read-only query, even as
// a substring. This rejects some harmless queries.
var dangerousKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "CREATE", "ALTER",
	"TRUNCATE", "REPLACE", "MERGE", "CALL", "EXEC", "EXECUTE",
	"LOAD", "OUTFILE", "DUMPFILE",
}

// ValidateSelect reports whether the query is a safe single SELECT
// statement. Comments are stripped and whitespace normalized before
// checking.
func ValidateSelect(query string) bool {
	clean := lineComment.ReplaceAllString(query, "")
	clean = blockComment.ReplaceAllString(clean, "")
	clean = strings.ToUpper(strings.Join(strings.Fields(clean), " "))

	if !strings.HasPrefix(clean, "SELECT") {
		return false
	}

	for _, keyword := range dangerousKeywords {
		if strings.Contains(clean, keyword) {
			return false
		}
	}
	return true
}
