// Package sqlstmt does the light lexical inspection of SQL text needed to
// route change notifications: which tables a statement references and
// whether it writes.
package sqlstmt

import (
	"regexp"
	"strings"
)

var (
	lineComment  = regexp.MustCompile(`--[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	quotedString = regexp.MustCompile(`'(?:[^']|'')*'`)

	// Identifiers that follow a table introducing keyword, optionally schema
	// qualified and quoted.
	tableRef = regexp.MustCompile(`(?i)\b(?:from|join|into|update|table(?:\s+if\s+(?:not\s+)?exists)?)\s+((?:["` + "`" + `]?[\w]+["` + "`" + `]?\.)?["` + "`" + `]?[\w]+["` + "`" + `]?)`)

	firstWord = regexp.MustCompile(`^\s*\(*\s*([A-Za-z]+)`)
	anyWrite  = regexp.MustCompile(`(?i)\b(?:INSERT|UPDATE|DELETE|REPLACE|MERGE)\b`)
)

var writeVerbs = map[string]bool{
	"INSERT":   true,
	"UPDATE":   true,
	"DELETE":   true,
	"REPLACE":  true,
	"UPSERT":   true,
	"MERGE":    true,
	"CREATE":   true,
	"DROP":     true,
	"ALTER":    true,
	"TRUNCATE": true,
	"VACUUM":   true,
	"REINDEX":  true,
}

// strip removes comments and string literals so keywords inside them are
// not mistaken for structure.
func strip(sql string) string {
	sql = blockComment.ReplaceAllString(sql, " ")
	sql = lineComment.ReplaceAllString(sql, " ")
	return quotedString.ReplaceAllString(sql, "''")
}

// Tables returns the lower-cased, de-duplicated table names referenced by
// the statement, without schema qualification.
func Tables(sql string) []string {
	matches := tableRef.FindAllStringSubmatch(strip(sql), -1)
	seen := make(map[string]bool, len(matches))
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		name = strings.ToLower(strings.Trim(name, "\"`"))
		if name == "" || seen[name] || isKeyword(name) {
			continue
		}
		seen[name] = true
		tables = append(tables, name)
	}
	return tables
}

// IsWrite reports whether any statement in sql modifies data or schema.
// A WITH statement counts as a write when a data modifying verb appears
// anywhere in it.
func IsWrite(sql string) bool {
	for _, stmt := range strings.Split(strip(sql), ";") {
		m := firstWord.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		verb := strings.ToUpper(m[1])
		if writeVerbs[verb] {
			return true
		}
		if verb == "WITH" && anyWrite.MatchString(stmt) {
			return true
		}
	}
	return false
}

func isKeyword(name string) bool {
	switch name {
	case "select", "set", "lateral", "only", "unnest", "values":
		return true
	}
	return false
}
