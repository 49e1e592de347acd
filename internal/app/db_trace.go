package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLen = 512

var dbQueryWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace and caps the length of SQL
// recorded on spans, so multi-line querybuilder output stays readable in the
// trace UI.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := dbQueryWhitespace.ReplaceAllString(query, " ")
	if len(flat) <= maxTracedQueryLen {
		return flat
	}

	return flat[:maxTracedQueryLen] + "..."
}
