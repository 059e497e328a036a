// Package match implements the free-text location matching used to filter
// fare records.
//
// Matching is a literal, case-insensitive substring test against a record's
// city and airport-code fields. strings.Contains keeps the query literal:
// characters that carry meaning in a pattern dialect (parentheses, periods)
// only ever match their literal occurrences.
package match

import "strings"

// Normalize prepares free-text location input for matching: surrounding
// whitespace is trimmed and the text is lower-cased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Any reports whether query is a substring of the record's city or
// airport-code field. The query must already be normalized (see Normalize);
// a blank query matches nothing.
func Any(query, city, airport string) bool {
	if query == "" {
		return false
	}
	return strings.Contains(Normalize(city), query) ||
		strings.Contains(Normalize(airport), query)
}
