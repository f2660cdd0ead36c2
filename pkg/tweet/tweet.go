// Package tweet parses tweet URLs. Validation is purely syntactic: it
// never checks that the link resolves or that the post still exists.
package tweet

import "regexp"

// Matches twitter.com or x.com, an author segment, and a numeric status id.
var statusRegex = regexp.MustCompile(`(?:twitter\.com|x\.com)/\w+/status/(\d+)`)

// ExtractID returns the numeric status identifier from a tweet URL, or
// "" when the URL does not look like a tweet link. Pure and total; the
// caller decides how to present invalid entries.
func ExtractID(url string) string {
	if url == "" {
		return ""
	}
	m := statusRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// Valid reports whether the URL carries an extractable status id.
func Valid(url string) bool {
	return ExtractID(url) != ""
}
