package dataset

import (
	"regexp"
	"strings"
)

var (
	levelQualifierRe = regexp.MustCompile(`(?i)\b(primary|secondary)\s+school\b`)
	nonWordRe        = regexp.MustCompile(`[^\w\s]`)
)

// CleanQuery normalizes a free-text query before it reaches the datastore.
// Level qualifiers are collapsed to the bare level word and punctuation is
// dropped; "St. Andrew's Secondary School" becomes "St Andrews Secondary".
// The datastore rejects some punctuated queries with a 409, hence the strip.
func CleanQuery(raw string) string {
	cleaned := levelQualifierRe.ReplaceAllString(raw, "$1")
	cleaned = nonWordRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// usableQuery reports whether a cleaned query is long enough to be worth an
// upstream call. Shorter queries short-circuit to an empty collection so the
// datastore is not hit with zero-yield lookups.
func usableQuery(cleaned string) bool {
	return len(cleaned) >= 2
}
