// Package summon detects embedded stat requests in comment bodies and
// tokenizes the requested name.
//
// A request is a double-bracketed, non-nested span like [[Rod Brind'Amour]].
// Only the first span per comment is honored. Tokenization keeps apostrophes;
// they are stripped later when building the suggest-index match key, which is
// also where diacritics are folded away
package summon

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pattern matches a double-bracketed span with no nested brackets
var pattern = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// Match returns the first bracketed request in body, trimmed.
// ok is false when no span is present or the span is only whitespace
func Match(body string) (string, bool) {
	m := pattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	req := strings.TrimSpace(m[1])
	if req == "" {
		return "", false
	}
	return req, true
}

// ParseName splits a request into a first-name token and a last-name token.
//
// The first whitespace-separated token is lower-cased as-is. The remaining
// tokens are joined, lower-cased, and stripped of periods and hyphens.
// Apostrophes are retained here; typographic apostrophes are folded to the
// ASCII form so both spellings of [[Rod Brind’Amour]] tokenize identically.
// ok is false when there are fewer than two tokens
func ParseName(request string) (first, last string, ok bool) {
	fields := strings.Fields(request)
	if len(fields) < 2 {
		return "", "", false
	}

	first = strings.ToLower(fields[0])

	r := strings.NewReplacer(".", "", "-", "", "’", "'")
	last = r.Replace(strings.ToLower(strings.Join(fields[1:], "")))
	if first == "" || last == "" {
		return "", "", false
	}
	return first, last, true
}

// foldMarks strips combining marks so accented names match the unaccented
// suggest index ("höglander" -> "hoglander")
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// MatchKey builds the compound key the identity provider indexes suggestions
// under: "first-last" with apostrophes stripped and diacritics folded
func MatchKey(first, last string) string {
	key := first + "-" + strings.ReplaceAll(last, "'", "")
	if folded, _, err := transform.String(foldMarks, key); err == nil {
		key = folded
	}
	return key
}

// QueryToken is the last-name form sent to the identity provider:
// apostrophes stripped and diacritics folded, same rules as MatchKey
func QueryToken(last string) string {
	q := strings.ReplaceAll(last, "'", "")
	if folded, _, err := transform.String(foldMarks, q); err == nil {
		q = folded
	}
	return q
}
