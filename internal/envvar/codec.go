package envvar

import (
	"os"
	"strings"
)

// NoDelimiter means a value is treated as a single string.
const NoDelimiter rune = 0

// wellKnownLists are variables whose delimiter is always the path list separator.
var wellKnownLists = []string{"Path", "PATHEXT", "PSModulePath"}

// WellKnownDelimiter reports the forced delimiter for list-type variables such
// as Path. Windows variable names are case-insensitive, so PATH matches too.
func WellKnownDelimiter(name string) (rune, bool) {
	for _, known := range wellKnownLists {
		if strings.EqualFold(name, known) {
			return os.PathListSeparator, true
		}
	}
	return NoDelimiter, false
}

// EffectiveDelimiter returns the delimiter in effect for name: the forced
// separator for well-known names, otherwise explicit.
func EffectiveDelimiter(name string, explicit rune) rune {
	if d, ok := WellKnownDelimiter(name); ok {
		return d
	}
	return explicit
}

// Split decodes a stored value into its segments. Empty segments are kept. With
// NoDelimiter the result is a one-element list holding s.
func Split(s string, delim rune) []string {
	if delim == NoDelimiter {
		return []string{s}
	}
	return strings.Split(s, string(delim))
}

// Join encodes segments into a single stored value.
func Join(segments []string, delim rune) string {
	if delim == NoDelimiter {
		return strings.Join(segments, "")
	}
	return strings.Join(segments, string(delim))
}

// Normalize cleans up delimiter usage in s:
//
//  1. runs of two or more delimiters collapse into one
//  2. whitespace (including newlines and tabs) around a delimiter is removed
//  3. a leading delimiter is stripped
//  4. a trailing delimiter is stripped
//  5. surrounding whitespace is trimmed
//
// Delimiters separated only by whitespace count as a run, so the result never
// holds an empty segment and Normalize is idempotent.
func Normalize(s string, delim rune) string {
	if delim == NoDelimiter {
		return strings.TrimSpace(s)
	}
	segments := strings.Split(s, string(delim))
	kept := segments[:0]
	for _, seg := range segments {
		if seg = strings.TrimSpace(seg); seg != "" {
			kept = append(kept, seg)
		}
	}
	return strings.Join(kept, string(delim))
}
