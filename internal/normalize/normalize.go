// Package normalize canonicalizes stop names and transport modes for
// comparison. Name keys are case, accent, space, and hyphen insensitive so
// "Skøyen" and "skoyen" address the same cache entry.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// ø and æ carry no combining mark under NFD, so mark stripping alone leaves
// them intact. They fold explicitly so "skoyen" finds "Skøyen".
var foldLetters = strings.NewReplacer("ø", "o", "æ", "ae")

var dropSeparators = strings.NewReplacer("-", "", " ", "")

// Key returns the canonical comparison key for a place name: lowercased,
// trimmed, Unicode-decomposed with combining marks removed, then stripped of
// hyphens and spaces. Idempotent.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return dropSeparators.Replace(foldLetters.Replace(s))
}

// Mode folds the transport mode vocabulary of the journey planner down to the
// canonical filter set: bus, metro, tram, train, ferry, air. Unknown modes
// pass through lowercased.
func Mode(raw string) string {
	switch m := strings.ToLower(strings.TrimSpace(raw)); m {
	case "rail", "regionaltrain", "longdistancetrain", "airportexpress", "coach":
		return "train"
	case "water", "watertransport":
		return "ferry"
	case "helicopter":
		return "air"
	default:
		return m
	}
}
