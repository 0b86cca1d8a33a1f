package resolve

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// Fold lower-cases and trims a raw name for exact case-insensitive matching.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize reduces a name to its comparable form: diacritics stripped,
// lower-cased, everything except letters and digits removed.
// Example: "Hôpital Saint-Luc " -> "hopitalsaintluc"
func Normalize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return nonAlnum.ReplaceAllString(strings.ToLower(stripped), "")
}
