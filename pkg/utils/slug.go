package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugUnsafe = regexp.MustCompile("[^a-z0-9]+")

// GenerateSlug turns a title into a lowercase url-safe slug. Accented
// characters are folded to their base letters before anything non
// alphanumeric is collapsed into hyphens.
func GenerateSlug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = strings.ToLower(text)
	text = slugUnsafe.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}
