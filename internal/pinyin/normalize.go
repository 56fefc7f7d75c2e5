// internal/pinyin/normalize.go
//
// Diacritic normalization and token validation for pinyin strings.
// Toned vowels map to their bare ASCII counterparts (the ü family maps to
// "v"); everything outside ASCII letters is stripped; the result is
// uppercased. Applied to data sourced from the polyphone table (which
// stores toned readings) and to remote lookup output, so the scorer never
// sees tone marks.

package pinyin

import (
	"regexp"
	"strings"
)

// toneless maps every toned vowel to its bare ASCII letter.
var toneless = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e', 'ê': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'v', 'ǘ': 'v', 'ǚ': 'v', 'ǜ': 'v', 'ü': 'v',
	'ń': 'n', 'ň': 'n', 'ǹ': 'n',
	'ḿ': 'm',
}

// Normalize converts a pinyin string (possibly toned) into the canonical
// uppercase ASCII form used for matching: tone marks removed, ü → V, any
// remaining non-letter dropped.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if t, ok := toneless[r]; ok {
			r = t
		}
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

var tokenRe = regexp.MustCompile(`^[A-Z]+$`)

// ValidToken reports whether s is a plausible normalized syllable token:
// uppercase ASCII letters only, 1–6 characters.
func ValidToken(s string) bool {
	return len(s) >= 1 && len(s) <= 6 && tokenRe.MatchString(s)
}
