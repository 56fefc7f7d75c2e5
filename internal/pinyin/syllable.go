// internal/pinyin/syllable.go
//
// Syllable decomposition for romanized Mandarin.
// Responsibilities:
//   - Split a pinyin token into its initial (声母) and final (韵母).
//   - Reassemble a syllable from its parts (Combine).
//   - Produce the display form with Ü substitution rules.
//
// Notes:
//   - Separate is a total function: it performs structural splitting only
//     and never validates. Callers reject garbage tokens before use.
//   - Multi-letter initials (ZH/CH/SH) are listed before their single-letter
//     sub-prefixes so the first prefix match is always the longest one.

package pinyin

import "strings"

// Syllable is an immutable (initial, final) pair. Both fields are uppercase
// ASCII with no tone marks; the ü vowel is carried as "V". The zero-initial
// case is represented by an empty Initial.
type Syllable struct {
	Initial string
	Final   string
}

// New builds a Syllable, uppercasing and trimming both parts so that
// equality between syllables is case-insensitive.
func New(initial, final string) Syllable {
	return Syllable{
		Initial: strings.ToUpper(strings.TrimSpace(initial)),
		Final:   strings.ToUpper(strings.TrimSpace(final)),
	}
}

// Separate splits a romanized syllable into (initial, final).
//
// The token is uppercased and trimmed, then matched against the ordered
// initials table: the first candidate that is a prefix wins. The remainder
// is the final. If no initial matches, the whole token is the final
// (zero-initial syllables such as "AN", "ER").
func Separate(token string) Syllable {
	t := strings.ToUpper(strings.TrimSpace(token))
	for _, ini := range Initials {
		if strings.HasPrefix(t, ini) {
			return Syllable{Initial: ini, Final: t[len(ini):]}
		}
	}
	return Syllable{Initial: "", Final: t}
}

// Combine reassembles a lowercase syllable string from its parts.
// Used for reconstruction and tests, not for scoring.
func Combine(initial, final string) string {
	return strings.ToLower(initial + final)
}

// String returns the plain uppercase concatenation (no display rules).
func (s Syllable) String() string {
	return s.Initial + s.Final
}

// Display renders the syllable for presentation: "V" becomes "Ü", and under
// the initials Y/J/Q/X the bare U vowel (and the compound finals UE/UN/UAN)
// is promoted to Ü. This is a presentation rule only; matching always uses
// the raw Initial/Final values.
func (s Syllable) Display() string {
	f := strings.ReplaceAll(s.Final, "V", "Ü")
	switch s.Initial {
	case "Y", "J", "Q", "X":
		switch f {
		case "U":
			f = "Ü"
		case "UE":
			f = "ÜE"
		case "UN":
			f = "ÜN"
		case "UAN":
			f = "ÜAN"
		}
	}
	return s.Initial + f
}
