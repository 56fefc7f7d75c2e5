// internal/vocab/lookup.go
//
// Lookup primitives consumed by the pinyin resolver.
//
// BuiltInLookup resolves each character by priority:
//   1. single-character canonical table
//   2. first occurrence in a word list (2-char list scanned before 4-char),
//      taking that word's recorded pinyin at the matching position
//   3. first polyphonic reading, if registered
//   4. failure — which fails the whole lookup (no partial results)
//
// The priority order is a heuristic, not a guaranteed-correct linguistic
// resolution for ambiguous characters; it is kept as-is deliberately.

package vocab

// PinyinOptions returns the normalized polyphonic readings for a character
// in preference order, or nil if the character is not registered.
func PinyinOptions(character string) []string {
	if err := Init(); err != nil {
		return nil
	}
	readings := polyphones[character]
	if len(readings) == 0 {
		return nil
	}
	out := make([]string, len(readings))
	copy(out, readings)
	return out
}

// IsPolyphonic reports whether the character has multiple registered readings.
func IsPolyphonic(character string) bool {
	if err := Init(); err != nil {
		return false
	}
	return len(polyphones[character]) > 1
}

// CandidatesForPinyin returns every character across both word lists whose
// recorded pinyin equals the given normalized syllable. Hint/debug tooling
// only — scoring never consults this.
func CandidatesForPinyin(pinyinUpper string) map[string]struct{} {
	if err := Init(); err != nil {
		return nil
	}
	out := make(map[string]struct{})
	for _, list := range [][]Word{words2, words4} {
		for _, w := range list {
			runes := w.Runes()
			for i, p := range w.Pinyin {
				if p == pinyinUpper {
					out[runes[i]] = struct{}{}
				}
			}
		}
	}
	return out
}

// BuiltInLookup resolves pinyin for every character of the input, or reports
// failure. A single unresolvable character fails the entire lookup.
func BuiltInLookup(characters string) ([]string, bool) {
	if err := Init(); err != nil {
		return nil, false
	}
	var out []string
	for _, r := range characters {
		p, ok := lookupChar(string(r))
		if !ok {
			return nil, false
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// lookupChar resolves one character through the priority chain.
func lookupChar(ch string) (string, bool) {
	if p, ok := singleChar[ch]; ok {
		return p, true
	}
	for _, list := range [][]Word{words2, words4} {
		for _, w := range list {
			for i, r := range w.Runes() {
				if r == ch {
					return w.Pinyin[i], true
				}
			}
		}
	}
	if readings := polyphones[ch]; len(readings) > 0 {
		return readings[0], true
	}
	return "", false
}
