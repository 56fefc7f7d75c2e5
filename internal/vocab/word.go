// internal/vocab/word.go
//
// The Word value type: a character string plus one normalized pinyin
// syllable per character.

package vocab

import (
	"fmt"
	"unicode/utf8"

	"github.com/handle-game/go-server/internal/pinyin"
)

// Word pairs a character string with its pinyin, one syllable per character.
// Pinyin entries are stored normalized (uppercase ASCII, no tone marks).
type Word struct {
	Characters string
	Pinyin     []string
}

// NewWord validates and builds a Word. A pinyin list whose length does not
// match the character count is a failed resolution, not a partial word.
func NewWord(characters string, py []string) (Word, error) {
	n := utf8.RuneCountInString(characters)
	if n == 0 {
		return Word{}, fmt.Errorf("vocab: empty word")
	}
	if len(py) != n {
		return Word{}, fmt.Errorf("vocab: %q has %d characters but %d pinyin syllables", characters, n, len(py))
	}
	norm := make([]string, len(py))
	for i, p := range py {
		norm[i] = pinyin.Normalize(p)
		if norm[i] == "" {
			return Word{}, fmt.Errorf("vocab: %q syllable %d is empty after normalization", characters, i)
		}
	}
	return Word{Characters: characters, Pinyin: norm}, nil
}

// Length is the character count (runes, not bytes).
func (w Word) Length() int { return utf8.RuneCountInString(w.Characters) }

// Runes returns the characters as individual strings, in order.
func (w Word) Runes() []string {
	out := make([]string, 0, len(w.Pinyin))
	for _, r := range w.Characters {
		out = append(out, string(r))
	}
	return out
}

// Syllables decomposes every pinyin entry into (initial, final) pairs.
func (w Word) Syllables() []pinyin.Syllable {
	out := make([]pinyin.Syllable, len(w.Pinyin))
	for i, p := range w.Pinyin {
		out[i] = pinyin.Separate(p)
	}
	return out
}
