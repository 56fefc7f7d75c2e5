// internal/vocab/vocab.go
//
// Static vocabulary for the game engine and resolver.
//
// Responsibilities:
//   - Load word lists (2- and 4-character), the single-character pinyin
//     table, and the polyphone table from embedded data or
//     environment-provided files.
//   - Serve lookups: words by length, polyphonic readings, reverse
//     pinyin→character search, and random word selection.
//
// Data files (one entry per line, '#' comments skipped):
//   data/words2.txt      characters + one plain pinyin per character
//   data/words4.txt      same, four-character idioms
//   data/chars.txt       single character + canonical pinyin
//   data/polyphones.txt  character + toned readings in preference order
//
// Environment variables:
//   VOCAB_WORDS2_FILE=/path/to/words2.txt
//   VOCAB_WORDS4_FILE=/path/to/words4.txt
//
// Constraints:
//   • Tables are immutable after Init and safe for concurrent reads.
//   • Initialization is run once (sync.Once).

package vocab

import (
	"bufio"
	"crypto/rand"
	"embed"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/handle-game/go-server/internal/pinyin"
)

//go:embed data/words2.txt data/words4.txt data/chars.txt data/polyphones.txt
var dataFS embed.FS

var (
	initOnce   sync.Once
	initialErr error

	words2 []Word
	words4 []Word

	singleChar map[string]string   // character → canonical normalized pinyin
	polyphones map[string][]string // character → normalized readings, preference order
)

// ErrExhausted is returned by RandomWord when every word of the requested
// length is excluded.
var ErrExhausted = errors.New("vocab: word pool exhausted")

// Init loads all vocabulary tables exactly once.
func Init() error {
	initOnce.Do(func() {
		words2, initialErr = loadWordList("data/words2.txt", os.Getenv("VOCAB_WORDS2_FILE"), 2)
		if initialErr != nil {
			return
		}
		words4, initialErr = loadWordList("data/words4.txt", os.Getenv("VOCAB_WORDS4_FILE"), 4)
		if initialErr != nil {
			return
		}
		singleChar, initialErr = loadCharTable("data/chars.txt")
		if initialErr != nil {
			return
		}
		polyphones, initialErr = loadPolyphones("data/polyphones.txt")
		if initialErr != nil {
			return
		}
		if len(words2) == 0 {
			initialErr = errors.New("vocab: two-character word list is empty")
		}
	})
	return initialErr
}

// loadWordList reads a word list from the override path if set, otherwise
// from the embedded asset. Entries with the wrong character count or a
// mismatched pinyin count are rejected as data errors.
func loadWordList(embedded, override string, length int) ([]Word, error) {
	r, name, err := openData(embedded, override)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out []Word
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := splitLine(sc.Text())
		if fields == nil {
			continue
		}
		w, err := NewWord(fields[0], fields[1:])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if w.Length() != length {
			return nil, fmt.Errorf("%s: %q is not a %d-character word", name, fields[0], length)
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// loadCharTable reads the single-character canonical pinyin table.
func loadCharTable(embedded string) (map[string]string, error) {
	r, name, err := openData(embedded, "")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := splitLine(sc.Text())
		if fields == nil {
			continue
		}
		if len(fields) != 2 || utf8.RuneCountInString(fields[0]) != 1 {
			return nil, fmt.Errorf("%s: bad entry %q", name, sc.Text())
		}
		m[fields[0]] = pinyin.Normalize(fields[1])
	}
	return m, sc.Err()
}

// loadPolyphones reads the polyphone table. Readings are stored toned in the
// data file and normalized here, preserving preference order.
func loadPolyphones(embedded string) (map[string][]string, error) {
	r, name, err := openData(embedded, "")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	m := make(map[string][]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := splitLine(sc.Text())
		if fields == nil {
			continue
		}
		if len(fields) < 2 || utf8.RuneCountInString(fields[0]) != 1 {
			return nil, fmt.Errorf("%s: bad entry %q", name, sc.Text())
		}
		readings := make([]string, 0, len(fields)-1)
		for _, f := range fields[1:] {
			readings = append(readings, pinyin.Normalize(f))
		}
		m[fields[0]] = readings
	}
	return m, sc.Err()
}

// openData opens the override file when given, else the embedded asset.
func openData(embedded, override string) (io.ReadCloser, string, error) {
	if override != "" {
		f, err := os.Open(override)
		return f, override, err
	}
	f, err := dataFS.Open(embedded)
	return f, embedded, err
}

// splitLine tokenizes a data line, returning nil for blanks and comments.
func splitLine(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	return strings.Fields(line)
}

// WordsOfLength returns the configured list for the given character count.
// Lengths other than 4 fall back to the two-character list; this mirrors
// long-standing behavior and is pinned by a test rather than corrected.
func WordsOfLength(n int) []Word {
	if err := Init(); err != nil {
		return nil
	}
	if n == 4 {
		return words4
	}
	return words2
}

// RandomWord picks a uniformly random word of the given length, skipping
// entries whose characters appear in exclude. Returns ErrExhausted when
// nothing remains.
func RandomWord(length int, exclude map[string]struct{}) (Word, error) {
	pool := WordsOfLength(length)
	candidates := make([]Word, 0, len(pool))
	for _, w := range pool {
		if _, used := exclude[w.Characters]; !used {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return Word{}, ErrExhausted
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return Word{}, err
	}
	return candidates[nBig.Int64()], nil
}

// Stats returns the sizes of the loaded tables:
// (2-char words, 4-char words, single chars, polyphones).
func Stats() (int, int, int, int) {
	_ = Init()
	return len(words2), len(words4), len(singleChar), len(polyphones)
}
