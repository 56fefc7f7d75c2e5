// internal/resolve/resolver.go
//
// Pinyin resolution with a layered fallback chain:
//   cache → remote proxy (if configured) → built-in vocabulary → absent.
//
// A Resolver is constructed once at process start and passed by reference
// to its consumers; its caches and the used-word exclusion set are owned
// state, not package globals.
//
// Failure policy: remote trouble is logged with its precise reason
// (transport/status/decode/payload) and then swallowed — a lookup either
// yields a result or reports absence, never an error. Absence is the signal.

package resolve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/handle-game/go-server/internal/cache"
	"github.com/handle-game/go-server/internal/pinyin"
	"github.com/handle-game/go-server/internal/vocab"
)

const hintCount = 3

// Resolver resolves character strings to pinyin, picks target words, and
// fetches hints. Safe for concurrent use.
type Resolver struct {
	proxy *proxyClient // nil when no remote service is configured
	cache cache.Cache
	log   zerolog.Logger

	hintsMu sync.Mutex
	hints   map[string][]string

	usedMu sync.Mutex
	used   map[string]struct{} // words already served as targets
}

// New builds a Resolver. An empty proxyURL disables every remote call; the
// resolver then runs purely on the built-in vocabulary.
func New(proxyURL string, c cache.Cache, log zerolog.Logger) *Resolver {
	r := &Resolver{
		cache: c,
		log:   log.With().Str("component", "resolver").Logger(),
		hints: make(map[string][]string),
		used:  make(map[string]struct{}),
	}
	if proxyURL != "" {
		r.proxy = newProxyClient(proxyURL)
	}
	return r
}

// LookupPinyin resolves one normalized pinyin syllable per character, or
// reports absence. Results are cached keyed by the character string.
func (r *Resolver) LookupPinyin(ctx context.Context, characters string) ([]string, bool) {
	n := utf8.RuneCountInString(characters)
	if n == 0 {
		return nil, false
	}

	if v, ok, err := r.cache.Get(ctx, characters); err != nil {
		r.log.Warn().Err(err).Str("word", characters).Msg("cache read failed, treating as miss")
	} else if ok {
		return v, true
	}

	var result []string
	if r.proxy != nil {
		content, err := r.proxy.Pinyin(ctx, characters)
		if err != nil {
			r.log.Warn().Err(err).Str("word", characters).Msg("proxy pinyin lookup failed")
		} else if tokens, ok := parsePinyinTokens(content, n); ok {
			result = tokens
		} else {
			r.log.Warn().Str("word", characters).Str("content", content).
				Msg("proxy pinyin rejected: token count mismatch")
		}
	}

	if result == nil {
		if builtin, ok := vocab.BuiltInLookup(characters); ok {
			result = builtin
		}
	}
	if result == nil {
		return nil, false
	}

	if err := r.cache.Put(ctx, characters, result); err != nil {
		r.log.Warn().Err(err).Str("word", characters).Msg("cache write failed")
	}
	return result, true
}

// RandomWord picks the next target word of the given length, avoiding words
// already served until the pool is exhausted, then recycling. The proxy is
// tried first; its word must survive CJK filtering, length and exclusion
// checks, and pinyin resolution, or the built-in list takes over.
func (r *Resolver) RandomWord(ctx context.Context, length int) (vocab.Word, error) {
	exclude := r.usedSnapshot()

	if r.proxy != nil {
		if w, ok := r.randomFromProxy(ctx, length, exclude); ok {
			r.markUsed(w.Characters)
			return w, nil
		}
	}

	w, err := vocab.RandomWord(length, exclude)
	if errors.Is(err, vocab.ErrExhausted) {
		// Every word has been served once; recycle the pool.
		r.log.Info().Int("length", length).Msg("word pool exhausted, recycling")
		r.resetUsed()
		w, err = vocab.RandomWord(length, nil)
	}
	if err != nil {
		return vocab.Word{}, err
	}
	r.markUsed(w.Characters)
	return w, nil
}

// randomFromProxy fetches one candidate from the proxy and vets it.
func (r *Resolver) randomFromProxy(ctx context.Context, length int, exclude map[string]struct{}) (vocab.Word, bool) {
	raw, err := r.proxy.RandomWord(ctx, length, mapKeys(exclude))
	if err != nil {
		r.log.Warn().Err(err).Int("length", length).Msg("proxy random word failed")
		return vocab.Word{}, false
	}

	chars := hanOnly(raw)
	if utf8.RuneCountInString(chars) != length {
		r.log.Warn().Str("raw", raw).Int("length", length).Msg("proxy word rejected: wrong length")
		return vocab.Word{}, false
	}
	if _, used := exclude[chars]; used {
		r.log.Warn().Str("word", chars).Msg("proxy word rejected: already served")
		return vocab.Word{}, false
	}

	py, ok := r.LookupPinyin(ctx, chars)
	if !ok {
		r.log.Warn().Str("word", chars).Msg("proxy word rejected: pinyin unresolved")
		return vocab.Word{}, false
	}
	w, err := vocab.NewWord(chars, py)
	if err != nil {
		r.log.Warn().Err(err).Str("word", chars).Msg("proxy word rejected")
		return vocab.Word{}, false
	}
	return w, true
}

// Hints returns up to three hint sentences for a word, or nil when the
// proxy is absent or unable to produce enough. Results are cached.
func (r *Resolver) Hints(ctx context.Context, characters string, isIdiom bool) []string {
	r.hintsMu.Lock()
	cached, ok := r.hints[characters]
	r.hintsMu.Unlock()
	if ok {
		return cached
	}
	if r.proxy == nil {
		return nil
	}

	hs, err := r.proxy.Hints(ctx, characters, isIdiom)
	if err != nil {
		r.log.Warn().Err(err).Str("word", characters).Msg("proxy hints failed")
		return nil
	}
	if len(hs) < hintCount {
		r.log.Warn().Str("word", characters).Int("got", len(hs)).Msg("proxy hints rejected: too few")
		return nil
	}
	hs = hs[:hintCount]

	r.hintsMu.Lock()
	r.hints[characters] = hs
	r.hintsMu.Unlock()
	return hs
}

// ----------------------------- used-word set -------------------------------

func (r *Resolver) markUsed(word string) {
	r.usedMu.Lock()
	r.used[word] = struct{}{}
	r.usedMu.Unlock()
}

func (r *Resolver) usedSnapshot() map[string]struct{} {
	r.usedMu.Lock()
	defer r.usedMu.Unlock()
	out := make(map[string]struct{}, len(r.used))
	for k := range r.used {
		out[k] = struct{}{}
	}
	return out
}

func (r *Resolver) resetUsed() {
	r.usedMu.Lock()
	r.used = make(map[string]struct{})
	r.usedMu.Unlock()
}

// ------------------------------- helpers -----------------------------------

// parsePinyinTokens cleans a free-text proxy response into normalized
// syllable tokens. The result is accepted only when the surviving token
// count equals the character count; anything else is a proxy failure.
func parsePinyinTokens(content string, want int) ([]string, bool) {
	cleaned := strings.Map(func(ch rune) rune {
		if (ch >= 'A' && ch <= 'Z') || unicode.IsSpace(ch) {
			return ch
		}
		return -1
	}, strings.ToUpper(content))

	var tokens []string
	for _, f := range strings.Fields(cleaned) {
		if pinyin.ValidToken(f) {
			tokens = append(tokens, f)
		}
	}
	if len(tokens) != want {
		return nil, false
	}
	return tokens, true
}

// hanOnly retains only CJK codepoints.
func hanOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func mapKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
