// internal/game/engine.go
//
// Guess scoring and session state transitions.
// Responsibilities:
//   - Create new sessions with a target word and guess budget.
//   - Validate and apply guesses; track playing → won/lost transitions.
//   - Score guesses on three independent channels (character, pinyin
//     initial, pinyin final), each with the classic two-pass
//     exact-then-present algorithm over a multiset of target values.
//
// Notes:
//   - Channels are scored separately: a character can be correct while its
//     reading is wrong (the polyphonic-character trap), and such a guess is
//     not a win.
//   - The character channel is lenient in its second pass: a glyph that
//     appears anywhere in the target is still "present" even when every
//     occurrence was already consumed. Pinyin channels use strict
//     consumption only.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/handle-game/go-server/internal/vocab"
)

const defaultMaxGuesses = 6

// Rejection signals returned by SubmitGuess. Neither mutates the session.
var (
	ErrGameOver       = errors.New("game: session already terminated")
	ErrLengthMismatch = errors.New("game: guess length does not match target")
)

// NewSession constructs a session around a resolved target word.
// maxGuesses <= 0 selects the default budget of 6.
func NewSession(target vocab.Word, maxGuesses int) *Session {
	if maxGuesses <= 0 {
		maxGuesses = defaultMaxGuesses
	}
	return &Session{
		ID:         randomID(),
		Target:     target,
		MaxGuesses: maxGuesses,
		Results:    []GuessResult{},
	}
}

// SubmitGuess validates, scores, and records a guess.
//
// Validation rules:
//   - The session must not be terminated (ErrGameOver).
//   - The guess must have the target's character count (ErrLengthMismatch).
//
// State transitions:
//   - Fully correct guess → Over, Won.
//   - Budget exhausted    → Over (loss).
func (s *Session) SubmitGuess(guess vocab.Word) (GuessResult, error) {
	if s.Over {
		return GuessResult{}, ErrGameOver
	}
	if guess.Length() != s.Target.Length() {
		return GuessResult{}, ErrLengthMismatch
	}

	res := Score(s.Target, guess)
	s.Results = append(s.Results, res)

	if res.Correct {
		s.Over, s.Won = true, true
	} else if len(s.Results) >= s.MaxGuesses {
		s.Over = true
	}
	return res, nil
}

// State reports a coarse string representation of the session state.
func (s *Session) State() string {
	if s.Over {
		if s.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Remaining is the number of guesses left in the budget.
func (s *Session) Remaining() int { return s.MaxGuesses - len(s.Results) }

// Score compares a guess against the target and produces the per-position
// three-channel result.
//
// The session rejects length mismatches before calling; a mismatch reaching
// this point is a programming-contract violation and panics rather than
// silently producing wrong results.
func Score(target, guess vocab.Word) GuessResult {
	if guess.Length() != target.Length() {
		panic(fmt.Sprintf("game: Score called with %d-char guess against %d-char target",
			guess.Length(), target.Length()))
	}

	tChars, gChars := target.Runes(), guess.Runes()
	tSyl, gSyl := target.Syllables(), guess.Syllables()
	n := len(gChars)

	tInitials := make([]string, n)
	gInitials := make([]string, n)
	tFinals := make([]string, n)
	gFinals := make([]string, n)
	for i := 0; i < n; i++ {
		tInitials[i], gInitials[i] = tSyl[i].Initial, gSyl[i].Initial
		tFinals[i], gFinals[i] = tSyl[i].Final, gSyl[i].Final
	}

	charStatus := matchChannel(tChars, gChars)
	iniStatus := matchChannel(tInitials, gInitials)
	finStatus := matchChannel(tFinals, gFinals)

	// Character-channel leniency: a glyph present anywhere in the target is
	// reported present even when the strict pass consumed every occurrence.
	// Acknowledges duplicated glyphs (e.g. polyphonic pairs like 行行) that
	// the player can see are in the word.
	for i := 0; i < n; i++ {
		if charStatus[i] == StatusAbsent && containsValue(tChars, gChars[i]) {
			charStatus[i] = StatusPresent
		}
	}

	matches := make([]SyllableMatch, n)
	correct := true
	for i := 0; i < n; i++ {
		m := SyllableMatch{
			Character:       gChars[i],
			Syllable:        gSyl[i],
			CharacterStatus: charStatus[i],
			InitialStatus:   iniStatus[i],
			FinalStatus:     finStatus[i],
		}
		m.PolyphonicMismatch = m.CharacterStatus == StatusPresent &&
			(m.InitialStatus != StatusCorrect || m.FinalStatus != StatusCorrect)
		if m.CharacterStatus != StatusCorrect ||
			m.InitialStatus != StatusCorrect ||
			m.FinalStatus != StatusCorrect {
			correct = false
		}
		matches[i] = m
	}

	return GuessResult{Word: guess, Matches: matches, Correct: correct}
}

// matchChannel runs the two-pass exact-then-present algorithm over one
// channel's values.
//
// Pass 1 marks exact matches and consumes their target positions. Pass 2
// scans the remaining target positions in ascending index order for each
// unmatched guess value, consuming the first available occurrence (multiset
// semantics — each target occurrence satisfies at most one guess position).
// The ascending scan order is the observable tie-break when the target
// repeats a value.
func matchChannel(target, guess []string) []Status {
	n := len(guess)
	res := make([]Status, n)
	consumed := make([]bool, n)

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = StatusCorrect
			consumed[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == StatusCorrect {
			continue
		}
		res[i] = StatusAbsent
		for j := 0; j < n; j++ {
			if !consumed[j] && target[j] == guess[i] {
				res[i] = StatusPresent
				consumed[j] = true
				break
			}
		}
	}
	return res
}

// containsValue reports whether v occurs anywhere in vals.
func containsValue(vals []string, v string) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
