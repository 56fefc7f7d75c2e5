// internal/game/types.go
//
// Core type definitions for the guess scorer and game session.
// Defines:
//   - Status: per-channel result of a guess (correct/present/absent).
//   - SyllableMatch: the three-channel outcome for one position.
//   - GuessResult: the full outcome of one submitted guess.
//   - Session: state for a single in-progress or finished game.

package game

import (
	"github.com/handle-game/go-server/internal/pinyin"
	"github.com/handle-game/go-server/internal/vocab"
)

// Status is the evaluation result for one channel at one position.
// Possible values:
//   - "correct": the value matches at this exact position.
//   - "present": the value exists elsewhere in the target.
//   - "absent":  the value does not exist in the target (for this channel).
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// SyllableMatch is the per-position outcome of one guess: the guessed
// character and syllable plus three independently computed statuses.
//
// PolyphonicMismatch is a derived flag for the UI: the character exists in
// the target (present, not placed), yet its reading here is not fully
// correct — "right character somewhere, wrong reading here". It never fires
// when the character status is correct.
type SyllableMatch struct {
	Character          string          `json:"character"`
	Syllable           pinyin.Syllable `json:"-"`
	CharacterStatus    Status          `json:"characterStatus"`
	InitialStatus      Status          `json:"initialStatus"`
	FinalStatus        Status          `json:"finalStatus"`
	PolyphonicMismatch bool            `json:"polyphonicMismatch"`
}

// GuessResult bundles a scored guess. Correct holds iff every position's
// three statuses are all StatusCorrect.
type GuessResult struct {
	Word    vocab.Word
	Matches []SyllableMatch
	Correct bool
}

// Session holds the state of a single game.
type Session struct {
	ID         string        // unique session identifier (random hex)
	Target     vocab.Word    // the hidden word, pinyin resolved
	Results    []GuessResult // scored guesses, in submission order
	MaxGuesses int           // guess budget (default 6)
	Over       bool          // true once the game terminated
	Won        bool          // true if terminated by a fully correct guess
}
