// internal/httpserver/routes_game.go
//
// Handlers for the game endpoints.
//   - POST /game/new    → pick a target word, open a session, issue a ticket
//   - POST /game/guess  → resolve the guess's pinyin and score it
//   - GET  /game/hints  → up to three hint sentences for the target
//
// A game ticket is an HS256 JWT binding the client to one session ID;
// /game/guess and /game/hints refuse requests whose ticket does not match
// the session they address.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/handle-game/go-server/internal/game"
	"github.com/handle-game/go-server/internal/vocab"
)

// ------------------------------ /game/new -----------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Length int    `json:"length"` // 2 (default) or 4
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	Token      string `json:"token"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
}

// handleNewGame picks a target word, opens a session, and returns its
// ticket. The target itself is never sent to the client.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Length == 0 {
		req.Length = 2
	}

	target, err := s.pickTarget(r, req)
	if err != nil {
		log.Error().Err(err).Int("length", req.Length).Msg("pick target word")
		http.Error(w, `{"error":"no_word"}`, http.StatusServiceUnavailable)
		return
	}

	sess := game.NewSession(target, s.cfg.MaxGuesses)
	s.register(sess)

	token, err := s.signTicket(sess.ID)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:     sess.ID,
		Token:      token,
		Length:     target.Length(),
		MaxGuesses: sess.MaxGuesses,
	})
}

// pickTarget resolves the requested target: a fixed answer when supplied
// (testing), otherwise a random word from the resolver.
func (s *Server) pickTarget(r *http.Request, req newGameReq) (vocab.Word, error) {
	if req.Answer == "" {
		return s.res.RandomWord(r.Context(), req.Length)
	}
	py, ok := s.res.LookupPinyin(r.Context(), req.Answer)
	if !ok {
		return vocab.Word{}, errors.New("fixed answer has no resolvable pinyin")
	}
	return vocab.NewWord(req.Answer, py)
}

// ----------------------------- /game/guess ----------------------------------

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// matchView is the per-position result sent to the client.
type matchView struct {
	Character          string `json:"character"`
	Pinyin             string `json:"pinyin"` // display form (Ü rules applied)
	CharacterStatus    string `json:"characterStatus"`
	InitialStatus      string `json:"initialStatus"`
	FinalStatus        string `json:"finalStatus"`
	PolyphonicMismatch bool   `json:"polyphonicMismatch"`
}

type answerView struct {
	Characters string   `json:"characters"`
	Pinyin     []string `json:"pinyin"`
}

type guessRes struct {
	Matches   []matchView `json:"matches"`
	Correct   bool        `json:"correct"`
	State     string      `json:"state"` // "playing" | "won" | "lost"
	Remaining int         `json:"remaining"`
	Answer    *answerView `json:"answer,omitempty"` // revealed on loss
}

// handleGuess resolves the guessed word's pinyin, scores it against the
// session target, and reports the per-position three-channel result.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.Word = strings.TrimSpace(req.Word)
	if req.GameID == "" || req.Word == "" {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}
	if s.ticketGameID(r) != req.GameID {
		http.Error(w, `{"error":"bad_ticket"}`, http.StatusUnauthorized)
		return
	}
	sess, ok := s.lookup(req.GameID)
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	py, ok := s.res.LookupPinyin(r.Context(), req.Word)
	if !ok {
		http.Error(w, `{"error":"pinyin_unavailable"}`, http.StatusUnprocessableEntity)
		return
	}
	guess, err := vocab.NewWord(req.Word, py)
	if err != nil {
		http.Error(w, `{"error":"invalid"}`, http.StatusBadRequest)
		return
	}

	// Session mutation needs exclusive access; the table lock doubles as
	// the per-session lock since submissions are short.
	s.mu.Lock()
	res, err := sess.SubmitGuess(guess)
	state, remaining := sess.State(), sess.Remaining()
	s.mu.Unlock()

	switch {
	case errors.Is(err, game.ErrGameOver):
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
		return
	case errors.Is(err, game.ErrLengthMismatch):
		http.Error(w, `{"error":"wrong_length"}`, http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, `{"error":"guess_failed"}`, http.StatusInternalServerError)
		return
	}

	out := guessRes{
		Matches:   toMatchViews(res),
		Correct:   res.Correct,
		State:     state,
		Remaining: remaining,
	}
	if state == "lost" {
		out.Answer = revealAnswer(sess.Target)
	}
	_ = json.NewEncoder(w).Encode(out)
}

// toMatchViews converts scorer output into the wire representation.
func toMatchViews(res game.GuessResult) []matchView {
	out := make([]matchView, len(res.Matches))
	for i, m := range res.Matches {
		out[i] = matchView{
			Character:          m.Character,
			Pinyin:             m.Syllable.Display(),
			CharacterStatus:    string(m.CharacterStatus),
			InitialStatus:      string(m.InitialStatus),
			FinalStatus:        string(m.FinalStatus),
			PolyphonicMismatch: m.PolyphonicMismatch,
		}
	}
	return out
}

// revealAnswer renders the target in display pinyin for the loss response.
func revealAnswer(target vocab.Word) *answerView {
	syl := target.Syllables()
	py := make([]string, len(syl))
	for i, s := range syl {
		py[i] = s.Display()
	}
	return &answerView{Characters: target.Characters, Pinyin: py}
}

// ----------------------------- /game/hints ----------------------------------

type hintsRes struct {
	Hints []string `json:"hints"`
}

// handleHints returns up to three hints for the session target. An empty
// list means the hint service is absent or unavailable — never an error.
func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" || s.ticketGameID(r) != gameID {
		http.Error(w, `{"error":"bad_ticket"}`, http.StatusUnauthorized)
		return
	}
	sess, ok := s.lookup(gameID)
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	hints := s.res.Hints(r.Context(), sess.Target.Characters, sess.Target.Length() == 4)
	if hints == nil {
		hints = []string{}
	}
	_ = json.NewEncoder(w).Encode(hintsRes{Hints: hints})
}

// -------------------------- /debug/candidates --------------------------------

// handleCandidates exposes the repository's reverse pinyin lookup.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	syllable := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("pinyin")))
	if syllable == "" {
		http.Error(w, `{"error":"missing_pinyin"}`, http.StatusBadRequest)
		return
	}
	set := vocab.CandidatesForPinyin(syllable)
	out := make([]string, 0, len(set))
	for ch := range set {
		out = append(out, ch)
	}
	_ = json.NewEncoder(w).Encode(map[string][]string{"candidates": out})
}

// ------------------------------ game tickets ---------------------------------

// signTicket creates an HS256 JWT bound to one game session.
func (s *Server) signTicket(gameID string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(s.cfg.TicketSecret))
}

// ticketGameID extracts and verifies the bearer ticket, returning the game
// ID it was issued for, or "" when missing/invalid.
func (s *Server) ticketGameID(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return ""
	}
	tokenStr := strings.TrimSpace(auth[7:])

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.TicketSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	gid, _ := claims["gid"].(string)
	return gid
}
