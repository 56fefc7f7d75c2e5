package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handle-game/go-server/internal/cache"
	"github.com/handle-game/go-server/internal/config"
	"github.com/handle-game/go-server/internal/resolve"
	"github.com/handle-game/go-server/internal/vocab"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	require.NoError(t, vocab.Init())
	res := resolve.New("", cache.NewMemory(), zerolog.Nop())
	srv := New(res, config.Config{
		ClientOrigin: "http://localhost:5173",
		TicketSecret: "test_secret",
		MaxGuesses:   6,
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, body any, out any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func startGame(t *testing.T, ts *httptest.Server, answer string) (gameID, token string) {
	t.Helper()
	var res struct {
		GameID     string `json:"gameId"`
		Token      string `json:"token"`
		MaxGuesses int    `json:"maxGuesses"`
	}
	resp := postJSON(t, ts.URL+"/game/new", "", map[string]any{"length": 2, "answer": answer}, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, res.GameID)
	require.NotEmpty(t, res.Token)
	return res.GameID, res.Token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGameFlow(t *testing.T) {
	ts := newTestServer(t)
	gameID, token := startGame(t, ts, "学习")

	var res struct {
		Matches []struct {
			Character          string `json:"character"`
			Pinyin             string `json:"pinyin"`
			CharacterStatus    string `json:"characterStatus"`
			InitialStatus      string `json:"initialStatus"`
			FinalStatus        string `json:"finalStatus"`
			PolyphonicMismatch bool   `json:"polyphonicMismatch"`
		} `json:"matches"`
		Correct   bool   `json:"correct"`
		State     string `json:"state"`
		Remaining int    `json:"remaining"`
	}

	// Transposed guess: characters and finals misplaced; both syllables
	// share the initial X, so that channel matches exactly.
	resp := postJSON(t, ts.URL+"/game/guess", token,
		map[string]string{"gameId": gameID, "word": "习学"}, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "present", res.Matches[0].CharacterStatus)
	assert.Equal(t, "correct", res.Matches[0].InitialStatus)
	assert.Equal(t, "present", res.Matches[0].FinalStatus)
	assert.False(t, res.Correct)
	assert.Equal(t, "playing", res.State)
	assert.Equal(t, 5, res.Remaining)

	// Winning guess terminates the game.
	resp = postJSON(t, ts.URL+"/game/guess", token,
		map[string]string{"gameId": gameID, "word": "学习"}, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, res.Correct)
	assert.Equal(t, "won", res.State)

	// No guesses after termination.
	resp = postJSON(t, ts.URL+"/game/guess", token,
		map[string]string{"gameId": gameID, "word": "学习"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGuessRequiresTicket(t *testing.T) {
	ts := newTestServer(t)
	gameID, _ := startGame(t, ts, "学习")

	resp := postJSON(t, ts.URL+"/game/guess", "",
		map[string]string{"gameId": gameID, "word": "学习"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/game/guess", "not-a-jwt",
		map[string]string{"gameId": gameID, "word": "学习"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuessTicketBoundToSession(t *testing.T) {
	ts := newTestServer(t)
	gameA, _ := startGame(t, ts, "学习")
	_, tokenB := startGame(t, ts, "你好")

	// A ticket for game B must not authorize guesses against game A.
	resp := postJSON(t, ts.URL+"/game/guess", tokenB,
		map[string]string{"gameId": gameA, "word": "学习"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuessUnresolvablePinyin(t *testing.T) {
	ts := newTestServer(t)
	gameID, token := startGame(t, ts, "学习")

	// 魔法 is outside the built-in vocabulary and no proxy is configured.
	resp := postJSON(t, ts.URL+"/game/guess", token,
		map[string]string{"gameId": gameID, "word": "魔法"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGuessWrongLength(t *testing.T) {
	ts := newTestServer(t)
	gameID, token := startGame(t, ts, "学习")

	resp := postJSON(t, ts.URL+"/game/guess", token,
		map[string]string{"gameId": gameID, "word": "一心一意"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLossRevealsAnswer(t *testing.T) {
	_ = newTestServer(t)
	require.NoError(t, vocab.Init())
	res := resolve.New("", cache.NewMemory(), zerolog.Nop())
	srv := New(res, config.Config{TicketSecret: "test_secret", MaxGuesses: 1})
	inner := httptest.NewServer(srv.Router())
	defer inner.Close()

	gameID, token := startGame(t, inner, "学习")

	var out struct {
		State  string `json:"state"`
		Answer *struct {
			Characters string   `json:"characters"`
			Pinyin     []string `json:"pinyin"`
		} `json:"answer"`
	}
	resp := postJSON(t, inner.URL+"/game/guess", token,
		map[string]string{"gameId": gameID, "word": "你好"}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "lost", out.State)
	require.NotNil(t, out.Answer)
	assert.Equal(t, "学习", out.Answer.Characters)
	assert.Equal(t, []string{"XÜE", "XI"}, out.Answer.Pinyin)
}

func TestHintsWithoutProxyIsEmptyList(t *testing.T) {
	ts := newTestServer(t)
	gameID, token := startGame(t, ts, "学习")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/game/hints?gameId="+gameID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Hints []string `json:"hints"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotNil(t, out.Hints)
	assert.Empty(t, out.Hints)
}

func TestDebugCandidates(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/debug/candidates?pinyin=xue")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Candidates []string `json:"candidates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Candidates, "学")
}
