// internal/httpserver/server.go
//
// HTTP server wiring for the game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request
//     IDs, request logging).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/hints.
//   - Debug endpoints: /debug/words, /debug/candidates.
//   - Game-ticket signing and verification (HS256 JWT binding a client to
//     its session).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Sessions live in memory for the life of the process; there is no
//     cross-restart persistence by design.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/handle-game/go-server/internal/config"
	"github.com/handle-game/go-server/internal/game"
	"github.com/handle-game/go-server/internal/resolve"
	"github.com/handle-game/go-server/internal/vocab"
)

// Server bundles the router, the resolver, and the in-memory session table.
type Server struct {
	r   *chi.Mux
	res *resolve.Resolver
	cfg config.Config

	mu       sync.Mutex // guards sessions and per-session mutation
	sessions map[string]*game.Session
}

// New constructs a Server, installs middleware, and registers routes.
func New(res *resolve.Resolver, cfg config.Config) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		res:      res,
		cfg:      cfg,
		sessions: make(map[string]*game.Session),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time (hints may take 20s)
	s.r.Use(requestLogger)                   // zerolog request log
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin))       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"handle-go","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/hints"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/hints", s.handleHints)

	// Debug: vocabulary stats and reverse syllable lookup
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		w2, w4, chars, poly := vocab.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{
			"words2": w2, "words4": w4, "chars": chars, "polyphones": poly,
		})
	})
	s.r.Get("/debug/candidates", s.handleCandidates)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger emits one structured log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ sessions ------------------------------------

// register stores a new session.
func (s *Server) register(sess *game.Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
}

// lookup finds a session by ID.
func (s *Server) lookup(id string) (*game.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}
