// internal/config/config.go
//
// Typed environment configuration for the game server.
// main.go loads a .env file first (godotenv), then Load reads the process
// environment into this struct.

package config

import "github.com/ilyakaznacheev/cleanenv"

// Config is the root application configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string `env:"PORT" env-default:"5175"`

	// LogLevel for zerolog (trace/debug/info/warn/error).
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// ClientOrigin allowed for credentialed CORS.
	ClientOrigin string `env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`

	// ProxyURL is the base URL of the pinyin/hint/random-word service.
	// Empty disables all remote lookups; the built-in vocabulary is used.
	ProxyURL string `env:"PROXY_URL"`

	// PinyinCacheDB is the SQLite path for the durable lookup cache.
	// Empty keeps the cache in memory only.
	PinyinCacheDB string `env:"PINYIN_CACHE_DB"`

	// TicketSecret signs game tickets (HS256).
	TicketSecret string `env:"TICKET_SECRET" env-default:"dev_secret_change_me"`

	// MaxGuesses is the per-game guess budget.
	MaxGuesses int `env:"MAX_GUESSES" env-default:"6"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var c Config
	err := cleanenv.ReadEnv(&c)
	return c, err
}
