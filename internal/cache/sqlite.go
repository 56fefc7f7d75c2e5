// internal/cache/sqlite.go
//
// SQLite-backed Cache for pinyin lookups.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout).
//   - Applying the idempotent schema.
//   - Get/Put against the pinyin_cache table.
//
// Values are stored as space-joined syllable lists; syllables are uppercase
// ASCII tokens, so a single space is an unambiguous separator.

package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS pinyin_cache (
    word   TEXT PRIMARY KEY,
    pinyin TEXT NOT NULL
);`

// SQLite is a durable Cache backed by a single-table SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the cache database.
//
//   - Ensures the parent directory exists for relative DSNs
//     (e.g. ./data/pinyin.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Applies the schema idempotently.
func OpenSQLite(dsn string) (*SQLite, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get fetches the cached pinyin list for a word.
func (s *SQLite) Get(ctx context.Context, key string) ([]string, bool, error) {
	var joined string
	err := s.db.QueryRowContext(ctx,
		`SELECT pinyin FROM pinyin_cache WHERE word=?`, key,
	).Scan(&joined)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return strings.Fields(joined), true, nil
}

// Put stores the pinyin list, replacing any previous row (last write wins).
func (s *SQLite) Put(ctx context.Context, key string, values []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pinyin_cache (word, pinyin) VALUES (?, ?)`,
		key, strings.Join(values, " "),
	)
	return err
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
