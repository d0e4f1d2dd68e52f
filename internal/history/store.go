// Package history records scaffold and promotion operations in a local
// sqlite database so the UI can show what happened and when.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/JIGGAI/ClawKitchen/internal/config"
)

// Operation kinds.
const (
	KindScaffold  = "scaffold"
	KindPromotion = "promotion"
)

// Entry is one recorded operation. Subject is the recipe id for scaffolds
// and the goal id for promotions.
type Entry struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Subject    string    `json:"subject"`
	Args       string    `json:"args,omitempty"`
	OK         bool      `json:"ok"`
	ExitCode   int       `json:"exit_code"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type Store struct {
	db *sql.DB
}

func New(cfg config.HistoryConfig) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Enable WAL mode for concurrent read/write access and set a busy
	// timeout so writers retry instead of immediately returning SQLITE_BUSY.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("exec %s: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS operations (
			id          TEXT PRIMARY KEY,
			kind        TEXT NOT NULL,
			subject     TEXT NOT NULL,
			args        TEXT,
			ok          BOOLEAN NOT NULL,
			exit_code   INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_at)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Append records one operation. A missing id is generated.
func (s *Store) Append(e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO operations (id, kind, subject, args, ok, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Subject, e.Args, e.OK, e.ExitCode, e.DurationMs)
	if err != nil {
		return fmt.Errorf("append operation: %w", err)
	}
	return nil
}

// Recent returns up to limit operations, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, kind, subject, args, ok, exit_code, duration_ms, created_at
		FROM operations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var args sql.NullString
		if err := rows.Scan(&e.ID, &e.Kind, &e.Subject, &args, &e.OK, &e.ExitCode, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		e.Args = args.String
		out = append(out, e)
	}
	return out, rows.Err()
}
