package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/moneymoves/internal/log"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite stores snapshots in a single-table SQLite database.
type SQLite struct {
	db  *sql.DB
	log *log.Logger
}

// OpenSQLite opens or creates the database at dbPath and migrates it to the
// latest schema. A nil logger discards.
func OpenSQLite(dbPath string, logger *log.Logger) (*SQLite, error) {
	logger = storeLogger(logger)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := migrateUp(dbPath, logger); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	// One writer, and :memory: databases must not be split across connections.
	db.SetMaxOpenConns(1)

	logger.Debug("opened snapshot db", "path", dbPath)
	return &SQLite{db: db, log: logger}, nil
}

// Get implements Backend.
func (s *SQLite) Get(ctx context.Context, namespace string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT body FROM snapshots WHERE namespace = ?", namespace).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", namespace, err)
	}
	return body, nil
}

// Put implements Backend.
func (s *SQLite) Put(ctx context.Context, namespace string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `INSERT INTO snapshots (namespace, body, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at`,
		namespace, data, now)
	if err != nil {
		return fmt.Errorf("writing snapshot %q: %w", namespace, err)
	}
	s.log.Debug("saved snapshot", "namespace", namespace, "bytes", len(data))
	return nil
}

// Delete implements Backend.
func (s *SQLite) Delete(ctx context.Context, namespace string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", namespace, err)
	}
	return nil
}

// SavedAt returns when the namespace was last written.
func (s *SQLite) SavedAt(ctx context.Context, namespace string) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT saved_at FROM snapshots WHERE namespace = ?", namespace).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}

// Close implements Backend.
func (s *SQLite) Close() error {
	return s.db.Close()
}
