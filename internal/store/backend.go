// Package store persists ledger snapshots in a pluggable key/value backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/moneymoves/internal/log"
)

// ErrNotFound is returned by Backend.Get when nothing is stored under the
// namespace.
var ErrNotFound = errors.New("snapshot not found")

// DefaultNamespace is the key the ledger snapshot is stored under.
const DefaultNamespace = "moneyMoves:v1"

// Backend stores opaque snapshot bodies by namespace.
type Backend interface {
	Get(ctx context.Context, namespace string) ([]byte, error)
	Put(ctx context.Context, namespace string, data []byte) error
	Delete(ctx context.Context, namespace string) error
	Close() error
}

// SaveTimer is implemented by backends that record when a namespace was
// last written.
type SaveTimer interface {
	SavedAt(ctx context.Context, namespace string) (time.Time, error)
}

// Backend kinds accepted by OpenBackend.
const (
	KindSQLite = "sqlite"
	KindFile   = "file"
	KindMemory = "memory"
)

// Kinds lists the supported backend kinds.
var Kinds = []string{KindSQLite, KindFile, KindMemory}

// OpenBackend opens a backend of the given kind rooted at dataDir. A nil
// logger discards.
func OpenBackend(kind, dataDir string, logger *log.Logger) (Backend, error) {
	switch strings.ToLower(kind) {
	case KindSQLite, "":
		db, err := OpenSQLite(filepath.Join(dataDir, "moneymoves.db"), logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	case KindFile:
		f, err := OpenFile(filepath.Join(dataDir, "snapshots"))
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (want one of %s)", kind, strings.Join(Kinds, ", "))
}

func storeLogger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Discard()
	}
	return l.WithComponent("store")
}
