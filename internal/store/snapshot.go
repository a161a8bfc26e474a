package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/moneymoves/internal/model"
)

// ErrCorrupt wraps snapshot bodies that exist but cannot be decoded.
var ErrCorrupt = errors.New("snapshot is corrupt")

// Encode serializes a ledger compactly for storage.
func Encode(l *model.Ledger) ([]byte, error) {
	return json.Marshal(l)
}

// EncodeIndent serializes a ledger for humans (exports).
func EncodeIndent(l *model.Ledger) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Decode parses a snapshot body and normalizes missing collections.
func Decode(data []byte) (*model.Ledger, error) {
	var l model.Ledger
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&l); err != nil {
		return nil, err
	}
	l.Normalize()
	return &l, nil
}

// Snapshot adapts a Backend to load and save the ledger under one namespace.
type Snapshot struct {
	Backend   Backend
	Namespace string
}

// NewSnapshot binds b to namespace, or DefaultNamespace when empty.
func NewSnapshot(b Backend, namespace string) *Snapshot {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Snapshot{Backend: b, Namespace: namespace}
}

// Load returns the stored ledger. Missing snapshots yield ErrNotFound and
// undecodable ones ErrCorrupt.
func (s *Snapshot) Load(ctx context.Context) (*model.Ledger, error) {
	data, err := s.Backend.Get(ctx, s.Namespace)
	if err != nil {
		return nil, err
	}
	l, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return l, nil
}

// Save overwrites the stored ledger.
func (s *Snapshot) Save(ctx context.Context, l *model.Ledger) error {
	data, err := Encode(l)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.Backend.Put(ctx, s.Namespace, data)
}

// SavedAt reports when the ledger was last written, for backends that keep
// a write time.
func (s *Snapshot) SavedAt(ctx context.Context) (time.Time, bool) {
	st, ok := s.Backend.(SaveTimer)
	if !ok {
		return time.Time{}, false
	}
	t, err := st.SavedAt(ctx, s.Namespace)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
