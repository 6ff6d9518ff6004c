// Package memory provides an in-process snapshot store. It is the default
// backend and the one the tests use.
package memory

import (
	"context"
	"sync"

	"trackfin/internal/blob"
	"trackfin/internal/core"
	applog "trackfin/internal/log"
)

type Store struct {
	mu     sync.Mutex
	key    string
	body   []byte
	logger *applog.Logger
}

func New(key string, logger *applog.Logger) *Store {
	if key == "" {
		key = blob.DefaultKey
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Store{key: key, logger: logger.WithComponent(applog.ComponentBlob)}
}

// Load implements blob.SnapshotStore.
func (s *Store) Load(ctx context.Context) (core.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.body == nil {
		return core.Snapshot{}, false, nil
	}
	snap, err := blob.Decode(s.body)
	if err != nil {
		// Treated as no saved state; the caller starts fresh.
		s.logger.WarnContext(ctx, "Discarding malformed snapshot blob",
			applog.FieldSnapshotKey, s.key,
			applog.FieldError, err)
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save implements blob.SnapshotStore.
func (s *Store) Save(_ context.Context, snap core.Snapshot) error {
	body, err := blob.Encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = body
	return nil
}

// SetRaw replaces the stored bytes directly. Tests use it to simulate a
// corrupted blob.
func (s *Store) SetRaw(body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = append([]byte(nil), body...)
}
