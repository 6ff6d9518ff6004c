// Package blob defines the persistence boundary: the whole snapshot is
// serialized as a single JSON value and stored under a fixed key in an
// opaque key-value store.
package blob

import (
	"context"
	"encoding/json"
	"fmt"

	"trackfin/internal/core"
)

// DefaultKey is the storage key for the snapshot blob. Every backend uses
// the same key so stores are interchangeable.
const DefaultKey = "trackmyfinances-state"

// SnapshotStore is the port for outbound persistence adapters.
type SnapshotStore interface {
	// Load reads the stored snapshot. found is false when nothing usable
	// is stored; a malformed blob counts as absent, not as an error.
	Load(ctx context.Context) (snap core.Snapshot, found bool, err error)

	// Save writes the full snapshot, replacing any prior value.
	Save(ctx context.Context, snap core.Snapshot) error
}

// Encode serializes a snapshot to its stored JSON form.
func Encode(snap core.Snapshot) ([]byte, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return body, nil
}

// Decode parses a stored blob back into a snapshot. A nil Budgets map is
// normalized to empty so the snapshot keeps its structural shape.
func Decode(body []byte) (core.Snapshot, error) {
	var snap core.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Budgets == nil {
		snap.Budgets = map[string]core.Budget{}
	}
	return snap, nil
}
