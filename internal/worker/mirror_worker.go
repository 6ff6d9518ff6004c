// Package worker contains the mirror worker: a change-feed follower that
// copies committed snapshots from the primary store to a mirror store.
package worker

import (
	"context"
	"fmt"
	"sync"

	"trackfin/internal/amqp"
	"trackfin/internal/blob"
	applog "trackfin/internal/log"
)

// MirrorWorker consumes state-changed messages and mirrors the snapshot
// blob from the primary store into a mirror store. Because every message
// triggers a fresh load of the current snapshot, replaying a backlog is
// idempotent; revisions already mirrored are skipped.
type MirrorWorker struct {
	primary blob.SnapshotStore
	mirror  blob.SnapshotStore
	logger  *applog.Logger

	mu           sync.Mutex
	lastRevision int64
}

func NewMirrorWorker(primary, mirror blob.SnapshotStore, logger *applog.Logger) *MirrorWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &MirrorWorker{
		primary: primary,
		mirror:  mirror,
		logger:  logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleStateChanged processes a single state-changed message.
func (w *MirrorWorker) HandleStateChanged(ctx context.Context, msg *amqp.StateChangedMessage) error {
	w.mu.Lock()
	if msg.Revision != 0 && msg.Revision <= w.lastRevision {
		w.mu.Unlock()
		w.logger.DebugContext(ctx, "Skipping already-mirrored revision",
			applog.FieldRevision, msg.Revision)
		return nil
	}
	w.mu.Unlock()

	snap, found, err := w.primary.Load(ctx)
	if err != nil {
		return fmt.Errorf("load primary snapshot: %w", err)
	}
	if !found {
		// Nothing stored yet; a reset before the first save can race the
		// feed into this state.
		w.logger.WarnContext(ctx, "No snapshot in primary store, nothing to mirror",
			applog.FieldRevision, msg.Revision)
		return nil
	}

	if err := w.mirror.Save(ctx, snap); err != nil {
		return fmt.Errorf("save mirror snapshot: %w", err)
	}

	w.mu.Lock()
	if msg.Revision > w.lastRevision {
		w.lastRevision = msg.Revision
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Mirrored snapshot",
		applog.FieldAction, msg.Action,
		applog.FieldRevision, msg.Revision)
	return nil
}

// SyncOnce copies the current primary snapshot to the mirror regardless of
// the feed. Used at startup to catch up after downtime.
func (w *MirrorWorker) SyncOnce(ctx context.Context) error {
	snap, found, err := w.primary.Load(ctx)
	if err != nil {
		return fmt.Errorf("load primary snapshot: %w", err)
	}
	if !found {
		w.logger.InfoContext(ctx, "No snapshot in primary store, skipping startup sync")
		return nil
	}
	if err := w.mirror.Save(ctx, snap); err != nil {
		return fmt.Errorf("save mirror snapshot: %w", err)
	}
	w.logger.InfoContext(ctx, "Startup sync complete")
	return nil
}
