package state

import (
	"context"
	"sync"

	"trackfin/internal/core"
	applog "trackfin/internal/log"
)

// Saver is the write half of the persistence boundary. The store saves the
// full snapshot after every transition.
type Saver interface {
	Save(ctx context.Context, snap core.Snapshot) error
}

// EventPublisher receives a notification after every committed transition.
type EventPublisher interface {
	PublishStateChanged(ctx context.Context, action string, revision int64) error
}

// Store owns the current snapshot. All transitions are serialized behind a
// single writer; the snapshot value itself is never mutated in place, so a
// value handed out by Snapshot or Dispatch stays stable forever.
//
// Persistence and event publishing run synchronously after each transition.
// Both are best-effort: failures are logged and the in-memory transition
// stands (a failed save surfaces on the next process start as stale state,
// never as an error to the dispatcher).
type Store struct {
	mu       sync.Mutex
	snap     core.Snapshot
	revision int64

	saver  Saver
	events EventPublisher
	logger *applog.Logger
}

// NewStore creates a store holding the initial snapshot. saver and events
// may be nil; the store then runs purely in memory.
func NewStore(saver Saver, events EventPublisher, logger *applog.Logger) *Store {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Store{
		snap:   core.InitialSnapshot(),
		saver:  saver,
		events: events,
		logger: logger.WithComponent(applog.ComponentState),
	}
}

// Dispatch applies the action and returns the new snapshot.
func (st *Store) Dispatch(ctx context.Context, a Action) core.Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.snap = Reduce(st.snap, a)
	st.revision++
	next := st.snap
	rev := st.revision

	name := ActionName(a)
	st.logger.DebugContext(ctx, "Applied action",
		applog.FieldAction, name,
		applog.FieldRevision, rev)

	if st.saver != nil {
		if err := st.saver.Save(ctx, next); err != nil {
			st.logger.ErrorContext(ctx, "Failed to save snapshot",
				applog.FieldAction, name,
				applog.FieldRevision, rev,
				applog.FieldError, err)
		}
	}
	if st.events != nil {
		if err := st.events.PublishStateChanged(ctx, name, rev); err != nil {
			st.logger.WarnContext(ctx, "Failed to publish state change",
				applog.FieldAction, name,
				applog.FieldRevision, rev,
				applog.FieldError, err)
		}
	}
	return next
}

// Snapshot returns the current snapshot value.
func (st *Store) Snapshot() core.Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snap
}

// Revision returns the number of transitions applied so far.
func (st *Store) Revision() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.revision
}
