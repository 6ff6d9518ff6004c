package worker

import (
	"context"
	"reflect"
	"testing"
	"time"

	"trackfin/internal/amqp"
	"trackfin/internal/blob/memory"
	"trackfin/internal/core"
)

func TestHandleStateChangedMirrorsSnapshot(t *testing.T) {
	ctx := context.Background()
	primary := memory.New("", nil)
	mirror := memory.New("", nil)
	w := NewMirrorWorker(primary, mirror, nil)

	snap := core.ExampleSnapshot(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if err := primary.Save(ctx, snap); err != nil {
		t.Fatalf("seed primary: %v", err)
	}

	if err := w.HandleStateChanged(ctx, &amqp.StateChangedMessage{Action: "add_transaction", Revision: 1}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	got, found, err := mirror.Load(ctx)
	if err != nil || !found {
		t.Fatalf("mirror load: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("mirror mismatch")
	}
}

func TestHandleStateChangedSkipsStaleRevision(t *testing.T) {
	ctx := context.Background()
	primary := memory.New("", nil)
	mirror := memory.New("", nil)
	w := NewMirrorWorker(primary, mirror, nil)

	snap := core.InitialSnapshot()
	snap.Settings.Name = "first"
	if err := primary.Save(ctx, snap); err != nil {
		t.Fatalf("seed primary: %v", err)
	}
	if err := w.HandleStateChanged(ctx, &amqp.StateChangedMessage{Revision: 5}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	// A newer primary snapshot with a stale revision message must not be
	// re-mirrored.
	snap.Settings.Name = "second"
	if err := primary.Save(ctx, snap); err != nil {
		t.Fatalf("reseed primary: %v", err)
	}
	if err := w.HandleStateChanged(ctx, &amqp.StateChangedMessage{Revision: 3}); err != nil {
		t.Fatalf("handle stale: %v", err)
	}

	got, _, _ := mirror.Load(ctx)
	if got.Settings.Name != "first" {
		t.Fatalf("stale revision overwrote mirror: %q", got.Settings.Name)
	}
}

func TestHandleStateChangedEmptyPrimary(t *testing.T) {
	ctx := context.Background()
	w := NewMirrorWorker(memory.New("", nil), memory.New("", nil), nil)
	if err := w.HandleStateChanged(ctx, &amqp.StateChangedMessage{Revision: 1}); err != nil {
		t.Fatalf("empty primary must not error: %v", err)
	}
}

func TestSyncOnce(t *testing.T) {
	ctx := context.Background()
	primary := memory.New("", nil)
	mirror := memory.New("", nil)
	w := NewMirrorWorker(primary, mirror, nil)

	// Nothing stored: no-op.
	if err := w.SyncOnce(ctx); err != nil {
		t.Fatalf("sync empty: %v", err)
	}
	if _, found, _ := mirror.Load(ctx); found {
		t.Fatalf("mirror should stay empty")
	}

	snap := core.InitialSnapshot()
	snap.Settings.Name = "seed"
	if err := primary.Save(ctx, snap); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := w.SyncOnce(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	got, found, _ := mirror.Load(ctx)
	if !found || got.Settings.Name != "seed" {
		t.Fatalf("mirror after sync: found=%v got=%+v", found, got)
	}
}
