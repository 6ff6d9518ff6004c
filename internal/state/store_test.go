package state

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"trackfin/internal/blob/memory"
	"trackfin/internal/core"
)

type recordingSaver struct {
	saves []core.Snapshot
	err   error
}

func (r *recordingSaver) Save(ctx context.Context, snap core.Snapshot) error {
	r.saves = append(r.saves, snap)
	return r.err
}

type recordingPublisher struct {
	actions   []string
	revisions []int64
	err       error
}

func (r *recordingPublisher) PublishStateChanged(ctx context.Context, action string, revision int64) error {
	r.actions = append(r.actions, action)
	r.revisions = append(r.revisions, revision)
	return r.err
}

func TestStoreDispatch(t *testing.T) {
	saver := &recordingSaver{}
	events := &recordingPublisher{}
	st := NewStore(saver, events, nil)
	ctx := context.Background()

	if st.Revision() != 0 {
		t.Fatalf("fresh store revision = %d", st.Revision())
	}

	snap := st.Dispatch(ctx, AddAccount{Account: core.Account{ID: "a1", Name: "Checking", Type: core.Checking, Currency: "USD"}})
	if len(snap.Accounts) != 1 {
		t.Fatalf("dispatch returned %d accounts", len(snap.Accounts))
	}
	if st.Revision() != 1 {
		t.Fatalf("revision = %d, want 1", st.Revision())
	}

	// Every transition is saved and published.
	if len(saver.saves) != 1 || len(saver.saves[0].Accounts) != 1 {
		t.Fatalf("saver saw %d saves", len(saver.saves))
	}
	if len(events.actions) != 1 || events.actions[0] != "add_account" || events.revisions[0] != 1 {
		t.Fatalf("publisher saw %v at revisions %v", events.actions, events.revisions)
	}

	// The returned snapshot is stable: later dispatches don't reach back.
	st.Dispatch(ctx, AddAccount{Account: core.Account{ID: "a2", Name: "Savings", Type: core.Savings, Currency: "USD"}})
	if len(snap.Accounts) != 1 {
		t.Fatal("previously returned snapshot changed")
	}
}

func TestStoreDispatchSurvivesSaveAndPublishErrors(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	events := &recordingPublisher{err: errors.New("broker down")}
	st := NewStore(saver, events, nil)

	snap := st.Dispatch(context.Background(), AddAccount{Account: core.Account{ID: "a1", Name: "Checking", Type: core.Checking, Currency: "USD"}})

	// Best-effort persistence: the in-memory transition stands.
	if len(snap.Accounts) != 1 || st.Revision() != 1 {
		t.Fatalf("transition rolled back: %d accounts, revision %d", len(snap.Accounts), st.Revision())
	}
}

func TestStoreWithoutCollaborators(t *testing.T) {
	st := NewStore(nil, nil, nil)
	snap := st.Dispatch(context.Background(), Login{User: core.User{ID: "u1", Name: "Alex"}})
	if !snap.Session.IsAuthenticated {
		t.Fatal("dispatch without saver/publisher failed")
	}
}

func TestSaveLoadReplayRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobStore := memory.New("trackmyfinances-state", nil)

	// Build up state through dispatches; every transition saves the blob.
	first := NewStore(blobStore, nil, nil)
	first.Dispatch(ctx, Login{User: core.User{ID: "u1", Name: "Alex", Email: "alex@example.com"}})
	first.Dispatch(ctx, AddAccount{Account: core.Account{ID: "a1", Name: "Checking", Type: core.Checking, Currency: "USD"}})
	first.Dispatch(ctx, AddTransaction{Transaction: core.Transaction{ID: "t1", Date: "2026-08-01", AccountID: "a1", Type: core.Income, AmountCents: 500000, Category: "Salary", Tags: []string{"work"}}})
	first.Dispatch(ctx, SetBudget{Category: "Food", Budget: core.Budget{AmountCents: 50000, Month: "2026-08"}})
	first.Dispatch(ctx, UpdateSettings{Patch: core.SettingsPatch{Currency: strPtr("EUR"), Name: strPtr("Alex")}})
	want := first.Snapshot()

	stored, found, err := blobStore.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false after saves")
	}

	// A fresh store replayed from the stored snapshot converges on the
	// same state.
	second := NewStore(nil, nil, nil)
	second.Replay(ctx, stored)

	if got := second.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("replayed snapshot differs:\n got %+v\nwant %+v", got, want)
	}

	// One action per stored entity: login + account + transaction +
	// budget + settings.
	if second.Revision() != 5 {
		t.Errorf("replay revision = %d, want 5", second.Revision())
	}
}

func TestReplayEmptySnapshot(t *testing.T) {
	st := NewStore(nil, nil, nil)
	st.Replay(context.Background(), core.InitialSnapshot())

	// Only the settings update fires for an empty snapshot.
	if st.Revision() != 1 {
		t.Errorf("revision = %d, want 1", st.Revision())
	}
	if got := st.Snapshot(); !reflect.DeepEqual(got, core.InitialSnapshot()) {
		t.Errorf("snapshot = %+v, want initial", got)
	}
}
