package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"trackfin/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), "test-key", nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Load() found = true on empty database")
	}
}

func TestSQLiteStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := core.InitialSnapshot()
	snap.Accounts = []core.Account{
		{ID: "a1", Name: "Checking", Type: core.Checking, Currency: "USD"},
	}
	snap.Transactions = []core.Transaction{
		{ID: "t1", Date: "2026-08-01", AccountID: "a1", Type: core.Income, AmountCents: 500000, Category: "Salary", Tags: []string{"work"}},
	}
	snap.Budgets = map[string]core.Budget{
		"Food": {AmountCents: 50000, Month: "2026-08"},
	}

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, found, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Load() found = false after save")
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestSQLiteStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := core.InitialSnapshot()
	first.Accounts = []core.Account{{ID: "a1", Name: "Old", Type: core.Checking, Currency: "USD"}}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	second := core.InitialSnapshot()
	second.Accounts = []core.Account{{ID: "a1", Name: "New", Type: core.Checking, Currency: "USD"}}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, found, err := store.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load() = found %v, err %v", found, err)
	}
	if got.Accounts[0].Name != "New" {
		t.Errorf("account name = %q, want the overwritten value", got.Accounts[0].Name)
	}
}

func TestSQLiteStoreMalformedBlobTreatedAsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)`,
		store.key, []byte("{not json"), "2026-08-31T00:00:00Z"); err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	_, found, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v, corrupt blob must not error", err)
	}
	if found {
		t.Error("Load() found = true for corrupt blob")
	}
}
