package backend

import (
	"context"
	"path/filepath"
	"testing"

	appconfig "trackfin/internal/config"
	"trackfin/internal/core"
)

func TestBackendTypeIsValid(t *testing.T) {
	tests := []struct {
		bt   BackendType
		want bool
	}{
		{SQLiteBackend, true},
		{SheetsBackend, true},
		{MemoryBackend, true},
		{BackendType("postgres"), false},
		{BackendType(""), false},
	}
	for _, tt := range tests {
		if got := tt.bt.IsValid(); got != tt.want {
			t.Errorf("BackendType(%q).IsValid() = %v, want %v", tt.bt, got, tt.want)
		}
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg := &appconfig.Config{
		StoreBackend: "sqlite",
		SQLiteDBPath: "/tmp/x.db",
		SnapshotKey:  "k",
	}
	got, err := FromAppConfig(cfg)
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if got.Type != SQLiteBackend || got.SQLiteDBPath != "/tmp/x.db" || got.SnapshotKey != "k" {
		t.Errorf("FromAppConfig() = %+v", got)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) expected error")
	}
	if _, err := FromAppConfig(&appconfig.Config{StoreBackend: "redis"}); err == nil {
		t.Error("FromAppConfig() expected error for unknown backend")
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{
		Type:        MemoryBackend,
		SnapshotKey: "test-key",
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	if result.Store == nil {
		t.Fatal("CreateBackend() returned nil store")
	}
	if result.Cleanup != nil {
		t.Error("memory backend should need no cleanup")
	}

	// The store starts empty and accepts a snapshot.
	ctx := context.Background()
	if _, found, err := result.Store.Load(ctx); err != nil || found {
		t.Fatalf("Load() = found %v, err %v on fresh store", found, err)
	}
	if err := result.Store.Save(ctx, core.InitialSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SnapshotKey:  "test-key",
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	if result.Cleanup == nil {
		t.Fatal("sqlite backend must provide cleanup")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}

func TestCreateBackendInvalidType(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "redis"}); err == nil {
		t.Error("CreateBackend() expected error for invalid type")
	}
}
