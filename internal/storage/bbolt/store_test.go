package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

func TestStoreSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := store.Set(context.Background(), storage.DefaultKey, []byte(`[]`)); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(context.Background(), storage.DefaultKey)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("expected %q, got %q", `[]`, got)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	_, err = store.Get(context.Background(), "missing")
	if !errors.Is(err, storage.ErrKeyNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete value: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStoreSetEmptyKey(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), " ", []byte("v")); err == nil {
		t.Fatal("expected error")
	}
}

func TestStoreSetCanceledContext(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Set(ctx, "k", []byte("v")); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error")
	}
}

func TestNilStoreIsNotConfigured(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, err := store.Get(context.Background(), "k"); !errors.Is(err, storage.ErrNotConfigured) {
		t.Fatalf("expected not configured error, got %v", err)
	}
}
