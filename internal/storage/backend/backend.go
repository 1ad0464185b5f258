// Package backend opens the storage.KV selected by configuration.
package backend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tiwariParth/go-task-tracker/internal/config"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
	"github.com/tiwariParth/go-task-tracker/internal/storage/bbolt"
	"github.com/tiwariParth/go-task-tracker/internal/storage/file"
	"github.com/tiwariParth/go-task-tracker/internal/storage/memory"
	"github.com/tiwariParth/go-task-tracker/internal/storage/sqlite"
)

// File names inside the data directory, one per on-disk backend.
const (
	FileName   = "store.json"
	BoltName   = "tasks.db"
	SQLiteName = "tasks.sqlite"
)

// Open returns a ready KV for cfg.Backend. On-disk backends live in cfg.DataDir.
func Open(cfg *config.Config) (storage.KV, error) {
	if cfg == nil {
		return nil, storage.ErrNotConfigured
	}
	if cfg.Backend == config.BackendMemory {
		return memory.NewMemoryStore(), nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", storage.ErrStorageConnection, err)
	}

	var (
		kv  storage.KV
		err error
	)
	switch cfg.Backend {
	case config.BackendFile:
		kv, err = file.Open(filepath.Join(cfg.DataDir, FileName))
	case config.BackendBolt:
		kv, err = bbolt.Open(filepath.Join(cfg.DataDir, BoltName))
	case config.BackendSQLite:
		kv, err = sqlite.Open(filepath.Join(cfg.DataDir, SQLiteName))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrStorageConnection, cfg.Backend, err)
	}
	return kv, nil
}
