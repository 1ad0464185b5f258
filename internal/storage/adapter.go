package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

const quarantineSuffix = ".corrupt"

// Adapter persists the whole task collection under one fixed key of a KV store.
type Adapter struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// AdapterOption configures an Adapter
type AdapterOption func(*Adapter)

// WithKey overrides DefaultKey
func WithKey(key string) AdapterOption {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used to report recovered load problems
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter creates an Adapter over kv
func NewAdapter(kv KV, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the key the collection is stored under
func (a *Adapter) Key() string {
	return a.key
}

// Save overwrites the stored collection with tasks
func (a *Adapter) Save(ctx context.Context, tasks []models.Task) error {
	if a == nil || a.kv == nil {
		return ErrNotConfigured
	}

	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Load returns the stored collection. Nothing stored and malformed data both
// yield an empty collection; only a failing backend read is an error.
func (a *Adapter) Load(ctx context.Context) ([]models.Task, error) {
	if a == nil || a.kv == nil {
		return nil, ErrNotConfigured
	}

	data, err := a.kv.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	tasks, skipped, err := Decode(data)
	if err != nil {
		a.logger.Warn("discarding malformed task collection", "key", a.key, "error", err)
		a.quarantine(ctx, data)
		return []models.Task{}, nil
	}
	if skipped > 0 {
		a.logger.Warn("dropped invalid task records", "key", a.key, "skipped", skipped, "kept", len(tasks))
	}
	return tasks, nil
}

// QuarantineKey returns the key a malformed collection is moved to.
func (a *Adapter) QuarantineKey() string {
	return a.key + quarantineSuffix
}

// quarantine moves an unreadable payload aside so the next save does not
// overwrite the only copy.
func (a *Adapter) quarantine(ctx context.Context, data []byte) {
	if err := a.kv.Set(ctx, a.QuarantineKey(), data); err != nil {
		a.logger.Warn("could not keep malformed task collection", "key", a.QuarantineKey(), "error", err)
		return
	}
	if err := a.kv.Delete(ctx, a.key); err != nil {
		a.logger.Warn("could not remove malformed task collection", "key", a.key, "error", err)
	}
}
