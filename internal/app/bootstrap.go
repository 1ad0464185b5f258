package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tiwariParth/go-task-tracker/internal/config"
	"github.com/tiwariParth/go-task-tracker/internal/format"
	"github.com/tiwariParth/go-task-tracker/internal/session"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
	"github.com/tiwariParth/go-task-tracker/internal/storage/backend"
	"github.com/tiwariParth/go-task-tracker/internal/task"
)

// Bootstrap opens the configured backend, loads the saved collection and
// returns a ready TodoApp. The returned closer releases the backend.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*TodoApp, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	kv, err := backend.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	closer := kv.Close

	adapter := storage.NewAdapter(kv,
		storage.WithKey(cfg.StorageKey),
		storage.WithLogger(logger),
	)
	initial, err := adapter.Load(ctx)
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}

	ids, err := task.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	store, err := task.NewTaskStore(initial,
		task.WithIDGenerator(ids),
		task.WithPersister(adapter),
		task.WithLogger(logger),
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	dates := format.NewDateFormatter(cfg.Locale)
	logger.Debug("tasks loaded",
		"backend", cfg.Backend,
		"key", adapter.Key(),
		"count", store.Len(),
		"locale", dates.Locale().String(),
	)

	return NewTodoApp(store, session.New(), WithDateFormatter(dates)), closer, nil
}
