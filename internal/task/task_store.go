package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// maxIDAttempts bounds how many generated ids may collide before Create gives up.
const maxIDAttempts = 16

// ErrIDExhausted is returned when the generator keeps producing taken ids.
var ErrIDExhausted = errors.New("could not generate a unique task id")

// Persister writes the full collection after every mutation.
type Persister interface {
	Save(ctx context.Context, tasks []models.Task) error
}

// TaskStore owns the ordered task collection, newest first.
type TaskStore struct {
	tasks   []models.Task
	issued  map[string]struct{} // every id seen during the store's lifetime
	ids     IDGenerator
	now     func() time.Time
	persist Persister
	logger  *slog.Logger
	mu      sync.Mutex
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithIDGenerator replaces the default time-plus-random generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(ts *TaskStore) { ts.ids = ids }
}

// WithClock sets the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(ts *TaskStore) { ts.now = now }
}

// WithPersister sets where the collection is written after each mutation.
func WithPersister(p Persister) Option {
	return func(ts *TaskStore) { ts.persist = p }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ts *TaskStore) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTaskStore initializes a TaskStore from a previously loaded collection.
// Later duplicates of an id are dropped so each id appears once.
func NewTaskStore(initial []models.Task, opts ...Option) (*TaskStore, error) {
	ts := &TaskStore{
		issued: make(map[string]struct{}, len(initial)),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ts)
	}
	if ts.ids == nil {
		ids, err := NewTimeRandomIDs()
		if err != nil {
			return nil, err
		}
		ts.ids = ids
	}

	ts.tasks = make([]models.Task, 0, len(initial))
	for _, task := range initial {
		if _, dup := ts.issued[task.ID]; dup {
			ts.logger.Warn("dropping duplicate task id", "id", task.ID)
			continue
		}
		ts.issued[task.ID] = struct{}{}
		ts.tasks = append(ts.tasks, task)
	}
	return ts, nil
}

// Create prepends a new task and persists the collection. The task is kept in
// memory even when persisting fails; the error is returned alongside it.
func (ts *TaskStore) Create(ctx context.Context, name string, date models.Date, status models.Status) (models.Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	id, err := ts.nextID()
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:        id,
		Name:      name,
		Date:      date,
		Status:    status,
		CreatedAt: ts.now().UTC().Truncate(time.Millisecond),
	}

	ts.issued[id] = struct{}{}
	ts.tasks = slices.Insert(ts.tasks, 0, task)
	return task, ts.save(ctx, "create")
}

// Update replaces name, date and status of the task with id in place.
// It reports whether the task was found; a miss changes nothing.
func (ts *TaskStore) Update(ctx context.Context, id, name string, date models.Date, status models.Status) (bool, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	i := ts.indexOf(id)
	if i < 0 {
		return false, nil
	}

	ts.tasks[i].Name = name
	ts.tasks[i].Date = date
	ts.tasks[i].Status = status
	return true, ts.save(ctx, "update")
}

// Delete removes the task with id, reporting whether one was removed.
func (ts *TaskStore) Delete(ctx context.Context, id string) (bool, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	i := ts.indexOf(id)
	if i < 0 {
		return false, nil
	}

	ts.tasks = slices.Delete(ts.tasks, i, i+1)
	return true, ts.save(ctx, "delete")
}

// ClearAll empties the collection unconditionally. Issued ids stay reserved.
func (ts *TaskStore) ClearAll(ctx context.Context) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.tasks = []models.Task{}
	return ts.save(ctx, "clear")
}

// List returns a snapshot of the collection, newest first.
func (ts *TaskStore) List() []models.Task {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return slices.Clone(ts.tasks)
}

// Get returns the task with id.
func (ts *TaskStore) Get(id string) (models.Task, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	i := ts.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return ts.tasks[i], true
}

// Len returns the number of tasks.
func (ts *TaskStore) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return len(ts.tasks)
}

func (ts *TaskStore) indexOf(id string) int {
	return slices.IndexFunc(ts.tasks, func(t models.Task) bool { return t.ID == id })
}

func (ts *TaskStore) nextID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := ts.ids.NewID()
		if id == "" {
			continue
		}
		if _, taken := ts.issued[id]; !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (ts *TaskStore) save(ctx context.Context, op string) error {
	if ts.persist == nil {
		return nil
	}
	if err := ts.persist.Save(ctx, slices.Clone(ts.tasks)); err != nil {
		ts.logger.Error("failed to persist tasks", "op", op, "error", err)
		return fmt.Errorf("persist after %s: %w", op, err)
	}
	return nil
}
