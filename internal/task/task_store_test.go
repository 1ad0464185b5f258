package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
	"github.com/tiwariParth/go-task-tracker/internal/storage/memory"
)

var (
	june1 = models.Date{Year: 2024, Month: time.June, Day: 1}
	june2 = models.Date{Year: 2024, Month: time.June, Day: 2}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequentialIDs() IDGenerator {
	n := 0
	return IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	})
}

func newTestStore(t *testing.T, initial []models.Task, opts ...Option) *TaskStore {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs()), WithLogger(quietLogger())}, opts...)
	ts, err := NewTaskStore(initial, opts...)
	require.NoError(t, err)
	return ts
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

type recordingPersister struct {
	saves [][]models.Task
	err   error
}

func (p *recordingPersister) Save(_ context.Context, tasks []models.Task) error {
	p.saves = append(p.saves, tasks)
	return p.err
}

func TestReleaseScenario(t *testing.T) {
	ctx := context.Background()
	ts, err := NewTaskStore(nil, WithLogger(quietLogger()))
	require.NoError(t, err)

	created, err := ts.Create(ctx, "Ship release", june1, models.Pending)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	list := ts.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Ship release", list[0].Name)
	assert.Equal(t, june1, list[0].Date)
	assert.Equal(t, models.Pending, list[0].Status)

	found, err := ts.Update(ctx, created.ID, "Ship release", june2, models.Completed)
	require.NoError(t, err)
	assert.True(t, found)
	list = ts.List()
	assert.Equal(t, "2024-06-02", list[0].Date.String())
	assert.Equal(t, models.Completed, list[0].Status)

	removed, err := ts.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, ts.List())
}

func TestCreatePrependsAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, nil)

	for i := 0; i < 4; i++ {
		_, err := ts.Create(ctx, fmt.Sprintf("task %d", i), june1, models.Pending)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"t4", "t3", "t2", "t1"}, ids(ts.List()))

	task, err := ts.Create(ctx, "newest", june1, models.InProgress)
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID, "t4", "t3", "t2", "t1"}, ids(ts.List()))
}

func TestCreateStampsCreatedAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 30, 45, 987_654_321, time.FixedZone("X", 3600))
	ts := newTestStore(t, nil, WithClock(func() time.Time { return now }))

	task, err := ts.Create(context.Background(), "n", june1, models.Pending)
	require.NoError(t, err)
	assert.True(t, task.CreatedAt.Equal(time.Date(2024, 6, 1, 11, 30, 45, 987_000_000, time.UTC)))
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
}

func TestIDsAreDistinctForRandomSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	ts, err := NewTaskStore(nil, WithLogger(quietLogger()))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		switch list := ts.List(); {
		case len(list) > 0 && rng.Intn(4) == 0:
			_, err := ts.Delete(ctx, list[rng.Intn(len(list))].ID)
			require.NoError(t, err)
		default:
			task, err := ts.Create(ctx, "n", june1, models.Pending)
			require.NoError(t, err)
			require.False(t, seen[task.ID], "id %s issued twice", task.ID)
			seen[task.ID] = true
		}
	}
}

func TestCreateRetriesCollidingIDs(t *testing.T) {
	ctx := context.Background()
	values := []string{"dup", "dup", "", "fresh"}
	gen := IDGeneratorFunc(func() string {
		v := values[0]
		values = values[1:]
		return v
	})
	ts := newTestStore(t, []models.Task{{ID: "dup", Name: "old", Date: june1}}, WithIDGenerator(gen))

	task, err := ts.Create(ctx, "new", june1, models.Pending)
	require.NoError(t, err)
	assert.Equal(t, "fresh", task.ID)
}

func TestCreateNeverReusesDeletedIDs(t *testing.T) {
	ctx := context.Background()
	calls := 0
	gen := IDGeneratorFunc(func() string {
		calls++
		if calls <= 2 {
			return "same"
		}
		return "other"
	})
	ts := newTestStore(t, nil, WithIDGenerator(gen))

	first, err := ts.Create(ctx, "a", june1, models.Pending)
	require.NoError(t, err)
	_, err = ts.Delete(ctx, first.ID)
	require.NoError(t, err)

	second, err := ts.Create(ctx, "b", june1, models.Pending)
	require.NoError(t, err)
	assert.Equal(t, "other", second.ID)
}

func TestCreateGivesUpOnStuckGenerator(t *testing.T) {
	ts := newTestStore(t,
		[]models.Task{{ID: "stuck", Name: "x", Date: june1}},
		WithIDGenerator(IDGeneratorFunc(func() string { return "stuck" })))

	_, err := ts.Create(context.Background(), "n", june1, models.Pending)
	require.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, 1, ts.Len())
}

func TestUpdateChangesOnlyMutableFields(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, nil)
	for _, name := range []string{"a", "b", "c"} {
		_, err := ts.Create(ctx, name, june1, models.Pending)
		require.NoError(t, err)
	}
	before := ts.List()

	found, err := ts.Update(ctx, "t2", "renamed", june2, models.InProgress)
	require.NoError(t, err)
	require.True(t, found)

	after := ts.List()
	assert.Equal(t, ids(before), ids(after))
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])

	assert.Equal(t, "t2", after[1].ID)
	assert.Equal(t, before[1].CreatedAt, after[1].CreatedAt)
	assert.Equal(t, "renamed", after[1].Name)
	assert.Equal(t, june2, after[1].Date)
	assert.Equal(t, models.InProgress, after[1].Status)
}

func TestUpdateMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	ts := newTestStore(t, nil, WithPersister(p))
	_, err := ts.Create(ctx, "a", june1, models.Pending)
	require.NoError(t, err)
	before := ts.List()

	found, err := ts.Update(ctx, "missing", "x", june2, models.Completed)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, ts.List())
	assert.Len(t, p.saves, 1)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, nil)
	for i := 0; i < 5; i++ {
		_, err := ts.Create(ctx, "n", june1, models.Pending)
		require.NoError(t, err)
	}

	removed, err := ts.Delete(ctx, "t3")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"t5", "t4", "t2", "t1"}, ids(ts.List()))

	removed, err = ts.Delete(ctx, "t3")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []string{"t5", "t4", "t2", "t1"}, ids(ts.List()))
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	for _, size := range []int{0, 1, 7} {
		t.Run(fmt.Sprint(size), func(t *testing.T) {
			ts := newTestStore(t, nil)
			for i := 0; i < size; i++ {
				_, err := ts.Create(ctx, "n", june1, models.Pending)
				require.NoError(t, err)
			}
			require.NoError(t, ts.ClearAll(ctx))
			assert.Empty(t, ts.List())
			assert.Equal(t, 0, ts.Len())
		})
	}
}

func TestListIsASnapshot(t *testing.T) {
	ctx := context.Background()
	ts := newTestStore(t, nil)
	_, err := ts.Create(ctx, "a", june1, models.Pending)
	require.NoError(t, err)

	snapshot := ts.List()
	snapshot[0].Name = "tampered"
	_, err = ts.Create(ctx, "b", june1, models.Pending)
	require.NoError(t, err)

	assert.Len(t, snapshot, 1)
	got, ok := ts.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)
}

func TestNewTaskStoreDropsDuplicateIDs(t *testing.T) {
	ts := newTestStore(t, []models.Task{
		{ID: "a", Name: "first", Date: june1},
		{ID: "b", Name: "other", Date: june1},
		{ID: "a", Name: "second", Date: june2},
	})
	list := ts.List()
	assert.Equal(t, []string{"a", "b"}, ids(list))
	assert.Equal(t, "first", list[0].Name)
}

func TestMutationsPersistFullCollection(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	ts := newTestStore(t, nil, WithPersister(p))

	_, err := ts.Create(ctx, "a", june1, models.Pending)
	require.NoError(t, err)
	_, err = ts.Create(ctx, "b", june1, models.Pending)
	require.NoError(t, err)
	_, err = ts.Update(ctx, "t1", "a2", june1, models.Completed)
	require.NoError(t, err)
	_, err = ts.Delete(ctx, "t2")
	require.NoError(t, err)
	require.NoError(t, ts.ClearAll(ctx))

	require.Len(t, p.saves, 5)
	assert.Equal(t, []string{"t1"}, ids(p.saves[0]))
	assert.Equal(t, []string{"t2", "t1"}, ids(p.saves[1]))
	assert.Equal(t, "a2", p.saves[2][1].Name)
	assert.Equal(t, []string{"t1"}, ids(p.saves[3]))
	assert.Empty(t, p.saves[4])
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	p := &recordingPersister{err: errors.New("quota exceeded")}
	ts := newTestStore(t, nil, WithPersister(p))

	task, err := ts.Create(context.Background(), "a", june1, models.Pending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, 1, ts.Len())
}

func TestStoreRehydratesThroughAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewAdapter(memory.NewMemoryStore(), storage.WithLogger(quietLogger()))

	ts := newTestStore(t, nil, WithPersister(adapter))
	for _, name := range []string{"a", "b", "c"} {
		_, err := ts.Create(ctx, name, june1, models.InProgress)
		require.NoError(t, err)
	}

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	rehydrated := newTestStore(t, loaded)
	assert.Equal(t, ts.List(), rehydrated.List())
}

func TestTimeRandomIDs(t *testing.T) {
	gen, err := NewTimeRandomIDs()
	require.NoError(t, err)
	gen.now = func() time.Time { return time.UnixMilli(1717200000000) }

	id := gen.NewID()
	assert.True(t, strings.HasPrefix(id, "lwvcjk00"), id)
	assert.Len(t, id, len("lwvcjk00")+suffixLength)
	for _, r := range id {
		assert.Contains(t, base36Alphabet, string(r))
	}
	assert.NotEqual(t, id, gen.NewID())
}

func TestNewIDGenerator(t *testing.T) {
	gen, err := NewIDGenerator("")
	require.NoError(t, err)
	assert.IsType(t, &TimeRandomIDs{}, gen)

	gen, err = NewIDGenerator(SchemeUUID)
	require.NoError(t, err)
	assert.Len(t, gen.NewID(), 36)

	_, err = NewIDGenerator("sequential")
	assert.Error(t, err)
}
