package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tiwariParth/go-task-tracker/internal/filter"
	"github.com/tiwariParth/go-task-tracker/internal/format"
	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/session"
	"github.com/tiwariParth/go-task-tracker/internal/task"
	"github.com/tiwariParth/go-task-tracker/internal/view"
)

// Boundary errors. Each is paired with a user-facing Notice.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNothingToDelete = errors.New("no tasks to delete")
	ErrNotConfirmed    = errors.New("bulk delete not confirmed")
	ErrInvalidFilter   = errors.New("invalid filter")
)

const incompleteFormMessage = "Please fill in all fields!"

// Submit button labels.
const (
	AddLabel    = "ADD TASK"
	UpdateLabel = "UPDATE TASK"
)

// NoticeKind classifies a notice.
type NoticeKind string

const (
	Success NoticeKind = "success"
	Failure NoticeKind = "error"
)

// Action names the mutation a successful notice reports.
type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
	Cleared Action = "cleared"
)

// Notice is the transient message shown after a user action.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Action  Action     `json:"action,omitempty"`
}

func success(action Action, msg string) Notice {
	return Notice{Kind: Success, Message: msg, Action: action}
}
func failure(msg string) Notice { return Notice{Kind: Failure, Message: msg} }

// Form is the state of the shared create/edit form.
type Form struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	SubmitLabel string `json:"submitLabel"`
	EditingID   string `json:"editingId,omitempty"`
}

// TodoApp handles user events: it validates input, routes submits through
// the edit session, and derives the filtered view. Events are serialized.
type TodoApp struct {
	store    *task.TaskStore
	session  *session.Controller
	dates    *format.DateFormatter
	now      func() time.Time
	criteria filter.Criteria
	mu       sync.Mutex
}

// Option configures a TodoApp.
type Option func(*TodoApp)

// WithDateFormatter sets the formatter used for view dates.
func WithDateFormatter(f *format.DateFormatter) Option {
	return func(a *TodoApp) { a.dates = f }
}

// WithClock sets the clock that supplies the form's default date.
func WithClock(now func() time.Time) Option {
	return func(a *TodoApp) { a.now = now }
}

// NewTodoApp wires a store and an edit session.
func NewTodoApp(store *task.TaskStore, sess *session.Controller, opts ...Option) *TodoApp {
	if sess == nil {
		sess = session.New()
	}
	a := &TodoApp{
		store:   store,
		session: sess,
		dates:   format.NewDateFormatter("en-US"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewForm returns a blank form dated today with status pending.
func (a *TodoApp) NewForm() Form {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.blankForm()
}

func (a *TodoApp) blankForm() Form {
	return Form{
		Date:        models.DateOf(a.now()).String(),
		Status:      models.Pending.String(),
		SubmitLabel: AddLabel,
	}
}

// Submit validates in and creates a task, or updates the one in edit. The
// notice's Action tells which happened. The session returns to idle after
// any valid submit.
func (a *TodoApp) Submit(ctx context.Context, in models.Input) (Notice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.submit(ctx, in)
}

func (a *TodoApp) submit(ctx context.Context, in models.Input) (Notice, error) {
	fields, err := in.Validate()
	if err != nil {
		return failure(incompleteFormMessage), err
	}
	defer a.session.Reset()

	id, editing := a.session.EditingID()
	if !editing {
		if _, err := a.store.Create(ctx, fields.Name, fields.Date, fields.Status); err != nil {
			return failure("Task could not be saved!"), err
		}
		return success(Created, "Task added successfully!"), nil
	}

	found, err := a.store.Update(ctx, id, fields.Name, fields.Date, fields.Status)
	if err != nil {
		return failure("Task could not be saved!"), err
	}
	if !found {
		return failure("Task no longer exists!"), fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return success(Updated, "Task updated successfully!"), nil
}

// BeginEdit puts id in edit and returns the form pre-filled with its values.
func (a *TodoApp) BeginEdit(id string) (Form, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.beginEdit(id)
}

func (a *TodoApp) beginEdit(id string) (Form, error) {
	t, ok := a.store.Get(id)
	if !ok {
		return Form{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	a.session.Begin(id)
	return editForm(t), nil
}

func editForm(t models.Task) Form {
	return Form{
		Name:        t.Name,
		Date:        t.Date.String(),
		Status:      t.Status.String(),
		SubmitLabel: UpdateLabel,
		EditingID:   t.ID,
	}
}

// CurrentForm returns the form for the task in edit, or a blank form.
func (a *TodoApp) CurrentForm() Form {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id, editing := a.session.EditingID(); editing {
		if t, ok := a.store.Get(id); ok {
			return editForm(t)
		}
	}
	return a.blankForm()
}

// CancelEdit abandons any edit in progress and returns a blank form.
func (a *TodoApp) CancelEdit() Form {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session.Reset()
	return a.blankForm()
}

// Edit updates id in one step. Empty fields of in keep the task's current
// value. The edit session is left untouched.
func (a *TodoApp) Edit(ctx context.Context, id string, in models.Input) (Notice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.store.Get(id)
	if !ok {
		return failure("Task no longer exists!"), fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if in.Name == "" {
		in.Name = current.Name
	}
	if in.Date == "" {
		in.Date = current.Date.String()
	}
	if in.Status == "" {
		in.Status = current.Status.String()
	}
	fields, err := in.Validate()
	if err != nil {
		return failure(incompleteFormMessage), err
	}

	found, err := a.store.Update(ctx, id, fields.Name, fields.Date, fields.Status)
	if err != nil {
		return failure("Task could not be saved!"), err
	}
	if !found {
		return failure("Task no longer exists!"), fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return success(Updated, "Task updated successfully!"), nil
}

// Delete removes id. A stale id is reported but changes nothing.
func (a *TodoApp) Delete(ctx context.Context, id string) (Notice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed, err := a.store.Delete(ctx, id)
	if err != nil {
		return failure("Task could not be deleted!"), err
	}
	if !removed {
		return failure("Task no longer exists!"), fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if editingID, editing := a.session.EditingID(); editing && editingID == id {
		a.session.Reset()
	}
	return success(Deleted, "Task deleted successfully!"), nil
}

// DeleteAll clears every task once confirm approves. With no tasks it
// returns ErrNothingToDelete without asking.
func (a *TodoApp) DeleteAll(ctx context.Context, confirm func() bool) (Notice, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store.Len() == 0 {
		return failure("No tasks to delete!"), ErrNothingToDelete
	}
	if confirm == nil || !confirm() {
		return Notice{}, ErrNotConfirmed
	}
	if err := a.store.ClearAll(ctx); err != nil {
		return failure("Tasks could not be deleted!"), err
	}
	a.session.Reset()
	return success(Cleared, "All tasks deleted successfully!"), nil
}

// Filter sets the current filter from raw control values and returns the view.
func (a *TodoApp) Filter(date, status string) (view.View, error) {
	criteria, err := filter.Parse(date, status)
	if err != nil {
		return view.View{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.criteria = criteria
	return view.Build(a.store.List(), a.criteria, a.dates), nil
}

// ClearFilter drops both filters and returns the full view.
func (a *TodoApp) ClearFilter() view.View {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.criteria = filter.Criteria{}
	return view.Build(a.store.List(), a.criteria, a.dates)
}

// View returns the view under the current filter.
func (a *TodoApp) View() view.View {
	a.mu.Lock()
	defer a.mu.Unlock()

	return view.Build(a.store.List(), a.criteria, a.dates)
}

// Tasks returns the full collection, newest first.
func (a *TodoApp) Tasks() []models.Task {
	return a.store.List()
}

// Session reports the edit-session state.
func (a *TodoApp) Session() (session.State, string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, _ := a.session.EditingID()
	return a.session.State(), id
}
