// Package session tracks whether the shared task form is creating a new task
// or editing an existing one.
package session

// State is the edit-session state.
type State int

const (
	// Idle means the next submit creates a task.
	Idle State = iota
	// Editing means the next submit updates the tracked task.
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Controller holds at most one task id in edit at a time.
type Controller struct {
	editingID string
	editing   bool
}

// New returns an idle controller.
func New() *Controller {
	return &Controller{}
}

// Begin starts editing id, replacing any task already in edit.
func (c *Controller) Begin(id string) {
	c.editingID = id
	c.editing = true
}

// Reset returns to Idle.
func (c *Controller) Reset() {
	c.editingID = ""
	c.editing = false
}

// EditingID returns the id in edit, if any.
func (c *Controller) EditingID() (string, bool) {
	return c.editingID, c.editing
}

// State returns the current state.
func (c *Controller) State() State {
	if c.editing {
		return Editing
	}
	return Idle
}
