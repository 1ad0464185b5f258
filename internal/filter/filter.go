// Package filter derives filtered views of a task collection without
// mutating it.
package filter

import (
	"fmt"
	"strings"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Criteria narrows a collection by date and/or status. A nil field places no
// constraint; both present are combined with AND.
type Criteria struct {
	Date   *models.Date
	Status *models.Status
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return c.Date == nil && c.Status == nil
}

// Matches reports whether task satisfies every set constraint.
func (c Criteria) Matches(task models.Task) bool {
	if c.Date != nil && task.Date != *c.Date {
		return false
	}
	if c.Status != nil && task.Status != *c.Status {
		return false
	}
	return true
}

// Apply returns the subsequence of tasks matching c, in the original order.
// The input slice is never modified.
func Apply(tasks []models.Task, c Criteria) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if c.Matches(task) {
			out = append(out, task)
		}
	}
	return out
}

// Parse builds Criteria from raw control values; an empty value is unset.
func Parse(date, status string) (Criteria, error) {
	b := NewTaskFilter()

	if date = strings.TrimSpace(date); date != "" {
		d, err := models.ParseDate(date)
		if err != nil {
			return Criteria{}, fmt.Errorf("date filter: %w", err)
		}
		b.WithDate(d)
	}

	if status = strings.TrimSpace(status); status != "" {
		s, ok := models.ParseStatus(strings.ToLower(status))
		if !ok {
			return Criteria{}, fmt.Errorf("status filter: unknown status %q", status)
		}
		b.WithStatus(s)
	}

	return b.Build(), nil
}

// TaskFilter helps build Criteria with a fluent interface
type TaskFilter struct {
	criteria Criteria
}

// NewTaskFilter creates a new TaskFilter
func NewTaskFilter() *TaskFilter {
	return &TaskFilter{}
}

// WithDate adds a date constraint
func (tf *TaskFilter) WithDate(date models.Date) *TaskFilter {
	tf.criteria.Date = &date
	return tf
}

// WithStatus adds a status constraint
func (tf *TaskFilter) WithStatus(status models.Status) *TaskFilter {
	tf.criteria.Status = &status
	return tf
}

// Build creates the final Criteria
func (tf *TaskFilter) Build() Criteria {
	return tf.criteria
}
