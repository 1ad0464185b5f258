package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Status represents the current status of a task
type Status int

// Pending is the zero value so that a missing or unknown status falls back to it.
const (
	Pending Status = iota
	InProgress
	Completed
)

// Statuses lists every status in display order
var Statuses = []Status{Pending, InProgress, Completed}

// String returns the canonical wire value of the status
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	default:
		return "pending"
	}
}

// ParseStatus converts a wire value to a Status, reporting whether it was recognized
func ParseStatus(value string) (Status, bool) {
	switch value {
	case "pending":
		return Pending, true
	case "in-progress":
		return InProgress, true
	case "completed":
		return Completed, true
	default:
		return Pending, false
	}
}

// StatusOf converts a wire value to a Status, defaulting to Pending
func StatusOf(value string) Status {
	s, _ := ParseStatus(value)
	return s
}

// MarshalJSON encodes the status as its wire value
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire value; unknown values become Pending
func (s *Status) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		*s = Pending
		return nil
	}
	*s = StatusOf(value)
	return nil
}

// Task represents a tracked to-do item
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      Date      `json:"date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks that the task carries every required field
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("task id cannot be empty")
	}
	if t.Name == "" {
		return errors.New("task name cannot be empty")
	}
	if t.Date.IsZero() {
		return errors.New("task date cannot be empty")
	}
	return nil
}
