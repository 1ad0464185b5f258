package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// record is the persisted shape of one task. Every field is a plain string so
// that a single odd value never fails the whole collection.
type record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Encode serializes the collection as a JSON array, preserving order.
func Encode(tasks []models.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, task := range tasks {
		r := record{
			ID:     task.ID,
			Name:   task.Name,
			Date:   task.Date.String(),
			Status: task.Status.String(),
		}
		if !task.CreatedAt.IsZero() {
			r.CreatedAt = task.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		records = append(records, r)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored collection. It returns ErrMalformed when the payload
// is not a JSON array. Elements missing an id, name or valid date are dropped
// and counted in skipped; a missing or unknown status becomes pending and a
// missing createdAt stays zero.
func Decode(data []byte) (tasks []models.Task, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	tasks = make([]models.Task, 0, len(raw))
	for _, element := range raw {
		task, ok := decodeRecord(element)
		if !ok {
			skipped++
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, skipped, nil
}

func decodeRecord(element json.RawMessage) (models.Task, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
		return models.Task{}, false
	}

	r := record{
		ID:        stringField(fields, "id"),
		Name:      stringField(fields, "name"),
		Date:      stringField(fields, "date"),
		Status:    stringField(fields, "status"),
		CreatedAt: stringField(fields, "createdAt"),
	}

	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.Task{}, false
	}

	task := models.Task{
		ID:     r.ID,
		Name:   r.Name,
		Date:   date,
		Status: models.StatusOf(r.Status),
	}
	if r.CreatedAt != "" {
		if createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
			task.CreatedAt = createdAt.UTC()
		}
	}

	if err := task.Validate(); err != nil {
		return models.Task{}, false
	}
	return task, true
}

// stringField returns fields[name] when it holds a JSON string, else "".
func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}
