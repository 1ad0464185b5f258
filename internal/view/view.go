// Package view turns a task collection and filter criteria into the data a
// presentation layer renders.
package view

import (
	"github.com/tiwariParth/go-task-tracker/internal/filter"
	"github.com/tiwariParth/go-task-tracker/internal/format"
	"github.com/tiwariParth/go-task-tracker/internal/models"
)

// Empty-state messages.
const (
	NoTasksMessage   = "No tasks yet. Add your first task above!"
	NoMatchesMessage = "No tasks match the selected filter."
)

// Row is one display-ready task. Name is already escaped.
type Row struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	StatusClass string `json:"statusClass"`
}

// View is the rendered state of the task table.
type View struct {
	Rows     []Row  `json:"rows"`
	Empty    string `json:"empty,omitempty"`
	Total    int    `json:"total"`
	Filtered bool   `json:"filtered"`
}

// Build filters all by c and formats the remaining tasks. A nil dates
// formatter uses US English.
func Build(all []models.Task, c filter.Criteria, dates *format.DateFormatter) View {
	if dates == nil {
		dates = format.NewDateFormatter("en-US")
	}

	visible := filter.Apply(all, c)
	v := View{
		Rows:     make([]Row, 0, len(visible)),
		Total:    len(all),
		Filtered: !c.IsZero(),
	}

	switch {
	case len(all) == 0:
		v.Empty = NoTasksMessage
	case len(visible) == 0:
		v.Empty = NoMatchesMessage
	}

	for i, task := range visible {
		v.Rows = append(v.Rows, Row{
			Index:       i + 1,
			ID:          task.ID,
			Name:        format.Escape(task.Name),
			Date:        dates.Format(task.Date),
			Status:      format.StatusLabel(task.Status),
			StatusClass: format.StatusClass(task.Status),
		})
	}
	return v
}
