package server

import (
	"github.com/tiwariParth/go-task-tracker/internal/app"
	"github.com/tiwariParth/go-task-tracker/internal/view"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Tasks  int    `json:"tasks"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ActionResponse carries the notice of a mutation and the refreshed view.
type ActionResponse struct {
	Notice app.Notice `json:"notice"`
	View   view.View  `json:"view"`
}

// SessionResponse describes the edit session.
type SessionResponse struct {
	State     string   `json:"state"`
	EditingID string   `json:"editingId,omitempty"`
	Form      app.Form `json:"form"`
}
