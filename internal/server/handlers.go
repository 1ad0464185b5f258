package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/tiwariParth/go-task-tracker/internal/app"
	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

func (s *Server) setupRoutes() {
	s.fiber.Get("/health", s.health)

	api := s.fiber.Group("/api")

	tasks := api.Group("/tasks")
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.submitTask)
	tasks.Delete("/", s.deleteAllTasks)
	tasks.Put("/:id", s.editTask)
	tasks.Delete("/:id", s.deleteTask)

	session := api.Group("/session")
	session.Get("/", s.getSession)
	session.Put("/:id", s.beginEdit)
	session.Delete("/", s.cancelEdit)

	api.Get("/export", s.export)
}

// health handles GET /health.
func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "healthy", Tasks: len(s.app.Tasks())})
}

// listTasks handles GET /api/tasks?date=&status=.
func (s *Server) listTasks(c *fiber.Ctx) error {
	v, err := s.app.Filter(c.Query("date"), c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_filter",
			Message: err.Error(),
		})
	}
	return c.JSON(v)
}

// submitTask handles POST /api/tasks. It creates a task, or updates the
// task currently in edit.
func (s *Server) submitTask(c *fiber.Ctx) error {
	var in models.Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	notice, err := s.app.Submit(c.UserContext(), in)
	if err != nil {
		return s.actionError(c, notice, err)
	}

	code := fiber.StatusOK
	if notice.Action == app.Created {
		code = fiber.StatusCreated
	}
	return c.Status(code).JSON(ActionResponse{Notice: notice, View: s.app.View()})
}

// editTask handles PUT /api/tasks/:id. Omitted fields keep their values.
func (s *Server) editTask(c *fiber.Ctx) error {
	var in models.Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	notice, err := s.app.Edit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return s.actionError(c, notice, err)
	}
	return c.JSON(ActionResponse{Notice: notice, View: s.app.View()})
}

// deleteTask handles DELETE /api/tasks/:id.
func (s *Server) deleteTask(c *fiber.Ctx) error {
	notice, err := s.app.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.actionError(c, notice, err)
	}
	return c.JSON(ActionResponse{Notice: notice, View: s.app.View()})
}

// deleteAllTasks handles DELETE /api/tasks?confirm=true.
func (s *Server) deleteAllTasks(c *fiber.Ctx) error {
	confirmed := c.QueryBool("confirm", false)
	notice, err := s.app.DeleteAll(c.UserContext(), func() bool { return confirmed })
	if err != nil {
		return s.actionError(c, notice, err)
	}
	return c.JSON(ActionResponse{Notice: notice, View: s.app.View()})
}

// getSession handles GET /api/session.
func (s *Server) getSession(c *fiber.Ctx) error {
	state, id := s.app.Session()
	return c.JSON(SessionResponse{State: state.String(), EditingID: id, Form: s.app.CurrentForm()})
}

// beginEdit handles PUT /api/session/:id.
func (s *Server) beginEdit(c *fiber.Ctx) error {
	form, err := s.app.BeginEdit(utils.CopyString(c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	}
	state, id := s.app.Session()
	return c.JSON(SessionResponse{State: state.String(), EditingID: id, Form: form})
}

// cancelEdit handles DELETE /api/session.
func (s *Server) cancelEdit(c *fiber.Ctx) error {
	form := s.app.CancelEdit()
	state, _ := s.app.Session()
	return c.JSON(SessionResponse{State: state.String(), Form: form})
}

// export handles GET /api/export?format=json|csv.
func (s *Server) export(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", "json"))
	data, err := storage.Export(s.app.Tasks(), format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_format",
			Message: err.Error(),
		})
	}

	if format == "csv" {
		c.Set(fiber.HeaderContentType, "text/csv")
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return c.Send(data)
}

func (s *Server) actionError(c *fiber.Ctx, notice app.Notice, err error) error {
	code := fiber.StatusInternalServerError
	kind := "storage_error"

	switch {
	case errors.Is(err, models.ErrValidation):
		code, kind = fiber.StatusBadRequest, "validation_error"
	case errors.Is(err, app.ErrTaskNotFound):
		code, kind = fiber.StatusNotFound, "not_found"
	case errors.Is(err, app.ErrNothingToDelete):
		code, kind = fiber.StatusConflict, "nothing_to_delete"
	case errors.Is(err, app.ErrNotConfirmed):
		code, kind = fiber.StatusPreconditionRequired, "not_confirmed"
		notice.Message = "Pass confirm=true to delete all tasks."
	default:
		s.logger.Error("task mutation not persisted", "path", c.Path(), "error", err)
	}

	message := notice.Message
	if message == "" {
		message = err.Error()
	}
	return c.Status(code).JSON(ErrorResponse{Error: kind, Message: message})
}
