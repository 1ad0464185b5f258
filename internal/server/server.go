// Package server exposes a TodoApp over a local JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tiwariParth/go-task-tracker/internal/app"
)

const shutdownTimeout = 5 * time.Second

// Server serves one TodoApp.
type Server struct {
	app    *app.TodoApp
	fiber  *fiber.App
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds the HTTP routes for a.
func New(a *app.TodoApp, opts ...Option) *Server {
	s := &Server{
		app:    a,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Immutable: the edit session keeps ids taken from request params.
	s.fiber = fiber.New(fiber.Config{
		Immutable:             true,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.fiber.Use(recover.New())
	s.setupRoutes()
	return s
}

// Handler returns the underlying fiber app, mainly for tests.
func (s *Server) Handler() *fiber.App {
	return s.fiber
}

// Run listens on addr until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.fiber.Listen(addr)
	}()
	s.logger.Info("http server started", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server stopping")
	if err := s.fiber.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
