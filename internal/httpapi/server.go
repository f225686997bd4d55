// Package httpapi exposes the task lifecycle over JSON/HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"daily-tasks/internal/service"
)

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the task API server.
type Server struct {
	tasks  *service.TaskService
	users  *service.UserService
	health Pinger
	logger *log.Logger
	router *gin.Engine
}

// NewServer creates the server and registers every route under both the
// /api/tasks and /tasks prefixes.
func NewServer(tasks *service.TaskService, users *service.UserService, health Pinger, logger *log.Logger) *Server {
	router := gin.New()

	s := &Server{
		tasks:  tasks,
		users:  users,
		health: health,
		logger: logger.With("component", "http"),
		router: router,
	}

	router.Use(requestID(), s.requestLogger(), s.recovery())
	router.GET("/healthz", s.handleHealth)

	for _, prefix := range []string{"/api/tasks", "/tasks"} {
		g := router.Group(prefix, s.withUser)
		{
			g.GET("", s.handleList)
			g.POST("", s.handleCreate)
			g.POST("/rollover", s.handleRolloverAll)
			g.POST("/ai-suggestions", s.handleSuggestions)
			g.GET("/:id", s.handleGet)
			g.PUT("/:id", s.handleUpdate)
			g.DELETE("/:id", s.handleDelete)
			g.POST("/:id/incomplete-reason", s.handleIncompleteReason)
			g.POST("/:id/rollover", s.handleRolloverOne)
			g.POST("/:id/reflection", s.handleReflection)
			g.POST("/:id/ai-feedback", s.handleFeedback)
		}
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
