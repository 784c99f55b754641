// Package httpapi exposes the task and user services as a JSON REST API
// under /api.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type TaskService interface {
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, in services.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id string, in services.TaskInput) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, pairs []models.TaskOrder) error
	Toggle(ctx context.Context, id string, completed bool) (*models.Task, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.UserSummary, error)
	Get(ctx context.Context, id string) (*models.UserSummary, error)
	Create(ctx context.Context, in services.UserInput) (*models.UserSummary, error)
	Update(ctx context.Context, id string, in services.UserInput) error
	Delete(ctx context.Context, id string) error
}

type Options struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type Server struct {
	opts   Options
	tasks  TaskService
	users  UserService
	logger logging.Logger
	router *gin.Engine
}

func NewServer(opts Options, l logging.Logger, ts TaskService, us UserService) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		opts:   opts,
		tasks:  ts,
		users:  us,
		logger: l.With("module", "http_server"),
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger))
	if len(opts.AllowedOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.AllowedOrigins
		cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
		cfg.ExposeHeaders = []string{"Location"}
		router.Use(cors.New(cfg))
	}

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PATCH("/tasks/reorder", s.handleReorderTasks)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.PATCH("/tasks/:id/toggle", s.handleToggleTask)

		api.GET("/users", s.handleListUsers)
		api.POST("/users", s.handleCreateUser)
		api.GET("/users/:id", s.handleGetUser)
		api.PUT("/users/:id", s.handleUpdateUser)
		api.DELETE("/users/:id", s.handleDeleteUser)
	}

	s.router = router
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
