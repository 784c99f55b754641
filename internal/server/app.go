// Package server wires configuration, storage, services, the HTTP API and
// the backup scheduler into one runnable application.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/backup"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// newUploader is a seam for tests.
var newUploader = func(ctx context.Context, o backup.S3Options) (backup.Uploader, error) {
	return backup.NewS3Uploader(ctx, o)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	taskService *services.TaskService
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	rm, err := repomanager.New(ctx, c.StorageDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		taskService: services.NewTaskService(rm, logger),
		userService: services.NewUserService(rm, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newExporter(ctx context.Context) (*backup.Exporter, error) {
	up, err := newUploader(ctx, backup.S3Options{
		User:         app.config.S3RootUser,
		Password:     app.config.S3RootPassword,
		Region:       app.config.S3Region,
		BaseEndpoint: app.config.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	return backup.NewExporter(app.repomanager, up, app.config.S3Bucket, app.logger), nil
}

// BackupNow exports a single snapshot.
func (app *App) BackupNow(ctx context.Context) error {
	e, err := app.newExporter(ctx)
	if err != nil {
		return err
	}
	_, err = e.Export(ctx)
	return err
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(httpapi.Options{
		Address:         app.config.EndpointAddr,
		AllowedOrigins:  app.config.CORSAllowedOrigins,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, app.taskService, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBackupScheduler(ctx context.Context, cancelFunc context.CancelFunc) {
	e, err := app.newExporter(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	sched, err := backup.NewScheduler(app.config.BackupSchedule, func(ctx context.Context) error {
		_, err := e.Export(ctx)
		return err
	}, app.logger)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	sched.Run(ctx)
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.BackupSchedule != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startBackupScheduler(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
