package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/n0secutiry/taskapi/internal/config"
	"github.com/n0secutiry/taskapi/internal/job"
	"github.com/n0secutiry/taskapi/internal/platform/postgres"
	"github.com/n0secutiry/taskapi/internal/platform/redisqueue"
	"github.com/n0secutiry/taskapi/internal/service"
	"github.com/n0secutiry/taskapi/internal/service/auth"
	"github.com/n0secutiry/taskapi/internal/store"
	redis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	tokenService auth.TokenService
	hasher       auth.PasswordHasher
	authService  service.AuthService
	taskService  service.TaskService

	submitter   job.Submitter
	jobRunner   *job.Runner
	redisClient *redis.Client
}

// newApplication wires stores, services and the job submitter selected by
// queue.backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"algorithm", cfg.Auth.Algorithm,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	transactor := store.NewSQLTransactor(db)

	mailer := job.NewLogMailer(logger, job.DefaultWelcomeMailDelay)
	if err := app.setupSubmitter(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	users := service.NewUserDirectory(app.userStore, app.hasher, transactor, logger)
	app.authService = service.NewAuthService(users, app.hasher, app.tokenService, app.submitter, mailer, logger)
	app.taskService = service.NewTaskService(app.taskStore, transactor, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupSubmitter chooses where welcome-email jobs go. The redis backend only
// enqueues; cmd/worker consumes the list.
func (app *application) setupSubmitter(ctx context.Context) error {
	switch app.config.Queue.Backend {
	case config.QueueBackendRedis:
		client, err := redisqueue.NewClient(ctx, app.config.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect job broker: %w", err)
		}
		app.redisClient = client
		app.submitter = redisqueue.NewQueue(client, app.config.Redis.QueueKey, app.logger)
		app.logger.Info("Redis job queue initialized", "queue_key", app.config.Redis.QueueKey)

	case config.QueueBackendMemory:
		app.jobRunner = job.NewRunner(job.RunnerConfig{
			WorkerCount: app.config.Queue.WorkerCount,
			QueueSize:   app.config.Queue.Size,
			MaxAttempts: app.config.Queue.MaxAttempts,
			RetryDelay:  time.Second,
		}, app.logger)
		app.jobRunner.Start()
		app.submitter = app.jobRunner
		app.logger.Info("In-process job runner started", "workers", app.config.Queue.WorkerCount)

	default:
		app.submitter = job.NewNoopSubmitter(app.logger)
	}
	return nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.jobRunner != nil {
		app.jobRunner.Stop()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
