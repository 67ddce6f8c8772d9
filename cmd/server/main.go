// Package main implements the entry point for the task API server, which
// serves task CRUD and bearer-token authentication over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/n0secutiry/taskapi/internal/config"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
	"github.com/n0secutiry/taskapi/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up|down|status|version|reset) and exit")
	flag.Parse()

	cfg, l, err := initializeApp()
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		l.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		err := postgres.Migrate(ctx, db, *migrateCmd, l)
		if cerr := db.Close(); cerr != nil {
			l.Warn("failed to close database", "error", cerr)
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
			_ = db.Close()
			os.Exit(1)
		}
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		l.Error("failed to initialize application", "error", err)
		_ = db.Close()
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"queue_backend", cfg.Queue.Backend)

	return cfg, l, nil
}

func fatal(err error) {
	log.Fatalf("Failed to initialize application: %v", err)
}
