// @title       Filmorate API
// @version     1.0
// @description Фильмы, пользователи, лайки и дружба.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/server"
	"filmorate/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	appLog := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := run(cfg, appLog); err != nil {
		appLog.Error("server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLog logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *database.DB
	if cfg.UsesPostgres() {
		var err error
		db, err = database.NewConnection(&cfg.Database, cfg.AppEnv, appLog)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				appLog.Error("database close failed", map[string]any{"error": err.Error()})
			}
		}()

		// мигратор использует то же соединение, поэтому не закрываем его отдельно
		migrator, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		if err := migrator.EnsureUp(); err != nil {
			if errors.Is(err, database.ErrDirtyState) {
				appLog.Error("database schema is dirty, run cmd/migrate -force", nil)
			}
			return err
		}
	}

	srv, err := server.NewServer(cfg, db, appLog)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
