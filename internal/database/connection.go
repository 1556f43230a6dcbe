package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"filmorate/internal/config"
	"filmorate/pkg/logger"
)

// Константы для значений по умолчанию пула соединений
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
)

// DB представляет подключение к базе данных
type DB struct {
	*gorm.DB
	log logger.Logger
}

// NewConnection создает новое подключение к PostgreSQL.
// Окружение приложения влияет только на подробность логов GORM.
//
// Пример использования:
//
//	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func NewConnection(cfg *config.DatabaseConfig, appEnv string, log logger.Logger) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация базы данных не может быть nil")
	}

	log.Info("connecting to database", map[string]any{"host": cfg.Host, "db": cfg.DBName})

	gormLog := gormlogger.Default.LogMode(gormlogger.Warn)
	if strings.EqualFold(appEnv, "development") {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpenConns))
	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdleConns))
	sqlDB.SetConnMaxLifetime(orDefault(cfg.ConnMaxLifetime, defaultConnMaxLifetime))
	sqlDB.SetConnMaxIdleTime(orDefault(cfg.ConnMaxIdleTime, defaultConnMaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка проверки подключения к базе данных: %w", err)
	}

	log.Info("database connection established", nil)
	return &DB{DB: db, log: log}, nil
}

// Close закрывает подключение к базе данных.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB для закрытия: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия подключения к базе данных: %w", err)
	}

	db.log.Info("database connection closed", nil)
	return nil
}

// Ping проверяет доступность базы данных. Используется в /health/db.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ошибка ping базы данных: %w", err)
	}

	return nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
