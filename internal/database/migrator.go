package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver

	"filmorate/internal/config"
	"filmorate/internal/database/migrations"
	"filmorate/pkg/logger"
)

var (
	// ErrNoChange возвращается, когда нет миграций для применения.
	ErrNoChange = errors.New("no change")

	// ErrDirtyState возвращается, когда миграция была прервана и требует ручного вмешательства.
	ErrDirtyState = errors.New("database is in dirty state")
)

// Migrator управляет версиями схемы БД через golang-migrate.
// SQL файлы встроены в бинарник (см. пакет migrations).
type Migrator struct {
	m   *migrate.Migrate
	db  *sql.DB
	log logger.Logger
}

// CatalogTables справочники, которые заполняет первая миграция.
var CatalogTables = []string{"mpa", "genres"}

// Status состояние схемы: версия, флаг прерванной миграции и число строк в справочниках.
type Status struct {
	Version uint
	Dirty   bool
	Catalog map[string]int64
}

// NewMigrator создает мигратор поверх уже открытого подключения GORM.
func NewMigrator(db *DB) (*Migrator, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	m, err := newMigrate(sqlDB)
	if err != nil {
		return nil, err
	}
	return &Migrator{m: m, db: sqlDB, log: db.log}, nil
}

// NewMigratorFromConfig открывает отдельное подключение через lib/pq и создает мигратор.
func NewMigratorFromConfig(cfg *config.DatabaseConfig, log logger.Logger) (*Migrator, error) {
	sqlDB, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия подключения: %w", err)
	}

	m, err := newMigrate(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Migrator{m: m, db: sqlDB, log: log}, nil
}

func newMigrate(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания драйвера PostgreSQL: %w", err)
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания источника миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания экземпляра migrate: %w", err)
	}
	return m, nil
}

// Close закрывает подключение мигратора и освобождает ресурсы.
func (m *Migrator) Close() error {
	if m.m == nil {
		return nil
	}
	sourceErr, dbErr := m.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("ошибка закрытия источника миграций: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("ошибка закрытия подключения к БД: %w", dbErr)
	}
	return nil
}

// Up применяет все доступные миграции.
// Возвращает ErrNoChange, если схема уже актуальна.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}
	m.log.Info("migrations applied", nil)
	return nil
}

// Down откатывает все примененные миграции.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return fmt.Errorf("ошибка отката миграций: %w", err)
	}
	m.log.Info("migrations rolled back", nil)
	return nil
}

// Steps применяет (n > 0) или откатывает (n < 0) n миграций.
func (m *Migrator) Steps(n int) error {
	if err := m.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return fmt.Errorf("ошибка применения %d шагов миграции: %w", n, err)
	}
	m.log.Info("migration steps applied", map[string]any{"steps": n})
	return nil
}

// Version возвращает текущую версию схемы и флаг "грязного" состояния.
// Если миграции не применялись, версия равна 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("ошибка получения версии: %w", err)
	}
	return version, dirty, nil
}

// Force устанавливает версию без применения миграций.
// Нужен для восстановления после прерванной миграции.
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("ошибка принудительной установки версии %d: %w", version, err)
	}
	m.log.Warn("migration version forced", map[string]any{"version": version})
	return nil
}

// EnsureUp применяет миграции при старте сервиса. Отсутствие изменений не ошибка,
// грязное состояние схемы возвращает ErrDirtyState.
func (m *Migrator) EnsureUp() error {
	if _, dirty, err := m.Version(); err != nil {
		return err
	} else if dirty {
		return ErrDirtyState
	}
	if err := m.Up(); err != nil && !errors.Is(err, ErrNoChange) {
		return err
	}
	return nil
}

// Status возвращает версию схемы и заполненность справочников.
// Для пустой или грязной схемы справочники не читаются.
func (m *Migrator) Status(ctx context.Context) (*Status, error) {
	version, dirty, err := m.Version()
	if err != nil {
		return nil, err
	}

	st := &Status{Version: version, Dirty: dirty, Catalog: make(map[string]int64, len(CatalogTables))}
	if version == 0 || dirty {
		return st, nil
	}

	for _, table := range CatalogTables {
		var n int64
		if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("ошибка чтения справочника %s: %w", table, err)
		}
		st.Catalog[table] = n
	}
	return st, nil
}
