package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/pkg/logger"
)

type action int

const (
	actionUp action = iota
	actionDown
	actionSteps
	actionVersion
	actionForce
	actionStatus
)

// options результат разбора флагов: одно действие и его аргумент.
type options struct {
	action  action
	steps   int
	version int
}

// schemaMigrator операции мигратора, которые использует CLI.
type schemaMigrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	Status(ctx context.Context) (*database.Status, error)
}

var errDirty = errors.New("схема в грязном состоянии, нужен -force")

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}
	appLog := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, appLog); err != nil {
		appLog.Error("migrate failed", map[string]any{"error": err.Error()})
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts *options, appLog logger.Logger) error {
	// Мигратор открывает собственное подключение через lib/pq
	migrator, err := database.NewMigratorFromConfig(&cfg.Database, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			appLog.Warn("migrator close failed", map[string]any{"error": err.Error()})
		}
	}()

	return execute(ctx, migrator, opts, os.Stdout)
}

// parseOptions разбирает флаги. Без флагов применяются все миграции.
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Bool("up", false, "Применить все доступные миграции (по умолчанию)")
	fs.Bool("down", false, "Откатить все миграции")
	steps := fs.Int("steps", 0, "Применить/откатить N миграций (положительное число - вверх, отрицательное - вниз)")
	fs.Bool("version", false, "Показать текущую версию миграции")
	force := fs.Int("force", -1, "Принудительно установить версию (после прерванной миграции)")
	fs.Bool("status", false, "Показать версию схемы и заполненность справочников")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Использование: migrate [опция]\n\nОпции:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nПримеры:\n")
		fmt.Fprintf(stderr, "  migrate              # Применить все миграции\n")
		fmt.Fprintf(stderr, "  migrate -steps -1    # Откатить 1 миграцию\n")
		fmt.Fprintf(stderr, "  migrate -force 2     # Установить версию 2 без применения\n")
		fmt.Fprintf(stderr, "  migrate -status      # Версия схемы и справочники\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("неожиданные аргументы: %v", fs.Args())
	}

	var set []string
	fs.Visit(func(f *flag.Flag) { set = append(set, f.Name) })
	if len(set) > 1 {
		return nil, fmt.Errorf("можно указать только одно действие за раз, получено: %v", set)
	}

	opts := &options{action: actionUp}
	if len(set) == 0 {
		return opts, nil
	}

	switch set[0] {
	case "up":
	case "down":
		opts.action = actionDown
	case "steps":
		if *steps == 0 {
			return nil, errors.New("-steps должен быть ненулевым")
		}
		opts.action = actionSteps
		opts.steps = *steps
	case "version":
		opts.action = actionVersion
	case "force":
		if *force < 0 {
			return nil, errors.New("-force требует неотрицательную версию")
		}
		opts.action = actionForce
		opts.version = *force
	case "status":
		opts.action = actionStatus
	}
	return opts, nil
}

// execute выполняет действие и пишет отчёт в out.
func execute(ctx context.Context, m schemaMigrator, opts *options, out io.Writer) error {
	switch opts.action {
	case actionDown:
		return reportChange(out, m.Down(), "Миграции откатаны", "Нет миграций для отката")
	case actionSteps:
		return reportChange(out, m.Steps(opts.steps),
			fmt.Sprintf("Выполнено шагов миграции: %d", opts.steps), "Нет миграций в этом направлении")
	case actionVersion:
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			fmt.Fprintln(out, "Версия: нет примененных миграций")
			return nil
		}
		fmt.Fprintf(out, "Версия: %d\n", version)
		if dirty {
			return errDirty
		}
		return nil
	case actionForce:
		if err := m.Force(opts.version); err != nil {
			return err
		}
		fmt.Fprintf(out, "Версия принудительно установлена: %d\n", opts.version)
		return nil
	case actionStatus:
		return printStatus(ctx, m, out)
	default:
		return reportChange(out, m.Up(), "Все миграции применены", "База данных уже актуальна")
	}
}

func reportChange(out io.Writer, err error, done, unchanged string) error {
	switch {
	case errors.Is(err, database.ErrNoChange):
		fmt.Fprintln(out, unchanged)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintln(out, done)
	return nil
}

func printStatus(ctx context.Context, m schemaMigrator, out io.Writer) error {
	st, err := m.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Версия: %d\n", st.Version)
	if st.Dirty {
		return errDirty
	}

	tables := make([]string, 0, len(st.Catalog))
	for table := range st.Catalog {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	var empty []string
	for _, table := range tables {
		fmt.Fprintf(out, "Справочник %s: %d записей\n", table, st.Catalog[table])
		if st.Catalog[table] == 0 {
			empty = append(empty, table)
		}
	}
	if len(empty) > 0 {
		return fmt.Errorf("пустые справочники: %v", empty)
	}
	return nil
}
