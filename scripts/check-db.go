package main

import (
	"context"
	"log"
	"os"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/pkg/logger"
)

// fileExists проверяет существование файла
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// Проверяет подключение к PostgreSQL, версию схемы и наличие справочников MPA и жанров.
func main() {
	log.Println("Проверка базы данных filmorate...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Вне Docker хост "postgres" из docker-compose недоступен
	isInDocker := os.Getenv("container") != "" || fileExists("/.dockerenv")
	if cfg.Database.Host == "postgres" && !isInDocker {
		log.Println("DB_HOST=postgres вне Docker, подключаюсь к localhost")
		cfg.Database.Host = "localhost"
	}

	log.Printf("Подключение: %s@%s:%s/%s (sslmode=%s)",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)

	appLog := logger.New(logger.Options{Level: "warn", Format: cfg.Log.Format})

	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv, appLog)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		log.Fatalf("Ошибка проверки подключения (Ping): %v", err)
	}
	log.Println("Ping прошёл успешно")

	migrator, err := database.NewMigrator(db)
	if err != nil {
		log.Fatalf("Ошибка создания мигратора: %v", err)
	}
	st, err := migrator.Status(ctx)
	if err != nil {
		log.Fatalf("Ошибка получения состояния схемы: %v", err)
	}
	if st.Dirty {
		log.Fatalf("Схема в грязном состоянии (версия %d), нужен cmd/migrate -force", st.Version)
	}
	if st.Version == 0 {
		log.Fatal("Миграции не применены, запустите cmd/migrate")
	}
	log.Printf("Версия схемы: %d", st.Version)

	for _, table := range database.CatalogTables {
		n := st.Catalog[table]
		if n == 0 {
			log.Fatalf("Справочник %s пуст", table)
		}
		log.Printf("Справочник %s: %d записей", table, n)
	}

	log.Println("Все проверки пройдены, база данных готова к работе")
}
