package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageMemory, cfg.Storage.Backend)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.False(t, cfg.UsesPostgres())
	require.Equal(t, []string{"X-Request-ID"}, cfg.CORS.ExposedHeaders)
}

func TestLoad_PostgresBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("DB_NAME", "filmorate_test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.UsesPostgres())
	require.Equal(t, "filmorate_test", cfg.Database.DBName)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	require.Contains(t, cfg.Database.DSN(), "dbname=filmorate_test")
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cassandra")
}

func TestValidate_PostgresRequiresDatabase(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: "8080"},
		Storage: StorageConfig{Backend: StoragePostgres},
		Log:     LogConfig{Format: "text"},
	}
	require.Error(t, cfg.Validate())

	cfg.Storage.Backend = StorageMemory
	require.NoError(t, cfg.Validate())
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	require.Equal(t, 7, getEnvAsInt("X_INT", 7))
	require.True(t, getEnvAsBool("X_BOOL", true))
	require.Equal(t, time.Minute, getEnvAsDuration("X_DUR", time.Minute))
}
