package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/attendance/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Store.Backend)
	assert.Equal(t, "employees.json", cfg.Store.RosterPath)
	assert.Equal(t, "attendance.json", cfg.Store.LedgerPath)
	assert.Equal(t, "attendance.db", cfg.Store.SQLitePath)
	assert.False(t, cfg.Store.StrictLoad)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("ATTENDANCE_STORE_BACKEND", "sqlite")
	t.Setenv("ATTENDANCE_STORE_SQLITE_PATH", "/var/lib/attendance/data.db")
	t.Setenv("ATTENDANCE_STORE_STRICT_LOAD", "true")
	t.Setenv("ATTENDANCE_EXPORT_DIR", "/tmp/exports")
	t.Setenv("ATTENDANCE_LOG_LEVEL", "debug")
	t.Setenv("ATTENDANCE_LOG_FORMAT", "json")

	cfg, err := config.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/var/lib/attendance/data.db", cfg.Store.SQLitePath)
	assert.True(t, cfg.Store.StrictLoad)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"ATTENDANCE_STORE_ROSTER_PATH=staff.json\nATTENDANCE_LOG_LEVEL=info\n"), 0o600))
	// Process environment wins over the file.
	t.Setenv("ATTENDANCE_LOG_LEVEL", "error")
	// godotenv sets variables directly; make sure the test leaves none behind.
	t.Setenv("ATTENDANCE_STORE_ROSTER_PATH", "")
	os.Unsetenv("ATTENDANCE_STORE_ROSTER_PATH")

	cfg, err := config.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "staff.json", cfg.Store.RosterPath)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"ATTENDANCE_STORE_BACKEND":     "postgres",
		"ATTENDANCE_LOG_LEVEL":         "verbose",
		"ATTENDANCE_LOG_FORMAT":        "xml",
		"ATTENDANCE_STORE_STRICT_LOAD": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := config.LoadConfig("")

			assert.Error(t, err)
		})
	}
}

func TestEnvFile(t *testing.T) {
	t.Setenv("ATTENDANCE_ENV_FILE", "")
	assert.Equal(t, ".env", config.EnvFile())

	t.Setenv("ATTENDANCE_ENV_FILE", "/etc/attendance.env")
	assert.Equal(t, "/etc/attendance.env", config.EnvFile())
}
