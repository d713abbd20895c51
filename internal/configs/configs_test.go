package config

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_HOST", "APP_PORT", "DATABASE_DSN", "REDIS_HOST", "RATE_LIMIT_PER_MINUTE", "LOG_FORMAT", "BCRYPT_COST"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.AppURL)
	assert.Equal(t, "kanban.db?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseDSN)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Redis(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
}

func TestValidate(t *testing.T) {
	valid := Config{
		AppURL:                 "127.0.0.1:8080",
		DatabaseDSN:            "kanban.db",
		TokenCacheTTLSeconds:   60,
		RateLimit:              10,
		ShutdownTimeoutSeconds: 5,
		LogFormat:              "json",
		BcryptCost:             10,
	}
	require.NoError(t, Validate(valid))

	broken := valid
	broken.RateLimit = 0
	assert.Error(t, Validate(broken))

	broken = valid
	broken.LogFormat = "xml"
	assert.Error(t, Validate(broken))

	broken = valid
	broken.BcryptCost = 99
	assert.Error(t, Validate(broken))
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = NewLogger(Config{LogLevel: "nonsense", LogFormat: "text"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestOpen_MigratesSchema(t *testing.T) {
	db, err := Open("file:configs_open?mode=memory&cache=shared")
	require.NoError(t, err)

	for _, table := range []string{"users", "auth_tokens", "boards", "board_members", "tasks", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpen_FileDSNWaitsOnLocks(t *testing.T) {
	db, err := Open(SQLiteDSN(filepath.Join(t.TempDir(), "kanban.db")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&timeout).Error)
	assert.Equal(t, 5000, timeout)
}
