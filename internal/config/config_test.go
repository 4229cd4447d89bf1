package config

import (
	"log/slog"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SERVER_HOST", "DB_PATH", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "AUDIT_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "localhost:5001", cfg.Server.Addr)
	assert.Equal(t, "./data/show_ledger.db", cfg.Database.Path)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "", cfg.Audit.Schedule)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://ledger.example , ,https://admin.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("AUDIT_SCHEDULE", "@daily")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://ledger.example", "https://admin.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "@daily", cfg.Audit.Schedule)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := Load()
	assert.Error(t, err)
}
