package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("ASSISTANT_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, 30*time.Second, cfg.Assistant.Timeout)
	assert.Equal(t, "authenticated", cfg.Auth.Audience)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "portal")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("MINIO_USE_SSL", "false")
	t.Setenv("AVATAR_URL_EXPIRY", "15m")
	t.Setenv("ASSISTANT_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://portal.example.org, http://localhost:3000")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.False(t, cfg.Avatars.UseSSL)
	assert.Equal(t, 15*time.Minute, cfg.Avatars.URLExpiry)
	assert.Equal(t, 30*time.Second, cfg.Assistant.Timeout, "invalid durations fall back to the default")
	assert.Equal(t, []string{"https://portal.example.org", "http://localhost:3000"}, cfg.AllowedOrigins())
	assert.Contains(t, cfg.GetDatabaseURL(), "@db.internal:5432/portal?sslmode=disable")
}
