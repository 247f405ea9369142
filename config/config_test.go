package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Equal(t, "fight_picks", cfg.Database.Database)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenExpiry)
	assert.True(t, cfg.App.IsDevelopment)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_NAME", "picks_test")
	t.Setenv("DB_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("LEADERBOARD_LIMIT", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "picks_test", cfg.Database.Database)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.CORSOrigins)
	assert.Equal(t, 25, cfg.App.LeaderboardLimit)
}

func TestValidateProductionGuards(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	t.Run("default JWT secret rejected", func(t *testing.T) {
		t.Setenv("GOOGLE_CLIENT_ID", "cid")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT secret")
	})

	t.Run("missing Google client ID rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "a-real-secret")
		_, err := Load()
		assert.ErrorContains(t, err, "Google client ID")
	})

	t.Run("fully configured passes", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "a-real-secret")
		t.Setenv("GOOGLE_CLIENT_ID", "cid")
		_, err := Load()
		assert.NoError(t, err)
	})
}

func TestGetMongoURI(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "27017", Database: "picks"}}
	assert.Equal(t, "mongodb://db:27017/picks", cfg.GetMongoURI())

	cfg.Database.Username = "app"
	cfg.Database.Password = "secret"
	assert.Equal(t, "mongodb://app:secret@db:27017/picks?authSource=picks", cfg.GetMongoURI())
}
