package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.True(t, cfg.EnableDBCheck)
	assert.Equal(t, 5, cfg.DBConnectRetries)
	assert.Equal(t, 5*time.Second, cfg.DBConnectRetryDelay)
	assert.Equal(t, []string{"Anne", "Bram"}, cfg.Participants)
	assert.Equal(t, 30*time.Second, cfg.SettlementCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "300-M", cfg.RateLimit)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("PARTICIPANTS", " Anne , Bram,Cas,Bram ")
	t.Setenv("SETTLEMENT_CACHE_TTL", "not-a-duration")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"Anne", "Bram", "Cas"}, cfg.Participants)
	assert.Equal(t, 30*time.Second, cfg.SettlementCacheTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.IsProduction)
}

func TestLoadConfigRejectsSingleParticipant(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PARTICIPANTS", "Anne")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrTooFewParticipants)
}
