package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "FRONTEND_URL", "ENGINE_SEED", "RATE_LIMIT_RPS", "SESSION_IDLE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	require.Equal(t, 5.0, cfg.RateLimitRPS)
	require.Equal(t, 30*time.Minute, cfg.SessionIdle)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "https://play.example.com")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("ENGINE_SEED", "1234")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("SESSION_FINISHED_TTL", "90s")
	t.Setenv("LOG_PRETTY", "true")

	cfg := LoadConfig()
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, []string{"https://play.example.com", "http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	require.Equal(t, uint64(1234), cfg.EngineSeed)
	require.Equal(t, 3, cfg.RateLimitBurst)
	require.Equal(t, 90*time.Second, cfg.SessionFinished)
	require.True(t, cfg.LogPretty)
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("BAD_INT", "seven")
	t.Setenv("BAD_DURATION", "-5m")
	t.Setenv("BAD_BOOL", "maybe")

	require.Equal(t, 7, GetEnvAsInt("BAD_INT", 7))
	require.Equal(t, time.Minute, GetEnvAsDuration("BAD_DURATION", time.Minute))
	require.False(t, GetEnvAsBool("BAD_BOOL", false))
	require.Equal(t, "fallback", GetEnv("UNSET_KEY_FOR_TEST", "fallback"))
}
