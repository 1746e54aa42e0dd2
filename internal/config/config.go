package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port              string
	AllowedOrigins    []string
	LogLevel          string
	LogPretty         bool
	EngineSeed        uint64
	DefaultDifficulty string
	RateLimitRPS      float64
	RateLimitBurst    int
	SessionIdle       time.Duration
	SessionFinished   time.Duration
	CleanupInterval   time.Duration
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Engine
	seed := uint64(time.Now().UnixNano())
	if s := GetEnv("ENGINE_SEED", ""); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		} else {
			log.Warn().Str("key", "ENGINE_SEED").Str("value", s).Msg("invalid seed, using clock")
		}
	}

	return &Config{
		Port:              port,
		AllowedOrigins:    allowedOrigins,
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		LogPretty:         GetEnvAsBool("LOG_PRETTY", false),
		EngineSeed:        seed,
		DefaultDifficulty: GetEnv("DEFAULT_DIFFICULTY", "medium"),
		RateLimitRPS:      GetEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    GetEnvAsInt("RATE_LIMIT_BURST", 10),
		SessionIdle:       GetEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionFinished:   GetEnvAsDuration("SESSION_FINISHED_TTL", 10*time.Minute),
		CleanupInterval:   GetEnvAsDuration("CLEANUP_INTERVAL", 5*time.Minute),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Float64("default", defaultValue).Msg("invalid number, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration accepts Go durations ("90s", "5m").
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("invalid duration, using default")
		return defaultValue
	}
	return value
}
