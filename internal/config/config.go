package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"wordrush/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	WordlistFile  string
	MinWordLength int
	MaxWordLength int
	SessionGrace  time.Duration
	LogLevel      string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		WordlistFile:  getEnv("WORDLIST_FILE", ""),
		MinWordLength: getEnvInt("MIN_WORD_LENGTH", constants.DefaultMinWordLength),
		MaxWordLength: getEnvInt("MAX_WORD_LENGTH", constants.DefaultMaxWordLength),
		SessionGrace:  getEnvDuration("SESSION_GRACE", constants.DefaultSessionGrace),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.MinWordLength < constants.MinDictionaryLength {
		return nil, fmt.Errorf("MIN_WORD_LENGTH must be at least %d, got %d", constants.MinDictionaryLength, cfg.MinWordLength)
	}
	if cfg.MaxWordLength < cfg.MinWordLength {
		return nil, fmt.Errorf("MAX_WORD_LENGTH %d is below MIN_WORD_LENGTH %d", cfg.MaxWordLength, cfg.MinWordLength)
	}
	if cfg.SessionGrace <= 0 {
		return nil, fmt.Errorf("SESSION_GRACE must be positive, got %s", cfg.SessionGrace)
	}

	logger.Info().
		Str("wordlist_file", cfg.WordlistFile).
		Int("min_word_length", cfg.MinWordLength).
		Int("max_word_length", cfg.MaxWordLength).
		Dur("session_grace", cfg.SessionGrace).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
