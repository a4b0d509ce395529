package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	RedisURL    string
	DataDir     string

	// InventoryCapacity bounds the player inventory for every session.
	// Zero keeps the engine default.
	InventoryCapacity int
}

func Load() (*Config, error) {
	capacity, err := parseInt(getEnv("INVENTORY_CAPACITY", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid INVENTORY_CAPACITY: %w", err)
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		DataDir:           getEnv("DATA_DIR", "./data"),
		InventoryCapacity: capacity,
	}, nil
}

func parseInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative: %d", n)
	}
	return n, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
