package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	LogLevel  slog.Level

	ItemsAPIBaseURL     string
	ItemsAPILanguage    string
	ItemsRateLimitRPS   int
	ItemsTimeoutMs      int
	ItemsMaxAttempts    int
	SnapshotMaxAgeHours int

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisPayloadTTLSec int

	TierThresholdsFile string
	TierThresholds     []TierThreshold

	ExportPlainText bool

	WatchIntervalSec int
	WatchAutoExport  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "items.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		LogLevel:  getEnvLevel("LOG_LEVEL", slog.LevelInfo),

		ItemsAPIBaseURL:     getEnv("ITEMS_API_BASE_URL", "https://assets.deadlock-api.com/v2"),
		ItemsAPILanguage:    getEnv("ITEMS_API_LANGUAGE", ""),
		ItemsRateLimitRPS:   getEnvInt("ITEMS_RATE_LIMIT_RPS", 2),
		ItemsTimeoutMs:      getEnvInt("ITEMS_TIMEOUT_MS", 30000),
		ItemsMaxAttempts:    getEnvInt("ITEMS_MAX_ATTEMPTS", 5),
		SnapshotMaxAgeHours: getEnvInt("SNAPSHOT_MAX_AGE_HOURS", 24),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPayloadTTLSec: getEnvInt("REDIS_PAYLOAD_TTL_SEC", 3600),

		TierThresholdsFile: getEnv("TIER_THRESHOLDS_FILE", ""),

		ExportPlainText: getEnvBool("EXPORT_PLAIN_TEXT", true),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 3600),
		WatchAutoExport:  getEnvBool("WATCH_AUTO_EXPORT", true),
	}

	if strings.TrimSpace(cfg.TierThresholdsFile) != "" {
		thresholds, err := LoadTierThresholds(cfg.TierThresholdsFile)
		if err != nil {
			return Config{}, err
		}
		cfg.TierThresholds = thresholds
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fallback
	}
	return level
}
