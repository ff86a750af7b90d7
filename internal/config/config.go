package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort     string
	AppMode      string
	FiberPrefork bool

	ZabbixURL      string
	ZabbixAPIToken string
	ZabbixTimeout  time.Duration

	AuthDisabled     bool
	MinUserType      int
	MetadataCacheTTL time.Duration

	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	DiagBufferSize int
	DiagBatchSize  int
	DiagFlushEvery time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", ":8080"),
		AppMode:            strings.ToLower(getEnv("APP_MODE", "dev")),
		FiberPrefork:       parseBoolEnv("FIBER_PREFORK", false),
		ZabbixAPIToken:     os.Getenv("ZABBIX_API_TOKEN"),
		ZabbixTimeout:      parseDurationEnv("ZABBIX_TIMEOUT", 10*time.Second),
		AuthDisabled:       parseBoolEnv("AUTH_DISABLED", false),
		MinUserType:        parseIntEnv("MIN_USER_TYPE", 1),
		MetadataCacheTTL:   parseDurationEnv("METADATA_CACHE_TTL", 5*time.Minute),
		ClickHouseAddr:     os.Getenv("CLICKHOUSE_ADDR"),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "default"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: os.Getenv("CLICKHOUSE_PASSWORD"),
		DiagBufferSize:     parseIntEnv("DIAG_BUFFER_SIZE", 256),
		DiagBatchSize:      parseIntEnv("DIAG_BATCH_SIZE", 50),
		DiagFlushEvery:     parseDurationEnv("DIAG_FLUSH_EVERY", 5*time.Second),
	}
	cfg.ZabbixURL = os.Getenv("ZABBIX_URL")
	if cfg.ZabbixURL == "" {
		return nil, fmt.Errorf("ZABBIX_URL is required")
	}
	return cfg, nil
}

// DiagnosticsStoreEnabled reports whether fetch failures go to ClickHouse.
func (c *Config) DiagnosticsStoreEnabled() bool {
	return c.ClickHouseAddr != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
