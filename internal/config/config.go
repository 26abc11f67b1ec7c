// Package config provides environment-driven configuration for credtrail.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	DBMaxConns  int

	Port       string
	ListenHost string

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	JWTSecret         Secret
	JWTPreviousSecret Secret

	EncryptionKey Secret

	AuditRetentionDays int

	RateLimitRPS   int
	RateLimitBurst int

	BootstrapAdminEmail    string
	BootstrapAdminPassword Secret
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:            Secret(envOrDefault("DATABASE_URL", "")),
		Port:                   envOrDefault("PORT", "4400"),
		ListenHost:             envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:               envOrDefault("LOG_LEVEL", "info"),
		LogFormat:              envOrDefault("LOG_FORMAT", "text"),
		JWTSecret:              Secret(envOrDefault("JWT_SECRET", "")),
		JWTPreviousSecret:      Secret(envOrDefault("JWT_PREVIOUS_SECRET", "")),
		EncryptionKey:          Secret(envOrDefault("ENCRYPTION_KEY", "")),
		BootstrapAdminEmail:    strings.ToLower(strings.TrimSpace(envOrDefault("BOOTSTRAP_ADMIN_EMAIL", ""))),
		BootstrapAdminPassword: Secret(envOrDefault("BOOTSTRAP_ADMIN_PASSWORD", "")),
	}

	dbMaxConns, err := strconv.Atoi(envOrDefault("DB_MAX_CONNS", "21"))
	if err != nil || dbMaxConns < 2 || dbMaxConns > 200 {
		return nil, fmt.Errorf("config validation: DB_MAX_CONNS must be an integer between 2 and 200")
	}
	cfg.DBMaxConns = dbMaxConns

	retention, err := strconv.Atoi(envOrDefault("AUDIT_RETENTION_DAYS", "365"))
	if err != nil || retention < 1 || retention > 3650 {
		return nil, fmt.Errorf("config validation: AUDIT_RETENTION_DAYS must be an integer between 1 and 3650")
	}
	cfg.AuditRetentionDays = retention

	rps, err := strconv.Atoi(envOrDefault("RATE_LIMIT_RPS", "100"))
	if err != nil || rps < 1 || rps > 10000 {
		return nil, fmt.Errorf("config validation: RATE_LIMIT_RPS must be an integer between 1 and 10000")
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(envOrDefault("RATE_LIMIT_BURST", "200"))
	if err != nil || burst < 1 || burst > 20000 {
		return nil, fmt.Errorf("config validation: RATE_LIMIT_BURST must be an integer between 1 and 20000")
	}
	cfg.RateLimitBurst = burst

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
