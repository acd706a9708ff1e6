// Package testkit starts Postgres and Redis for integration tests, in containers or from
// JEWELSTORE_TEST_* overrides, and hands out connected clients.
package testkit

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds environment-driven configuration for integration test infrastructure.
type Config struct {
	PGImage        string        `mapstructure:"pg_image"`
	RedisImage     string        `mapstructure:"redis_image"`
	PGDSN          string        `mapstructure:"pg_dsn"`          // If set, skip Postgres container.
	RedisAddr      string        `mapstructure:"redis_addr"`      // If set, skip Redis container.
	StartupTimeout time.Duration `mapstructure:"startup_timeout"` // Go duration, e.g. 90s.
	KeepContainers bool          `mapstructure:"keep_containers"` // If true, do not terminate containers on shutdown.
	Timezone       string        `mapstructure:"timezone"`        // Session timezone for the test database.
}

// LoadConfig reads test infrastructure settings from JEWELSTORE_TEST_* environment variables.
// Malformed values fall back to the defaults.
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("JEWELSTORE_TEST")
	v.AutomaticEnv()

	defaults := Config{
		PGImage:        "postgres:18.1-alpine",
		RedisImage:     "redis:8.4.0-alpine",
		StartupTimeout: 90 * time.Second,
		Timezone:       "Asia/Kolkata",
	}
	v.SetDefault("pg_image", defaults.PGImage)
	v.SetDefault("redis_image", defaults.RedisImage)
	v.SetDefault("pg_dsn", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("startup_timeout", defaults.StartupTimeout)
	v.SetDefault("keep_containers", false)
	v.SetDefault("timezone", defaults.Timezone)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = defaults.StartupTimeout
	}
	return cfg
}
