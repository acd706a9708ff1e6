// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	MetalPriceAPI MetalPriceAPIConfig `mapstructure:"metalpriceapi"`
	GoldAPI       GoldAPIConfig       `mapstructure:"goldapi"`
	Rates         RatesConfig
	Breaker       BreakerConfig
	Auth          AuthConfig
	Admin         AdminConfig
	RateLimit     RateLimitConfig `mapstructure:"ratelimit"`
	Worker        WorkerConfig
	Scheduler     SchedulerConfig
	Cache         CacheConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int  `mapstructure:"port"`
	ServeSwagger  bool `mapstructure:"serve_swagger"`
	ServeAsynqmon bool `mapstructure:"serve_asynqmon"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	DSN                string
}

// RedisConfig holds connection settings for both Redis instances.
type RedisConfig struct {
	AsynqAddr string `mapstructure:"asynq_addr"` // Redis instance for Asynq task queue (required).
	CacheAddr string `mapstructure:"cache_addr"` // Redis instance for rate cache and token deny-list (required).
}

// MetalPriceAPIConfig holds settings for the metalpriceapi.com source.
type MetalPriceAPIConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Base       string `mapstructure:"base"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// GoldAPIConfig holds settings for the goldapi.io source. It is used only when APIKey is set.
type GoldAPIConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Currency   string `mapstructure:"currency"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// RatesConfig holds daily rate lookup settings.
type RatesConfig struct {
	Timezone       string  `mapstructure:"timezone"`
	FetchTimeoutMs int     `mapstructure:"fetch_timeout_ms"`
	FallbackGold   float64 `mapstructure:"fallback_gold"`
	FallbackSilver float64 `mapstructure:"fallback_silver"`
	Location       *time.Location
}

// BreakerConfig holds circuit breaker settings for the external price sources.
type BreakerConfig struct {
	Threshold       int `mapstructure:"threshold"`
	ResetTimeoutSec int `mapstructure:"reset_timeout_sec"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer"`
	TokenTTLMin int    `mapstructure:"token_ttl_min"`
	BcryptCost  int    `mapstructure:"bcrypt_cost"`
}

// AdminConfig holds the single admin account. PasswordHash is a bcrypt hash (see `app hash-password`).
type AdminConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

// RateLimitConfig holds the limiter rate for authentication endpoints, in ulule format (e.g. "10-M").
type RateLimitConfig struct {
	Auth string `mapstructure:"auth"`
}

// WorkerConfig holds background worker and task queue settings.
type WorkerConfig struct {
	Concurrency      int `mapstructure:"concurrency"`
	MaxRetry         int `mapstructure:"max_retry"`
	TimeoutSec       int `mapstructure:"timeout_sec"`
	CheckIntervalSec int `mapstructure:"check_interval_sec"`
}

// SchedulerConfig holds the cron spec for the daily rate pre-warm.
type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	RefreshCron string `mapstructure:"refresh_cron"`
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	DailyRateTTLSec int `mapstructure:"daily_rate_ttl_sec"`
}

// FetchTimeout returns the external fetch deadline.
func (c RatesConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// TokenTTL returns the lifetime of issued access tokens.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./internal/config")

	v.SetEnvPrefix("JEWELSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.finalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.serve_asynqmon", false)
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "jewelstore")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("redis.asynq_addr", "redis_asynq:6380")
	v.SetDefault("redis.cache_addr", "redis_cache:6381")
	v.SetDefault("metalpriceapi.base_url", "https://api.metalpriceapi.com/v1")
	v.SetDefault("metalpriceapi.api_key", "demo")
	v.SetDefault("metalpriceapi.base", "INR")
	v.SetDefault("metalpriceapi.timeout_sec", 5)
	v.SetDefault("goldapi.base_url", "https://www.goldapi.io/api")
	v.SetDefault("goldapi.api_key", "")
	v.SetDefault("goldapi.currency", "INR")
	v.SetDefault("goldapi.timeout_sec", 5)
	v.SetDefault("rates.timezone", "Asia/Kolkata")
	v.SetDefault("rates.fetch_timeout_ms", 5000)
	v.SetDefault("rates.fallback_gold", 6500.00)
	v.SetDefault("rates.fallback_silver", 75.00)
	v.SetDefault("breaker.threshold", 3)
	v.SetDefault("breaker.reset_timeout_sec", 60)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_issuer", "jewelstore")
	v.SetDefault("auth.token_ttl_min", 120)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("ratelimit.auth", "20-M")
	v.SetDefault("worker.concurrency", 1)
	v.SetDefault("worker.max_retry", 3)
	v.SetDefault("worker.timeout_sec", 30)
	v.SetDefault("worker.check_interval_sec", 5)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.refresh_cron", "5 0 * * *")
	v.SetDefault("cache.daily_rate_ttl_sec", 3600)
}

func (c *Config) finalize() {
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetimeSec <= 0 {
		c.Database.ConnMaxLifetimeSec = 300
	}

	c.Database.DSN = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.SSLMode)

	// Validate already proved the zone loads.
	c.Rates.Location, _ = time.LoadLocation(c.Rates.Timezone)
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if c.Database.Port <= 0 {
		errs = append(errs, fmt.Errorf("database.port must be positive, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}

	if c.Redis.AsynqAddr == "" {
		errs = append(errs, fmt.Errorf("redis.asynq_addr is required (set JEWELSTORE_REDIS_ASYNQ_ADDR)"))
	}
	if c.Redis.CacheAddr == "" {
		errs = append(errs, fmt.Errorf("redis.cache_addr is required (set JEWELSTORE_REDIS_CACHE_ADDR)"))
	}

	if c.MetalPriceAPI.BaseURL == "" {
		errs = append(errs, fmt.Errorf("metalpriceapi.base_url is required"))
	}
	if c.Rates.FetchTimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("rates.fetch_timeout_ms must be positive, got %d", c.Rates.FetchTimeoutMs))
	}
	if c.Rates.FallbackGold <= 0 || c.Rates.FallbackSilver <= 0 {
		errs = append(errs, fmt.Errorf("rates.fallback_gold and rates.fallback_silver must be positive"))
	}
	if _, err := time.LoadLocation(c.Rates.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("rates.timezone %q: %w", c.Rates.Timezone, err))
	}

	if c.Breaker.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("breaker.threshold must be positive, got %d", c.Breaker.Threshold))
	}
	if c.Breaker.ResetTimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("breaker.reset_timeout_sec must be positive, got %d", c.Breaker.ResetTimeoutSec))
	}

	if len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 16 characters (set JEWELSTORE_AUTH_JWT_SECRET)"))
	}
	if c.Auth.TokenTTLMin <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl_min must be positive, got %d", c.Auth.TokenTTLMin))
	}
	if c.Admin.Email == "" {
		errs = append(errs, fmt.Errorf("admin.email is required"))
	}
	if c.Admin.PasswordHash == "" {
		errs = append(errs, fmt.Errorf("admin.password_hash is required (generate one with `app hash-password`)"))
	}

	if c.Worker.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("worker.concurrency must be positive, got %d", c.Worker.Concurrency))
	}
	if c.Worker.MaxRetry < 0 {
		errs = append(errs, fmt.Errorf("worker.max_retry must be non-negative, got %d", c.Worker.MaxRetry))
	}
	if c.Worker.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("worker.timeout_sec must be positive, got %d", c.Worker.TimeoutSec))
	}
	if c.Worker.CheckIntervalSec <= 0 {
		errs = append(errs, fmt.Errorf("worker.check_interval_sec must be positive, got %d", c.Worker.CheckIntervalSec))
	}
	if c.Scheduler.Enabled && c.Scheduler.RefreshCron == "" {
		errs = append(errs, fmt.Errorf("scheduler.refresh_cron is required when the scheduler is enabled"))
	}

	if c.Cache.DailyRateTTLSec <= 0 {
		errs = append(errs, fmt.Errorf("cache.daily_rate_ttl_sec must be positive, got %d", c.Cache.DailyRateTTLSec))
	}

	return errors.Join(errs...)
}
