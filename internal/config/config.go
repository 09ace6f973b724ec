package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Env       string
	LogLevel  string
	Database  DatabaseConfig
	HTTP      HTTPConfig
	GRPC      GRPCConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path or DSN
}

// HTTPConfig contains the JSON API server settings.
type HTTPConfig struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string

	// TrustProxyHeaders derives client IPs from X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool
}

// GRPCConfig contains gRPC health server settings.
type GRPCConfig struct {
	Address        string        // e.g. ":50051"
	HealthInterval time.Duration // how often the database is pinged for health status
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration // zero issues tokens without expiry
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute float64
	LoginBurst     int
}

const devSecret = "dev-secret-change-me"

// Load reads configuration from the environment, an optional CONFIG_FILE and defaults.
// JWT_SECRET must be set.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to a development JWT secret.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load(devSecret)
}

func load(secretDefault string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetDefault("jwt_secret", secretDefault)
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var errs []error
	duration := func(key string) time.Duration {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid duration for %s: %w", strings.ToUpper(key), err))
		}
		return d
	}
	integer := func(key string) int {
		i, err := strconv.Atoi(v.GetString(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid integer for %s: %w", strings.ToUpper(key), err))
		}
		return i
	}
	boolean := func(key string) bool {
		b, err := strconv.ParseBool(v.GetString(key))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid boolean for %s: %w", strings.ToUpper(key), err))
		}
		return b
	}

	cfg := &Config{
		Env:      strings.ToLower(v.GetString("app_env")),
		LogLevel: v.GetString("log_level"),
		Database: DatabaseConfig{Path: v.GetString("db_path")},
		HTTP: HTTPConfig{
			Address:        v.GetString("http_address"),
			ReadTimeout:    duration("http_read_timeout"),
			WriteTimeout:   duration("http_write_timeout"),
			IdleTimeout:    duration("http_idle_timeout"),
			AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),

			TrustProxyHeaders: boolean("trust_proxy_headers"),
		},
		GRPC: GRPCConfig{
			Address:        v.GetString("grpc_address"),
			HealthInterval: duration("health_interval"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("jwt_secret"),
			TokenTTL:  duration("token_ttl"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: float64(integer("login_rate_per_minute")),
			LoginBurst:     integer("login_burst"),
		},
	}

	switch cfg.Env {
	case "development", "staging", "production":
	default:
		errs = append(errs, fmt.Errorf("invalid APP_ENV %q", cfg.Env))
	}
	if cfg.GRPC.HealthInterval <= 0 {
		errs = append(errs, errors.New("HEALTH_INTERVAL must be positive"))
	}
	if cfg.RateLimit.LoginPerMinute <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_MINUTE must be positive"))
	}
	if cfg.RateLimit.LoginBurst <= 0 {
		errs = append(errs, errors.New("LOGIN_BURST must be positive"))
	}
	if cfg.Auth.TokenTTL < 0 {
		errs = append(errs, errors.New("TOKEN_TTL must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("config_file", "")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "app.db")

	v.SetDefault("http_address", ":3001")
	v.SetDefault("http_read_timeout", "15s")
	v.SetDefault("http_write_timeout", "15s")
	v.SetDefault("http_idle_timeout", "60s")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("trust_proxy_headers", "false")

	v.SetDefault("grpc_address", ":50051")
	v.SetDefault("health_interval", "10s")

	v.SetDefault("token_ttl", "24h")
	v.SetDefault("login_rate_per_minute", "10")
	v.SetDefault("login_burst", "5")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, DB: %s, HTTP: %s, gRPC: %s, Auth: *** (masked) ***, TokenTTL: %s}",
		c.Env, c.Database.Path, c.HTTP.Address, c.GRPC.Address, c.Auth.TokenTTL)
}
