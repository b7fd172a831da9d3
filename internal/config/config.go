// Package config loads server configuration from a YAML file, SKILLTREE_*
// environment variables and defaults, in that order of precedence after flags.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/progression"
)

// EnvPrefix prefixes every environment override, e.g. SKILLTREE_REDIS_ENDPOINT
const EnvPrefix = "SKILLTREE"

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig contains gRPC listener settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig contains session store settings
type RedisConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	PoolSize   int    `mapstructure:"pool_size"`
	MaxRetries int    `mapstructure:"max_retries"`
	UseTLS     bool   `mapstructure:"use_tls"`
}

// CatalogConfig points at the skill catalog
type CatalogConfig struct {
	// Path to a YAML catalog; empty uses the embedded default
	Path string `mapstructure:"path"`
}

// SessionConfig contains progression session settings
type SessionConfig struct {
	StartingSkillPoints int32         `mapstructure:"starting_skill_points"`
	TTL                 time.Duration `mapstructure:"ttl"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every key with its default so env overrides and
// Unmarshal see it
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("redis.endpoint", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.use_tls", false)
	v.SetDefault("catalog.path", "")
	v.SetDefault("session.starting_skill_points", 20)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// BindEnv wires SKILLTREE_* variables onto dotted keys
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// New returns a viper instance with defaults and env bindings in place
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks ranges and formats
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		vb.Fieldf("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		vb.Field("server.shutdown_timeout", "must not be negative")
	}
	errors.ValidateRequired("redis.endpoint", c.Redis.Endpoint, vb)
	errors.ValidateMin("redis.pool_size", int64(c.Redis.PoolSize), 0, vb)
	errors.ValidateMin("redis.max_retries", int64(c.Redis.MaxRetries), -1, vb)
	errors.ValidateRange("session.starting_skill_points", int64(c.Session.StartingSkillPoints), 0, progression.MaxSkillPoints, vb)
	if c.Session.TTL <= 0 {
		vb.Field("session.ttl", "must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		vb.Fieldf("log.level", "unknown level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		vb.Fieldf("log.format", "must be text or json, got %q", c.Log.Format)
	}

	return vb.Build()
}

// SlogLevel parses the configured level (debug, info, warn, error)
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("invalid log level %q", c.Level)
	}
	return level, nil
}
