package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Z4rru/hangulmastery/internal/validate"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Content   ContentConfig   `mapstructure:"content"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	Mode string `mapstructure:"mode" validate:"oneof=debug release test"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path     string `mapstructure:"path"      validate:"required"`
	AutoSeed bool   `mapstructure:"auto_seed"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst"               validate:"min=1"`
}

// QuizConfig controls quiz session lifetime and randomness.
type QuizConfig struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"    validate:"min=1s"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"min=1s"`
	// Seed fixes the question RNG when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig points at an optional directory overriding the embedded
// content tables.
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" validate:"dive,required"`
}

// Load loads configuration from an optional .env file, an optional config
// file and environment variables, in increasing priority.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "hangulmastery.db")
	v.SetDefault("database.auto_seed", true)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("quiz.session_ttl", "30m")
	v.SetDefault("quiz.sweep_interval", "1m")
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("content.dir", "")
	v.SetDefault("cors.allow_origins", []string{"*"})
}

func bindEnvVars(v *viper.Viper) error {
	// PORT is also read by most hosting platforms, so it is parsed leniently
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("server.port", p)
		}
	}

	binds := map[string]string{
		"server.mode":                    "GIN_MODE",
		"database.path":                  "DATABASE_PATH",
		"database.auto_seed":             "DATABASE_AUTO_SEED",
		"rate_limit.enabled":             "RATE_LIMIT_ENABLED",
		"rate_limit.requests_per_second": "RATE_LIMIT_RPS",
		"rate_limit.burst":               "RATE_LIMIT_BURST",
		"quiz.session_ttl":               "QUIZ_SESSION_TTL",
		"quiz.sweep_interval":            "QUIZ_SWEEP_INTERVAL",
		"quiz.seed":                      "QUIZ_SEED",
		"content.dir":                    "CONTENT_DIR",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Quiz.SweepInterval > c.Quiz.SessionTTL {
		return fmt.Errorf("quiz sweep_interval (%s) must not exceed session_ttl (%s)",
			c.Quiz.SweepInterval, c.Quiz.SessionTTL)
	}

	if c.Content.Dir != "" {
		info, err := os.Stat(c.Content.Dir)
		if err != nil {
			return fmt.Errorf("content dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("content dir %s is not a directory", c.Content.Dir)
		}
	}

	return nil
}
