package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	AuthModeSession = "session"
	AuthModeJWT     = "jwt"
)

type Config struct {
	Host        string
	Port        int
	Environment string
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// auth & limits
	AuthMode                   string   `toml:"auth_mode"`
	AllowedOrigins             []string `toml:"allowed_origins"`
	RateLimitAllowedPerMin     int      `toml:"rate_limit_allowed_per_min"`
	ExpirySweepIntervalMinutes int      `toml:"expiry_sweep_interval_minutes"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file and returns the section for the given env,
// with defaults applied to unset values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AuthMode == "" {
		c.AuthMode = AuthModeSession
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = 120
	}
	if c.ExpirySweepIntervalMinutes == 0 {
		c.ExpirySweepIntervalMinutes = 15
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("config: port must be set")
	}
	if c.PostgresHost == "" || c.PostgresDBName == "" {
		return errors.New("config: postgres host and db name must be set")
	}
	switch c.AuthMode {
	case AuthModeSession, AuthModeJWT:
	default:
		return fmt.Errorf("config: unknown auth mode [%s]", c.AuthMode)
	}
	if c.RateLimitAllowedPerMin < 0 {
		return errors.New("config: rate limit must not be negative")
	}
	return nil
}
