package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ServerSettings holds HTTP server configuration for the REST API
type ServerSettings struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	Mode           string   `mapstructure:"mode" validate:"required,oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}
	return nil
}

// DatabaseSettings holds database connection configuration
type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN  string `mapstructure:"dsn" validate:"required"`
	Name string `mapstructure:"name"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}

// RedisSettings holds configuration for the Redis client used for
// notification fan-out and monitor snapshots. An empty URL disables Redis.
type RedisSettings struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Validate checks that all fields in RedisSettings are valid
func (s *RedisSettings) Validate() error {
	if s.URL == "" {
		return nil
	}
	if s.PoolSize < 0 || s.MinIdleConns < 0 {
		return fmt.Errorf("redis pool sizes must not be negative")
	}
	return nil
}

// AuthSettings holds JWT and login-throttling configuration
type AuthSettings struct {
	JWTSecret       string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer          string        `mapstructure:"issuer" validate:"required"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl" validate:"required"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl" validate:"required"`
	LoginRatePerMin int           `mapstructure:"login_rate_per_min"`
	LoginBurst      int           `mapstructure:"login_burst"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if s.RefreshTokenTTL <= s.AccessTokenTTL {
		return fmt.Errorf("refresh token TTL must exceed access token TTL")
	}
	return nil
}

// SMTPSettings holds outbound email configuration. Disabled mailers log
// instead of sending so development setups need no SMTP server.
type SMTPSettings struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Validate checks that all fields in SMTPSettings are valid
func (s *SMTPSettings) Validate() error {
	if !s.Enabled {
		return nil
	}
	if s.Host == "" || s.Port == 0 {
		return fmt.Errorf("smtp host and port are required when smtp is enabled")
	}
	if s.From == "" {
		return fmt.Errorf("smtp from address is required when smtp is enabled")
	}
	return nil
}

// MonitorSettings holds configuration for the background performance sampler
type MonitorSettings struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// Validate checks that all fields in MonitorSettings are valid
func (s *MonitorSettings) Validate() error {
	if s.Enabled && s.Interval < time.Second {
		return fmt.Errorf("monitor interval must be at least 1s")
	}
	return nil
}

// TasksSettings holds configuration for the background task queue
type TasksSettings struct {
	Workers   int `mapstructure:"workers" validate:"required,min=1,max=64"`
	QueueSize int `mapstructure:"queue_size" validate:"required,min=1"`
}

// Validate checks that all fields in TasksSettings are valid
func (s *TasksSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for TasksSettings: %w", err)
	}
	return nil
}
