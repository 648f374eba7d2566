package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig aggregates every settings block the service needs. It is loaded
// once at startup from a YAML file with environment variable overrides.
type AppConfig struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Auth     AuthSettings     `mapstructure:"auth"`
	SMTP     SMTPSettings     `mapstructure:"smtp"`
	Monitor  MonitorSettings  `mapstructure:"monitor"`
	Tasks    TasksSettings    `mapstructure:"tasks"`
}

// Validate checks every settings block
func (c *AppConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.SMTP.Validate(); err != nil {
		return err
	}
	if err := c.Monitor.Validate(); err != nil {
		return err
	}
	return c.Tasks.Validate()
}

// InitializeAppConfig loads the application configuration from the YAML file
// at configPath, applies VERIHOME_* environment overrides and validates the
// result. A missing file is tolerated when the environment supplies the
// required values.
func InitializeAppConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// With an explicit path viper surfaces a bare *PathError for a
			// missing file rather than ConfigFileNotFoundError.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "verihome.db")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)

	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("auth.issuer", "verihome")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.login_rate_per_min", 10)
	v.SetDefault("auth.login_burst", 5)

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)

	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.interval", 30*time.Second)

	v.SetDefault("tasks.workers", 4)
	v.SetDefault("tasks.queue_size", 256)
}
