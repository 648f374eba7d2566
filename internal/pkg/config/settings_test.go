//go:build unit
// +build unit

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *DatabaseSettings
		expectedError bool
	}{
		{
			name: "valid postgres settings",
			settings: &DatabaseSettings{
				Type: PostgresDbType,
				DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
				Name: "verihome",
			},
			expectedError: false,
		},
		{
			name: "valid sqlite settings without name",
			settings: &DatabaseSettings{
				Type: SqliteDbType,
				DSN:  ":memory:",
			},
			expectedError: false,
		},
		{
			name: "missing type",
			settings: &DatabaseSettings{
				DSN: ":memory:",
			},
			expectedError: true,
		},
		{
			name: "unsupported type",
			settings: &DatabaseSettings{
				Type: "mysql",
				DSN:  "user:password@tcp(localhost:3306)/dbname",
			},
			expectedError: true,
		},
		{
			name:          "missing DSN",
			settings:      &DatabaseSettings{Type: PostgresDbType},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAuthSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *AuthSettings
		expectedError bool
	}{
		{
			name: "valid settings",
			settings: &AuthSettings{
				JWTSecret:       "0123456789abcdef0123456789abcdef",
				Issuer:          "verihome",
				AccessTokenTTL:  15 * time.Minute,
				RefreshTokenTTL: 7 * 24 * time.Hour,
			},
			expectedError: false,
		},
		{
			name: "secret too short",
			settings: &AuthSettings{
				JWTSecret:       "short",
				Issuer:          "verihome",
				AccessTokenTTL:  15 * time.Minute,
				RefreshTokenTTL: 7 * 24 * time.Hour,
			},
			expectedError: true,
		},
		{
			name: "refresh TTL not beyond access TTL",
			settings: &AuthSettings{
				JWTSecret:       "0123456789abcdef0123456789abcdef",
				Issuer:          "verihome",
				AccessTokenTTL:  time.Hour,
				RefreshTokenTTL: time.Hour,
			},
			expectedError: true,
		},
		{
			name: "missing issuer",
			settings: &AuthSettings{
				JWTSecret:       "0123456789abcdef0123456789abcdef",
				AccessTokenTTL:  15 * time.Minute,
				RefreshTokenTTL: 7 * 24 * time.Hour,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{
			name: "valid console logger",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  LogTypeConsole,
			},
			expectedError: false,
		},
		{
			name: "valid file logger with rotation",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				FilePath:   "/var/log/verihome/api.log",
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			expectedError: false,
		},
		{
			name:          "missing log level",
			settings:      &LoggerSettings{LogType: LogTypeConsole},
			expectedError: true,
		},
		{
			name: "invalid log type",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  "invalid",
			},
			expectedError: true,
		},
		{
			name: "file logger missing file path",
			settings: &LoggerSettings{
				LogLevel:   LogLevelInfo,
				LogType:    LogTypeFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			expectedError: true,
		},
		{
			name: "file logger missing rotation settings",
			settings: &LoggerSettings{
				LogLevel: LogLevelInfo,
				LogType:  LogTypeFile,
				FilePath: "/var/log/verihome/api.log",
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err, "expected an error")
			} else {
				assert.NoError(t, err, "expected no error")
			}
		})
	}
}

func TestSMTPSettingsValidation(t *testing.T) {
	disabled := &SMTPSettings{Enabled: false}
	require.NoError(t, disabled.Validate())

	enabledIncomplete := &SMTPSettings{Enabled: true, Host: "smtp.example.com"}
	require.Error(t, enabledIncomplete.Validate())

	enabled := &SMTPSettings{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@verihome.example",
	}
	require.NoError(t, enabled.Validate())
}
