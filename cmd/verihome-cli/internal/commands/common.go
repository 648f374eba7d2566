package commands

import (
	"fmt"
	"os"

	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// setupLogger initializes the console logger shared by every CLI command
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadConfig resolves configuration the same way the API server does: an
// optional .env file, then CONFIG_PATH or the default YAML, then VERIHOME_*
// environment overrides.
func loadConfig() (*config.AppConfig, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-api.yaml"
	}

	cfg, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	return cfg, nil
}

// openDatabase connects to the database named by the configuration
func openDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	return db, nil
}

// closeDatabase closes the connection, logging instead of failing since the
// command's work is already done.
func closeDatabase(db *gorm.DB, log logger.Logger) {
	if err := persistence.CloseDB(db); err != nil {
		log.Warn("Failed to close database connection: ", err)
	}
}
