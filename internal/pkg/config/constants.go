package config

// Log level constants
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Database type constants
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// Default listen address for the REST API
const DefaultServerAddr = ":8000"

// Environment variable prefix for overrides, e.g. VERIHOME_SERVER_ADDR
const EnvPrefix = "VERIHOME"
