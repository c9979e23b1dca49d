package config

// Store backends understood by the application.
const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMongoDB  = "mongodb"
)

// ID allocation strategies.
const (
	IDStrategySequential = "sequential"
	IDStrategyUUID       = "uuid"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	IDs      IDConfig       `mapstructure:"ids"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig selects the task store backend and names the table it uses.
// The process refuses to start without TableName.
type StoreConfig struct {
	Backend string `mapstructure:"backend"    validate:"required,oneof=dynamodb postgres mongodb"`
	// TableName is the DynamoDB table or the MongoDB collection. The postgres
	// backend ignores it and always uses the migrated "tasks" table.
	TableName string `mapstructure:"table_name" validate:"required"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"   validate:"omitempty,url"`
}

// DatabaseConfig is used by the postgres backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// MongoConfig is used by the mongodb backend.
type MongoConfig struct {
	URI      string `mapstructure:"uri"      validate:"omitempty,url"`
	Database string `mapstructure:"database"`
}

// IDConfig controls how new task IDs are allocated.
type IDConfig struct {
	Strategy string `mapstructure:"strategy" validate:"required,oneof=sequential uuid"`
}
