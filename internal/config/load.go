package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. TODOS_SERVER_PORT for server.port.
const EnvPrefix = "TODOS"

// LegacyTableEnv is the table variable name used by existing deployments.
// It is honored when TODOS_STORE_TABLE_NAME is not set.
const LegacyTableEnv = "TodosTable"

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to AutomaticEnv during Unmarshal,
	// so they are bound explicitly.
	bindings := map[string][]string{
		"store.table_name": {"TODOS_STORE_TABLE_NAME", LegacyTableEnv},
		"store.region":     {"TODOS_STORE_REGION"},
		"store.endpoint":   {"TODOS_STORE_ENDPOINT"},
		"database.url":     {"TODOS_DATABASE_URL"},
		"mongo.uri":        {"TODOS_MONGO_URI"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("store.backend", BackendDynamoDB)
	v.SetDefault("mongo.database", "todos")
	v.SetDefault("ids.strategy", IDStrategySequential)
}

// Validate checks field constraints and the backend-specific requirements
// that the struct tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("config validation failed: database.url is required for the %s backend", c.Store.Backend)
		}
	case BackendMongoDB:
		if c.Mongo.URI == "" {
			return fmt.Errorf("config validation failed: mongo.uri is required for the %s backend", c.Store.Backend)
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("config validation failed: mongo.database is required for the %s backend", c.Store.Backend)
		}
	}

	return nil
}
