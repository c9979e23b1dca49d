package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/api"
	"github.com/phrazzld/todos-api/internal/config"
	"github.com/phrazzld/todos-api/internal/platform/dynamo"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/platform/mongodb"
	"github.com/phrazzld/todos-api/internal/platform/postgres"
	"github.com/phrazzld/todos-api/internal/service"
	"github.com/phrazzld/todos-api/internal/store"
)

// application holds the wired components shared by every subcommand.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	handler *api.TaskHandler
	closers []func(context.Context) error
}

// loadConfig loads configuration and installs the default logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("backend", cfg.Store.Backend),
		slog.String("table", cfg.Store.TableName),
		slog.String("id_strategy", cfg.IDs.Strategy),
		slog.String("log_level", cfg.Server.LogLevel))
	return cfg, log, nil
}

// initializeApp loads configuration, opens the configured store and wires
// the handler. Any failure is returned before a request is served.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s, closer, err := openTaskStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	app, err := newApplication(cfg, log, s)
	if err != nil {
		_ = closer(ctx)
		return nil, err
	}
	app.closers = append(app.closers, closer)
	return app, nil
}

// newApplication wires the service and handler over s.
func newApplication(cfg *config.Config, log *slog.Logger, s store.TaskStore) (*application, error) {
	ids, err := service.NewIDAllocator(cfg.IDs.Strategy, s, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create id allocator: %w", err)
	}

	tasks, err := service.NewTaskService(s, ids, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:  cfg,
		logger:  log,
		handler: api.NewTaskHandler(tasks, log),
	}, nil
}

func noopCloser(context.Context) error { return nil }

// openTaskStore connects to the backend named in cfg.Store.Backend.
func openTaskStore(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
) (store.TaskStore, func(context.Context) error, error) {
	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		return dynamo.NewTaskStore(client, cfg.Store.TableName, log), noopCloser, nil

	case config.BackendPostgres:
		warnIgnoredTableName(cfg.Store, log)
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		closer := func(context.Context) error { return db.Close() }
		return postgres.NewPostgresTaskStore(db, log), closer, nil

	case config.BackendMongoDB:
		client, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Store.TableName)
		return mongodb.NewTaskStore(coll, log), client.Disconnect, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// warnIgnoredTableName flags a store.table_name that the postgres backend
// will not use.
func warnIgnoredTableName(cfg config.StoreConfig, log *slog.Logger) {
	if cfg.TableName == postgres.TableName {
		return
	}
	log.Warn("store.table_name is ignored by the postgres backend",
		slog.String("configured_table", cfg.TableName),
		slog.String("table", postgres.TableName))
}

// cleanup releases store connections.
func (app *application) cleanup(ctx context.Context) error {
	var errs []error
	for _, closeFn := range app.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error("cleanup failed", slog.Any("error", err))
		return err
	}
	return nil
}
