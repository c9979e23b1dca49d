package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/redact"
	"github.com/phrazzld/todos-api/internal/store"
)

// TableName is the table created by the embedded migrations. It is fixed;
// the configured store table name does not apply to this backend.
const TableName = "tasks"

// PostgresTaskStore implements store.TaskStore on the tasks table created
// by the embedded migrations.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgresTaskStore.
// It panics if db is nil. A nil logger uses slog.Default.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_task_store")),
	}
}

// WithTx returns a store that runs its queries inside tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) *PostgresTaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Get implements store.TaskStore.
func (s *PostgresTaskStore) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	const query = `
		SELECT task_id, title, description, status
		FROM tasks
		WHERE task_id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, taskID).
		Scan(&task.TaskID, &task.Title, &task.Description, &task.Status)
	if IsNotFoundError(err) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to get task", slog.String("task_id", taskID), slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}
	return &task, nil
}

// List implements store.TaskStore.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	const query = `SELECT task_id, title, description, status FROM tasks`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.log(ctx).Error("failed to list tasks", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "scan", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.TaskID, &task.Title, &task.Description, &task.Status); err != nil {
			return nil, store.NewStoreError("task", "scan", "failed to scan task row", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "scan", "error iterating task rows", MapError(err))
	}
	return tasks, nil
}

// ListIDs implements store.TaskStore.
func (s *PostgresTaskStore) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT task_id FROM tasks`)
	if err != nil {
		s.log(ctx).Error("failed to list task ids", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "scan", "failed to query task ids", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, store.NewStoreError("task", "scan", "failed to scan task id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "scan", "error iterating task ids", MapError(err))
	}
	return ids, nil
}

// Put implements store.TaskStore as an upsert.
func (s *PostgresTaskStore) Put(ctx context.Context, task *domain.Task) error {
	const query = `
		INSERT INTO tasks (task_id, title, description, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (task_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    status = EXCLUDED.status,
		    updated_at = NOW()
	`

	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "put", "invalid task", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	if _, err := s.db.ExecContext(ctx, query, task.TaskID, task.Title, task.Description, task.Status); err != nil {
		s.log(ctx).Error("failed to put task", slog.String("task_id", task.TaskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "put", "failed to upsert task", MapError(err))
	}
	return nil
}

// PutIfAbsent implements store.TaskStore. A conflicting row leaves zero
// rows affected, which is reported as store.ErrConditionFailed.
func (s *PostgresTaskStore) PutIfAbsent(ctx context.Context, task *domain.Task) error {
	const query = `
		INSERT INTO tasks (task_id, title, description, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (task_id) DO NOTHING
	`

	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "put", "invalid task", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	result, err := s.db.ExecContext(ctx, query, task.TaskID, task.Title, task.Description, task.Status)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapError(err)
		}
		s.log(ctx).Error("failed to insert task", slog.String("task_id", task.TaskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "put", "failed to insert task", MapError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "put", "failed to get rows affected", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %s exists", store.ErrConditionFailed, task.TaskID)
	}
	return nil
}

// Delete implements store.TaskStore. Zero rows affected is not an error.
func (s *PostgresTaskStore) Delete(ctx context.Context, taskID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, taskID); err != nil {
		s.log(ctx).Error("failed to delete task", slog.String("task_id", taskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}
	return nil
}

func (s *PostgresTaskStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
