package store

import (
	"context"

	"github.com/phrazzld/todos-api/internal/domain"
)

// TaskStore is a durable mapping from task_id to a task record.
//
// Calls are individual and blocking; no operation spans more than one key
// transactionally, and implementations do not retry.
type TaskStore interface {
	// Get retrieves a task by ID.
	// Returns ErrTaskNotFound if no record exists.
	Get(ctx context.Context, taskID string) (*domain.Task, error)

	// List returns every stored task, in no particular order.
	List(ctx context.Context) ([]domain.Task, error)

	// ListIDs returns the task_id of every stored task. Backends project the
	// single attribute rather than reading whole records.
	ListIDs(ctx context.Context) ([]string, error)

	// Put stores task unconditionally, replacing any existing record.
	Put(ctx context.Context, task *domain.Task) error

	// PutIfAbsent stores task only if no record with its task_id has a title.
	// Returns ErrConditionFailed, without writing, when one does.
	PutIfAbsent(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID. Deleting an ID that does
	// not exist is not an error.
	Delete(ctx context.Context, taskID string) error
}
