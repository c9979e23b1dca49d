package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/store"
)

// TaskService provides the task list operations.
type TaskService interface {
	// ListTasks returns every stored task.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// GetTask returns the task with the given ID or ErrTaskNotFound.
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// CreateTask allocates an ID, stores a pending task and returns the
	// stored record as read back from the store.
	CreateTask(ctx context.Context, title, description string) (*domain.Task, error)

	// UpdateTask writes the replacement only when no titled record exists at
	// taskID. Otherwise the request is discarded and the existing record is
	// returned unchanged.
	UpdateTask(ctx context.Context, taskID, title, description, status string) (*domain.Task, error)

	// DeleteTask removes the task. Missing IDs are not an error.
	DeleteTask(ctx context.Context, taskID string) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store  store.TaskStore
	ids    IDAllocator
	logger *slog.Logger
}

// NewTaskService creates a TaskService. A nil logger uses slog.Default.
func NewTaskService(s store.TaskStore, ids IDAllocator, logger *slog.Logger) (TaskService, error) {
	if s == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if ids == nil {
		return nil, errors.New("id allocator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:  s,
		ids:    ids,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "could not scan tasks", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.store.Get(ctx, taskID)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "could not read task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, title, description string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := s.ids.NextID(ctx)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "could not allocate task id", err)
	}

	task, err := domain.NewTask(taskID, title, description)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "invalid task", err)
	}

	// Unconditional: the ID is fresh, but a concurrent create may have
	// computed the same one.
	if err := s.store.Put(ctx, task); err != nil {
		return nil, NewTaskServiceError("create_task", "could not store task", err)
	}

	log.Info("task created", slog.String("task_id", taskID))
	return s.GetTask(ctx, taskID)
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	taskID, title, description, status string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := &domain.Task{
		TaskID:      taskID,
		Title:       title,
		Description: description,
		Status:      status,
	}
	if err := task.Validate(); err != nil {
		return nil, NewTaskServiceError("update_task", "invalid task", err)
	}

	err := s.store.PutIfAbsent(ctx, task)
	switch {
	case err == nil:
		log.Info("task written", slog.String("task_id", taskID))
	case store.IsConditionFailed(err):
		log.Info("task with this id already has a title, update discarded",
			slog.String("task_id", taskID))
	default:
		return nil, NewTaskServiceError("update_task", "could not store task", err)
	}

	return s.GetTask(ctx, taskID)
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.store.Delete(ctx, taskID); err != nil {
		return NewTaskServiceError("delete_task", "could not delete task", err)
	}

	log.Info("task deleted", slog.String("task_id", taskID))
	return nil
}
