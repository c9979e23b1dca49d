package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/redact"
	"github.com/phrazzld/todos-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskStore implements store.TaskStore on one collection.
type TaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore over coll. A nil logger uses slog.Default.
func NewTaskStore(coll *mongo.Collection, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		coll: coll,
		logger: logger.With(
			slog.String("component", "mongodb_task_store"),
			slog.String("collection", coll.Name()),
		),
	}
}

func byID(taskID string) bson.M {
	return bson.M{"_id": taskID}
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	var task domain.Task
	err := s.coll.FindOne(ctx, byID(taskID)).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to get task", slog.String("task_id", taskID), slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "get", "failed to find task", MapError(err))
	}
	return &task, nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		s.log(ctx).Error("failed to list tasks", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "scan", "failed to find tasks", MapError(err))
	}

	tasks := []domain.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, store.NewStoreError("task", "scan", "failed to decode tasks", err)
	}
	return tasks, nil
}

// ListIDs implements store.TaskStore, projecting only _id.
func (s *TaskStore) ListIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		s.log(ctx).Error("failed to list task ids", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "scan", "failed to find task ids", MapError(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			s.log(ctx).Warn("skipping document with non-string _id", slog.String("error", redact.Error(err)))
			continue
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, store.NewStoreError("task", "scan", "cursor failed", MapError(err))
	}
	return ids, nil
}

// Put implements store.TaskStore as an upserting replace.
func (s *TaskStore) Put(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "put", "invalid task", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	_, err := s.coll.ReplaceOne(ctx, byID(task.TaskID), task, options.Replace().SetUpsert(true))
	if err != nil {
		s.log(ctx).Error("failed to put task", slog.String("task_id", task.TaskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "put", "failed to replace task", MapError(err))
	}
	return nil
}

// PutIfAbsent implements store.TaskStore. An existing _id makes the insert
// fail with a duplicate key error.
func (s *TaskStore) PutIfAbsent(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "put", "invalid task", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		mapped := MapError(err)
		if store.IsConditionFailed(mapped) {
			return mapped
		}
		s.log(ctx).Error("failed to insert task", slog.String("task_id", task.TaskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "put", "failed to insert task", mapped)
	}
	return nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	if _, err := s.coll.DeleteOne(ctx, byID(taskID)); err != nil {
		s.log(ctx).Error("failed to delete task", slog.String("task_id", taskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}
	return nil
}

func (s *TaskStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
