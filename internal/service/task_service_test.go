package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/mocks"
	"github.com/phrazzld/todos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, s *mocks.MockTaskStore) TaskService {
	t.Helper()
	svc, err := NewTaskService(s, NewSequentialAllocator(s, nil), nil)
	require.NoError(t, err)
	return svc
}

func TestNewTaskServiceValidatesDependencies(t *testing.T) {
	s := mocks.NewMockTaskStore()

	_, err := NewTaskService(nil, NewUUIDAllocator(), nil)
	assert.Error(t, err)

	_, err = NewTaskService(s, nil, nil)
	assert.Error(t, err)
}

func TestCreateTask(t *testing.T) {
	t.Run("empty table gets id 1", func(t *testing.T) {
		s := mocks.NewMockTaskStore()
		svc := newTestService(t, s)

		task, err := svc.CreateTask(context.Background(), "A", "d")

		require.NoError(t, err)
		assert.Equal(t, &domain.Task{TaskID: "1", Title: "A", Description: "d", Status: "Pending"}, task)
		assert.Contains(t, s.Tasks, "1")
	})

	t.Run("next id follows the maximum", func(t *testing.T) {
		s := mocks.NewMockTaskStore(
			domain.Task{TaskID: "4", Title: "x", Description: "y", Status: "Done"},
			domain.Task{TaskID: "2", Title: "x", Description: "y", Status: "Pending"},
		)
		svc := newTestService(t, s)

		task, err := svc.CreateTask(context.Background(), "B", "e")

		require.NoError(t, err)
		assert.Equal(t, "5", task.TaskID)
		assert.Equal(t, domain.StatusPending, task.Status)
	})

	t.Run("returns the record read back from the store", func(t *testing.T) {
		s := mocks.NewMockTaskStore()
		s.GetFn = func(ctx context.Context, taskID string) (*domain.Task, error) {
			return &domain.Task{TaskID: taskID, Title: "stored", Description: "d", Status: "Pending"}, nil
		}
		svc := newTestService(t, s)

		task, err := svc.CreateTask(context.Background(), "A", "d")

		require.NoError(t, err)
		assert.Equal(t, "stored", task.Title)
	})

	t.Run("put failure is wrapped", func(t *testing.T) {
		cause := errors.New("provisioned throughput exceeded")
		s := mocks.NewMockTaskStore()
		s.PutFn = func(ctx context.Context, task *domain.Task) error { return cause }
		svc := newTestService(t, s)

		_, err := svc.CreateTask(context.Background(), "A", "d")

		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
		assert.ErrorIs(t, err, cause)
	})
}

func TestGetTask(t *testing.T) {
	s := mocks.NewMockTaskStore(domain.Task{TaskID: "1", Title: "A", Description: "d", Status: "Pending"})
	svc := newTestService(t, s)

	task, err := svc.GetTask(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "A", task.Title)

	_, err = svc.GetTask(context.Background(), "99")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListTasks(t *testing.T) {
	t.Run("empty table returns empty slice", func(t *testing.T) {
		svc := newTestService(t, mocks.NewMockTaskStore())

		tasks, err := svc.ListTasks(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("returns all tasks", func(t *testing.T) {
		svc := newTestService(t, mocks.NewMockTaskStore(
			domain.Task{TaskID: "1", Title: "A"},
			domain.Task{TaskID: "2", Title: "B"},
		))

		tasks, err := svc.ListTasks(context.Background())

		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("nil from store becomes empty slice", func(t *testing.T) {
		s := mocks.NewMockTaskStore()
		s.ListFn = func(ctx context.Context) ([]domain.Task, error) { return nil, nil }
		svc := newTestService(t, s)

		tasks, err := svc.ListTasks(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []domain.Task{}, tasks)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("existing task is left unchanged", func(t *testing.T) {
		existing := domain.Task{TaskID: "1", Title: "A", Description: "d", Status: "Pending"}
		s := mocks.NewMockTaskStore(existing)
		svc := newTestService(t, s)

		task, err := svc.UpdateTask(context.Background(), "1", "B", "e", "Done")

		require.NoError(t, err)
		assert.Equal(t, &existing, task)
		assert.Equal(t, existing, s.Tasks["1"])
	})

	t.Run("new id is written", func(t *testing.T) {
		s := mocks.NewMockTaskStore()
		svc := newTestService(t, s)

		task, err := svc.UpdateTask(context.Background(), "7", "B", "e", "Done")

		require.NoError(t, err)
		want := domain.Task{TaskID: "7", Title: "B", Description: "e", Status: "Done"}
		assert.Equal(t, &want, task)
		assert.Equal(t, want, s.Tasks["7"])
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		cause := errors.New("access denied")
		s := mocks.NewMockTaskStore()
		s.PutIfAbsentFn = func(ctx context.Context, task *domain.Task) error { return cause }
		svc := newTestService(t, s)

		_, err := svc.UpdateTask(context.Background(), "7", "B", "e", "Done")

		assert.ErrorIs(t, err, cause)
		assert.False(t, s.Called("Get"))
	})

	t.Run("wrapped condition failure is still a no-op", func(t *testing.T) {
		s := mocks.NewMockTaskStore(domain.Task{TaskID: "3", Title: "A"})
		s.PutIfAbsentFn = func(ctx context.Context, task *domain.Task) error {
			return store.NewStoreError("task", "put", "title already set", store.ErrConditionFailed)
		}
		svc := newTestService(t, s)

		task, err := svc.UpdateTask(context.Background(), "3", "B", "e", "Done")

		require.NoError(t, err)
		assert.Equal(t, "A", task.Title)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		svc := newTestService(t, mocks.NewMockTaskStore())

		_, err := svc.UpdateTask(context.Background(), "", "B", "e", "Done")

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDeleteTask(t *testing.T) {
	s := mocks.NewMockTaskStore(domain.Task{TaskID: "1", Title: "A"})
	svc := newTestService(t, s)

	require.NoError(t, svc.DeleteTask(context.Background(), "1"))
	assert.NotContains(t, s.Tasks, "1")

	assert.NoError(t, svc.DeleteTask(context.Background(), "1"), "delete should be idempotent")
}

func TestNewTaskServiceError(t *testing.T) {
	assert.Nil(t, NewTaskServiceError("op", "msg", nil))
	assert.Equal(t, ErrTaskNotFound, NewTaskServiceError("op", "msg", store.ErrTaskNotFound))

	missingTable := fmt.Errorf("%w: table: ResourceNotFoundException", store.ErrNotFound)
	err := NewTaskServiceError("get_task", "could not read task", missingTable)
	assert.NotErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = NewTaskServiceError("list_tasks", "could not scan tasks", errors.New("boom"))
	assert.Equal(t, "task service list_tasks failed: could not scan tasks: boom", err.Error())
}
