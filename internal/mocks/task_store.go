package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Without function overrides it behaves like a real table held in memory,
// including the title-absent condition on PutIfAbsent.
type MockTaskStore struct {
	// Function fields for customizable behavior
	GetFn         func(ctx context.Context, taskID string) (*domain.Task, error)
	ListFn        func(ctx context.Context) ([]domain.Task, error)
	ListIDsFn     func(ctx context.Context) ([]string, error)
	PutFn         func(ctx context.Context, task *domain.Task) error
	PutIfAbsentFn func(ctx context.Context, task *domain.Task) error
	DeleteFn      func(ctx context.Context, taskID string) error

	// Data for default implementation
	Tasks map[string]domain.Task
	Calls []string

	mu sync.Mutex
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a mock store seeded with tasks.
func NewMockTaskStore(tasks ...domain.Task) *MockTaskStore {
	m := &MockTaskStore{Tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		m.Tasks[t.TaskID] = t
	}
	return m
}

// ensureTasks allocates Tasks for a zero-value mock. Callers hold mu.
func (m *MockTaskStore) ensureTasks() {
	if m.Tasks == nil {
		m.Tasks = make(map[string]domain.Task)
	}
}

func (m *MockTaskStore) record(call string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	m.mu.Unlock()
}

// Called reports whether the named method has been invoked.
func (m *MockTaskStore) Called(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c == name {
			return true
		}
	}
	return false
}

// Get implements the TaskStore interface
func (m *MockTaskStore) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	m.record("Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[taskID]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ListIDs implements the TaskStore interface
func (m *MockTaskStore) ListIDs(ctx context.Context) ([]string, error) {
	m.record("ListIDs")
	if m.ListIDsFn != nil {
		return m.ListIDsFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.Tasks))
	for id := range m.Tasks {
		ids = append(ids, id)
	}
	return ids, nil
}

// Put implements the TaskStore interface
func (m *MockTaskStore) Put(ctx context.Context, task *domain.Task) error {
	m.record("Put")
	if m.PutFn != nil {
		return m.PutFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureTasks()
	m.Tasks[task.TaskID] = *task
	return nil
}

// PutIfAbsent implements the TaskStore interface
func (m *MockTaskStore) PutIfAbsent(ctx context.Context, task *domain.Task) error {
	m.record("PutIfAbsent")
	if m.PutIfAbsentFn != nil {
		return m.PutIfAbsentFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Tasks[task.TaskID]; exists {
		return store.ErrConditionFailed
	}
	m.ensureTasks()
	m.Tasks[task.TaskID] = *task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, taskID string) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Tasks, taskID)
	return nil
}
