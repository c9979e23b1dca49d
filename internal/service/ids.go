package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/todos-api/internal/config"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/store"
)

// IDAllocator hands out the task_id for a new task.
type IDAllocator interface {
	NextID(ctx context.Context) (string, error)
}

// SequentialAllocator numbers tasks 1, 2, 3, ... by scanning every stored
// task_id and returning max+1.
//
// The scan is O(n) per call and nothing serialises concurrent callers: two
// creates racing on the same table can both compute the same ID, and the
// second unconditional put overwrites the first.
type SequentialAllocator struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewSequentialAllocator creates a SequentialAllocator reading IDs from s.
func NewSequentialAllocator(s store.TaskStore, logger *slog.Logger) *SequentialAllocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SequentialAllocator{
		store:  s,
		logger: logger.With(slog.String("component", "id_allocator")),
	}
}

// NextID returns one more than the largest numeric task_id, or "1" when the
// table holds no numeric IDs. Non-numeric IDs are skipped.
func (a *SequentialAllocator) NextID(ctx context.Context) (string, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	ids, err := a.store.ListIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to enumerate task ids: %w", err)
	}

	var highest int64
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			log.Warn("skipping non-numeric task id during allocation", slog.String("task_id", id))
			continue
		}
		if n > highest {
			highest = n
		}
	}

	next := strconv.FormatInt(highest+1, 10)
	log.Debug("allocated task id",
		slog.String("task_id", next),
		slog.Int("scanned", len(ids)))
	return next, nil
}

// UUIDAllocator issues random version 4 UUIDs. It never reads the store, so
// concurrent creates cannot collide.
type UUIDAllocator struct {
	newID func() uuid.UUID
}

// NewUUIDAllocator creates a UUIDAllocator.
func NewUUIDAllocator() *UUIDAllocator {
	return &UUIDAllocator{newID: uuid.New}
}

// NextID returns a fresh UUID string.
func (a *UUIDAllocator) NextID(_ context.Context) (string, error) {
	return a.newID().String(), nil
}

// NewIDAllocator builds the allocator named by strategy.
func NewIDAllocator(strategy string, s store.TaskStore, logger *slog.Logger) (IDAllocator, error) {
	switch strategy {
	case config.IDStrategySequential, "":
		return NewSequentialAllocator(s, logger), nil
	case config.IDStrategyUUID:
		return NewUUIDAllocator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIDStrategy, strategy)
	}
}
