package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/redact"
	"github.com/phrazzld/todos-api/internal/store"
)

const (
	keyAttribute = "task_id"

	// putIfAbsentCondition admits the write when the item is missing, or
	// exists without a title.
	putIfAbsentCondition = "attribute_not_exists(title) AND attribute_not_exists(task_id)"
)

// TaskStore implements store.TaskStore on one DynamoDB table.
type TaskStore struct {
	client API
	table  string
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a TaskStore for table. A nil logger uses slog.Default.
func NewTaskStore(client API, table string, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		client: client,
		table:  table,
		logger: logger.With(slog.String("component", "dynamo_task_store"), slog.String("table", table)),
	}
}

func taskKey(taskID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		keyAttribute: &types.AttributeValueMemberS{Value: taskID},
	}
}

// Get implements store.TaskStore.
func (s *TaskStore) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            taskKey(taskID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		s.log(ctx).Error("failed to get task", slog.String("task_id", taskID), slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "get", "failed to get item", MapError(err))
	}
	if len(out.Item) == 0 {
		return nil, store.ErrTaskNotFound
	}

	var task domain.Task
	if err := attributevalue.UnmarshalMap(out.Item, &task); err != nil {
		return nil, store.NewStoreError("task", "get", "failed to decode item", err)
	}
	return &task, nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	items, err := s.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(s.table)})
	if err != nil {
		return nil, store.NewStoreError("task", "scan", "failed to scan table", err)
	}

	tasks := make([]domain.Task, 0, len(items))
	if len(items) == 0 {
		return tasks, nil
	}
	if err := attributevalue.UnmarshalListOfMaps(items, &tasks); err != nil {
		return nil, store.NewStoreError("task", "scan", "failed to decode items", err)
	}
	return tasks, nil
}

// ListIDs implements store.TaskStore with a task_id projection.
func (s *TaskStore) ListIDs(ctx context.Context) ([]string, error) {
	items, err := s.scan(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(s.table),
		ProjectionExpression: aws.String(keyAttribute),
	})
	if err != nil {
		return nil, store.NewStoreError("task", "scan", "failed to scan task ids", err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		av, ok := item[keyAttribute]
		if !ok {
			continue
		}
		var id string
		if err := attributevalue.Unmarshal(av, &id); err != nil {
			s.log(ctx).Warn("skipping item with non-string task_id", slog.String("error", redact.Error(err)))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *TaskStore) scan(ctx context.Context, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	pages := 0

	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.log(ctx).Error("failed to scan table", slog.Int("pages_read", pages), slog.String("error", redact.Error(err)))
			return nil, MapError(err)
		}
		pages++
		items = append(items, page.Items...)
	}

	s.log(ctx).Debug("scanned table", slog.Int("pages", pages), slog.Int("items", len(items)))
	return items, nil
}

// Put implements store.TaskStore.
func (s *TaskStore) Put(ctx context.Context, task *domain.Task) error {
	return s.put(ctx, task, nil)
}

// PutIfAbsent implements store.TaskStore.
func (s *TaskStore) PutIfAbsent(ctx context.Context, task *domain.Task) error {
	return s.put(ctx, task, aws.String(putIfAbsentCondition))
}

func (s *TaskStore) put(ctx context.Context, task *domain.Task, condition *string) error {
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "put", "invalid task", fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	item, err := attributevalue.MarshalMap(task)
	if err != nil {
		return store.NewStoreError("task", "put", "failed to encode item", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: condition,
	})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return MapError(err)
		}
		s.log(ctx).Error("failed to put task", slog.String("task_id", task.TaskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "put", "failed to put item", MapError(err))
	}
	return nil
}

// Delete implements store.TaskStore. DeleteItem on a missing key succeeds.
func (s *TaskStore) Delete(ctx context.Context, taskID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       taskKey(taskID),
	})
	if err != nil {
		s.log(ctx).Error("failed to delete task", slog.String("task_id", taskID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "failed to delete item", MapError(err))
	}
	return nil
}

func (s *TaskStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
