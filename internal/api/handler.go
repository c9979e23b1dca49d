package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/service"
)

// TaskHandler turns a Request into a Response, performing at most one
// logical task operation. It never returns an error: every failure becomes
// a 400 JSON body.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler. A nil logger uses slog.Default.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Handle dispatches req on its route key.
func (h *TaskHandler) Handle(ctx context.Context, req Request) (resp Response) {
	if shared.GetTraceID(ctx) == "" {
		ctx = shared.SetTraceID(ctx)
	}
	route := ParseRoute(req.Method, req.Resource)
	log := h.logger.With(
		slog.String("trace_id", shared.GetTraceID(ctx)),
		slog.String("route_key", RouteKey(req.Method, req.Resource)),
	)
	ctx = logger.WithLogger(ctx, log)

	defer func() {
		if p := recover(); p != nil {
			log.Error("recovered from panic while handling request", slog.Any("panic", p))
			resp = h.failure(ctx, fmt.Errorf("internal error: %v", p))
		}
	}()

	log.Debug("handling request", slog.String("route", route.String()))

	var taskID string
	if route.NeedsTaskID() {
		taskID = req.PathParameters[TaskIDParam]
		if taskID == "" {
			return h.failure(ctx, ErrMissingTaskID)
		}
	}

	switch route {
	case RouteListTasks:
		return h.listTasks(ctx)
	case RouteGetTask:
		return h.getTask(ctx, taskID)
	case RouteDeleteTask:
		return h.deleteTask(ctx, taskID)
	case RouteCreateTask:
		return h.createTask(ctx, req.Body)
	case RouteUpdateTask:
		return h.updateTask(ctx, taskID, req.Body)
	case RouteUnsupported:
		log.Debug("unsupported route")
		return h.respond(ctx, http.StatusBadRequest, MessageResponse{Message: UnsupportedRouteMessage})
	default:
		panic(fmt.Sprintf("unhandled route %s", route))
	}
}

func (h *TaskHandler) listTasks(ctx context.Context) Response {
	tasks, err := h.tasks.ListTasks(ctx)
	if err != nil {
		return h.failure(ctx, err)
	}
	return h.respond(ctx, http.StatusOK, tasks)
}

func (h *TaskHandler) getTask(ctx context.Context, taskID string) Response {
	task, err := h.tasks.GetTask(ctx, taskID)
	return h.taskOrEmpty(ctx, task, err)
}

func (h *TaskHandler) deleteTask(ctx context.Context, taskID string) Response {
	if err := h.tasks.DeleteTask(ctx, taskID); err != nil {
		return h.failure(ctx, err)
	}
	return h.respond(ctx, http.StatusOK, DeletedResponse{Message: DeletedMessage})
}

func (h *TaskHandler) createTask(ctx context.Context, body string) Response {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(body, &req); err != nil {
		return h.failure(ctx, err)
	}
	if err := shared.ValidateRequest(&req); err != nil {
		return h.failure(ctx, err)
	}

	task, err := h.tasks.CreateTask(ctx, *req.Title, *req.Description)
	return h.taskOrEmpty(ctx, task, err)
}

func (h *TaskHandler) updateTask(ctx context.Context, taskID, body string) Response {
	var req UpdateTaskRequest
	if err := shared.DecodeJSON(body, &req); err != nil {
		return h.failure(ctx, err)
	}
	if err := shared.ValidateRequest(&req); err != nil {
		return h.failure(ctx, err)
	}

	task, err := h.tasks.UpdateTask(ctx, taskID, *req.Title, *req.Description, *req.Status)
	return h.taskOrEmpty(ctx, task, err)
}

// taskOrEmpty renders a missing task as {} with status 200.
func (h *TaskHandler) taskOrEmpty(ctx context.Context, task *domain.Task, err error) Response {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return h.respond(ctx, http.StatusOK, emptyObject{})
	case err != nil:
		return h.failure(ctx, err)
	default:
		return h.respond(ctx, http.StatusOK, task)
	}
}

func (h *TaskHandler) failure(ctx context.Context, err error) Response {
	message := SafeErrorMessage(err)
	logger.FromContextOrDefault(ctx, h.logger).Log(ctx, logLevelFor(err), "request failed",
		slog.String("error", message),
		slog.String("error_type", fmt.Sprintf("%T", err)))
	return h.respond(ctx, http.StatusBadRequest, ErrorResponse{Error: message})
}

func (h *TaskHandler) respond(ctx context.Context, status int, data any) Response {
	body, err := json.Marshal(data)
	if err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
		status = http.StatusBadRequest
		body, _ = json.Marshal(ErrorResponse{Error: "failed to encode response"})
	}
	return Response{
		StatusCode: status,
		Body:       string(body),
		Headers:    DefaultHeaders(),
	}
}

// DefaultHeaders returns the headers attached to every response.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
