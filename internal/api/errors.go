package api

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/redact"
)

// UnsupportedRouteMessage is the body message for unmatched route keys.
const UnsupportedRouteMessage = "Unsupported route"

// DeletedMessage confirms a delete, whether or not the task existed.
const DeletedMessage = "Task deleted successfully"

// ErrMissingTaskID is returned when a single-task route has no task_id.
var ErrMissingTaskID = domain.NewValidationError(TaskIDParam, "is required")

// ErrMalformedBody is returned when a base64-flagged body does not decode.
var ErrMalformedBody = domain.NewValidationError("body", "is not valid base64")

// SafeErrorMessage returns the text echoed to the client for err. Every
// failure is reported, but credentials and resource identifiers are
// scrubbed first.
func SafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}
	return redact.Error(err)
}

// logLevelFor keeps client mistakes out of the error log.
func logLevelFor(err error) slog.Level {
	if errors.Is(err, domain.ErrValidation) {
		return slog.LevelDebug
	}
	return slog.LevelError
}
