package api

// Request is a transport-neutral description of one API call. Resource is
// the matched route template, not the concrete path.
type Request struct {
	Method         string
	Resource       string
	PathParameters map[string]string
	Body           string
}

// Response is what the handler produces for every request. Body is always
// a JSON document.
type Response struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// CreateTaskRequest is the POST /todos body. Fields are pointers so that a
// missing key is distinguishable from an empty string.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// UpdateTaskRequest is the PUT /todos/{task_id} body.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
	Status      *string `json:"status"      validate:"required"`
}

// MessageResponse carries informational replies.
type MessageResponse struct {
	Message string `json:"Message"`
}

// DeletedResponse is returned after a delete.
type DeletedResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries the text of a failed operation. The key, colon
// included, is what existing clients parse.
type ErrorResponse struct {
	Error string `json:"Error:"`
}

// emptyObject renders as {} for lookups that found nothing.
type emptyObject struct{}
