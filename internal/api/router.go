package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/todos-api/internal/api/middleware"
)

// maxBodyBytes caps request bodies on the HTTP adapter. API Gateway already
// limits payloads to 10 MB; tasks are far smaller.
const maxBodyBytes = 1 << 20

// NewRouter exposes the handler over plain HTTP. Both task paths accept
// every method so that the route key, not chi, decides what is supported;
// unknown paths reach the handler too and get the unsupported-route reply.
func NewRouter(h *TaskHandler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.HandleFunc(TodosResource, h.ServeHTTP)
	r.HandleFunc(TaskResource, h.ServeHTTP)
	r.NotFound(h.ServeHTTP)
	r.MethodNotAllowed(h.ServeHTTP)

	return r
}

// ServeHTTP converts an HTTP request into a Request, using chi's matched
// pattern as the resource template.
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resource := r.URL.Path
	params := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			resource = pattern
		}
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeResponse(w, h.failure(r.Context(), err))
		return
	}

	resp := h.Handle(r.Context(), Request{
		Method:         r.Method,
		Resource:       strings.TrimSuffix(resource, "/*"),
		PathParameters: params,
		Body:           string(body),
	})
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
