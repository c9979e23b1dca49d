package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todos-api/internal/api/shared"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddlewareGeneratesTraceID(t *testing.T) {
	var buf bytes.Buffer
	var seenTrace string
	var seenLogger bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
		seenLogger = logger.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	})

	handler := NewTraceMiddleware(logger.New(&buf, "debug"))(next)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, seenTrace, 32)
	assert.True(t, seenLogger)
	assert.Contains(t, buf.String(), seenTrace)
	assert.Contains(t, buf.String(), `"status":418`)
}

func TestTraceMiddlewareReusesChiRequestID(t *testing.T) {
	var seenTrace string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTrace = shared.GetTraceID(r.Context())
	})

	handler := chimw.RequestID(NewTraceMiddleware(nil)(next))
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(chimw.RequestIDHeader, "gateway-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotEmpty(t, seenTrace)
	assert.True(t, strings.HasPrefix(seenTrace, "gateway-123"))
}
