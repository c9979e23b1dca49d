package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, tasks ...domain.Task) *httptest.Server {
	t.Helper()
	h, _ := newTestHandler(t, tasks...)
	srv := httptest.NewServer(NewRouter(h, logger.New(io.Discard, "error")))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestRouterTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodPost, "/todos", `{"title":"A","description":"d"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"task_id":"1","title":"A","description":"d","status":"Pending"}`, body)

	_, body = doRequest(t, srv, http.MethodGet, "/todos/1", "")
	assert.JSONEq(t, `{"task_id":"1","title":"A","description":"d","status":"Pending"}`, body)

	_, body = doRequest(t, srv, http.MethodPut, "/todos/1", `{"title":"B","description":"e","status":"Done"}`)
	assert.JSONEq(t, `{"task_id":"1","title":"A","description":"d","status":"Pending"}`, body)

	_, body = doRequest(t, srv, http.MethodGet, "/todos", "")
	assert.JSONEq(t, `[{"task_id":"1","title":"A","description":"d","status":"Pending"}]`, body)

	resp, body = doRequest(t, srv, http.MethodDelete, "/todos/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, body)

	resp, body = doRequest(t, srv, http.MethodGet, "/todos/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{}`, body)
}

func TestRouterUnsupportedRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/todos/1"},
		{http.MethodDelete, "/todos"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/todos/1/comments"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, body := doRequest(t, srv, tc.method, tc.path, "")

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, `{"Message":"Unsupported route"}`, body)
		})
	}
}

func TestRouterHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestRouterRejectsOversizedBodies(t *testing.T) {
	srv := newTestServer(t)

	big := `{"title":"` + strings.Repeat("x", maxBodyBytes) + `","description":"d"}`
	resp, body := doRequest(t, srv, http.MethodPost, "/todos", big)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "request body too large")
}
