package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/observability"
	"github.com/matzehuels/wraplayout/pkg/pipeline"
	"github.com/matzehuels/wraplayout/pkg/store"
)

const boxSceneJSON = `{
  "width": 200,
  "horizontal_spacing": 4,
  "vertical_spacing": 16,
  "items": [
    {"id": "a", "width": 40, "height": 20},
    {"id": "b", "width": 50, "height": 20},
    {"id": "c", "width": 30, "height": 20},
    {"id": "d", "width": 60, "height": 20},
    {"id": "e", "width": 20, "height": 20},
    {"id": "f", "width": 70, "height": 20},
    {"id": "g", "width": 10, "height": 20},
    {"id": "h", "width": 35, "height": 20}
  ]
}`

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(New(pipeline.NewRunner(nil, nil, logger), st, logger))
	t.Cleanup(srv.Close)
	return srv, st
}

func postScene(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version == "" {
		t.Errorf("health body = %+v", body)
	}
}

func TestPostLayout(t *testing.T) {
	srv, st := newTestServer(t)
	resp := postScene(t, srv.URL+"/v1/layout", boxSceneJSON)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var lr LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		t.Fatal(err)
	}
	if lr.ID == "" || resp.Header.Get("Location") != "/v1/layouts/"+lr.ID {
		t.Errorf("id = %q, location = %q", lr.ID, resp.Header.Get("Location"))
	}
	if lr.Layout.Size.Width != 192 || lr.Layout.Size.Height != 56 {
		t.Errorf("size = %+v, want {192 56}", lr.Layout.Size)
	}
	if st.Len() != 1 {
		t.Errorf("store has %d layouts, want 1", st.Len())
	}

	get, err := http.Get(srv.URL + "/v1/layouts/" + lr.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", get.StatusCode)
	}
}

func TestPostLayoutOverrides(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		query string
		lines int
	}{
		{"width=0", 8},
		{"width=inf", 1},
		{"width=100&hspacing=0", 4},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := postScene(t, srv.URL+"/v1/layout?"+tt.query, boxSceneJSON)
			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("status = %d, body %+v", resp.StatusCode, decodeError(t, resp))
			}
			var lr LayoutResponse
			if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
				t.Fatal(err)
			}
			if len(lr.Layout.Lines) != tt.lines {
				t.Errorf("lines = %d, want %d", len(lr.Layout.Lines), tt.lines)
			}
		})
	}
}

func TestPostLayoutFormat(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := postScene(t, srv.URL+"/v1/layout?format=svg", boxSceneJSON)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Layout-ID") == "" {
		t.Error("missing X-Layout-ID")
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Error("body is not svg")
	}
}

func TestPostLayoutErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", "", `{"items": [`, http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"unknown field", "", `{"items": [], "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"negative spacing", "", `{"horizontal_spacing": -1, "items": []}`, http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"bad query", "?width=wide", boxSceneJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative width", "?width=-5", boxSceneJSON, http.StatusBadRequest, errors.ErrCodeInvalidConfiguration},
		{"bad format", "?format=gif", boxSceneJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postScene(t, srv.URL+"/v1/layout"+tt.query, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestRenderStored(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := postScene(t, srv.URL+"/v1/layout", boxSceneJSON)
	var lr LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format      string
		contentType string
	}{
		{"", "image/svg+xml"},
		{"png", "image/png"},
		{"json", "application/json"},
		{"txt", "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			r, err := http.Get(srv.URL + "/v1/layouts/" + lr.ID + "/render?format=" + tt.format)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Body.Close()
			if r.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", r.StatusCode)
			}
			if ct := r.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/v1/layouts/missing", "/v1/layouts/missing/render", "/nope"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, resp.StatusCode)
		}
		if e := decodeError(t, resp); e.Code != errors.ErrCodeNotFound {
			t.Errorf("GET %s code = %q", path, e.Code)
		}
		resp.Body.Close()
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu    sync.Mutex
	paths []string
	codes []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
	h.codes = append(h.codes, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/layouts/abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.paths) != 1 || hooks.paths[0] != "/v1/layouts/{id}" || hooks.codes[0] != http.StatusNotFound {
		t.Errorf("hooks saw paths %v codes %v", hooks.paths, hooks.codes)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), store.NewMemoryStore(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
