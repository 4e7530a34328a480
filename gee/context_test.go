package gee

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAbortStopsHandlerChain(t *testing.T) {
	var executed []int
	c := newContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	c.handlers = []HandlerFunc{
		func(c *Context) { executed = append(executed, 1); c.Next() },
		func(c *Context) { executed = append(executed, 2); c.Abort(); c.Next() },
		func(c *Context) { executed = append(executed, 3) },
	}

	c.Next()

	if len(executed) != 2 || executed[0] != 1 || executed[1] != 2 {
		t.Fatalf("executed: got %v, want [1 2]", executed)
	}
	if !c.IsAborted() {
		t.Fatal("context should be aborted")
	}
}

func TestAbortWithErrorWritesErrorBody(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	c := newContext(w, req)

	c.AbortWithError(http.StatusBadRequest, "URL is required")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "URL is required" {
		t.Fatalf("error: got %q", body["error"])
	}
	if body["request_id"] != "req-1" {
		t.Fatalf("request_id: got %q", body["request_id"])
	}
}

func TestAbortWithStatusJSONSkipsWhenWritten(t *testing.T) {
	w := httptest.NewRecorder()
	c := newContext(w, httptest.NewRequest(http.MethodGet, "/", nil))
	c.String(http.StatusOK, "already")

	c.AbortWithStatusJSON(http.StatusInternalServerError, H{"error": "late"})

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "already" {
		t.Fatalf("body: got %q", w.Body.String())
	}
}

func TestRedirectSetsLocation(t *testing.T) {
	w := httptest.NewRecorder()
	c := newContext(w, httptest.NewRequest(http.MethodGet, "/abc", nil))

	c.Redirect(http.StatusMovedPermanently, "https://example.com/path")

	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("status: got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "https://example.com/path" {
		t.Fatalf("Location: got %q", got)
	}
}

func TestRedirectRejectsNon3xx(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for status 200")
		}
	}()
	c := newContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	c.Redirect(http.StatusOK, "https://example.com")
}

func TestShouldBindJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		wantURL string
	}{
		{"valid", `{"url":"https://example.com"}`, nil, "https://example.com"},
		{"empty body", ``, ErrEmptyBody, ""},
		{"two values", `{"url":"a"}{"url":"b"}`, ErrMultipleJSON, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c := newContext(httptest.NewRecorder(), req)
			var dst struct {
				URL string `json:"url"`
			}
			err := c.ShouldBindJSON(&dst)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if dst.URL != tt.wantURL {
				t.Fatalf("url: got %q, want %q", dst.URL, tt.wantURL)
			}
		})
	}
}

func TestBindJSONMalformedAborts(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"url":`))
	c := newContext(w, req)

	var dst map[string]any
	if err := c.BindJSON(&dst); err == nil {
		t.Fatal("expected error")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	if !c.IsAborted() {
		t.Fatal("context should be aborted")
	}
}
