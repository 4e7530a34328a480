package gee

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoveryReturnsJSON500(t *testing.T) {
	r := New()
	r.Use(Recovery())
	r.GET("/panic", func(ctx *Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Internal Server Error"`) {
		t.Fatalf("body: got %s", rec.Body.String())
	}
}

func TestRecoveryKeepsPartialResponse(t *testing.T) {
	r := New()
	r.Use(Recovery())
	r.GET("/partial", func(ctx *Context) {
		ctx.String(http.StatusOK, "partial")
		panic("after write")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partial", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "partial" {
		t.Fatalf("body: got %q", rec.Body.String())
	}
}
