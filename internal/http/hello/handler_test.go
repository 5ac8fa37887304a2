package hello

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/demo-service/internal/platform/logging"
	appmiddleware "github.com/janisto/demo-service/internal/platform/middleware"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
	)
	api := humachi.New(router, huma.DefaultConfig("HelloTest", "test"))
	Register(api, huma.Operation{OperationID: "get-hello", Method: http.MethodGet, Path: "/hello"})
	return router
}

func TestGetHello(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"absent name", "", "Hello World!"},
		{"empty name", "?name=", "Hello World!"},
		{"simple name", "?name=Ada", "Hello Ada!"},
		{"name with spaces", "?name=" + url.QueryEscape("Grace Hopper"), "Hello Grace Hopper!"},
		{"unicode name", "?name=" + url.QueryEscape("Zoë"), "Hello Zoë!"},
		{"markup is not escaped", "?name=" + url.QueryEscape("<b>"), "Hello <b>!"},
		{"repeated parameter uses first", "?name=one&name=two", "Hello one!"},
		{"other parameters ignored", "?foo=bar", "Hello World!"},
	}
	router := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/hello"+tt.query, nil)
			req.Header.Set(chimiddleware.RequestIDHeader, "hello-get")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
			}
			if ct := resp.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("expected text/plain, got %s", ct)
			}
			if body := resp.Body.String(); body != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, body)
			}
		})
	}
}

func TestGreeting(t *testing.T) {
	if got := Greeting(""); got != "Hello World!" {
		t.Fatalf("expected default greeting, got %q", got)
	}
	if got := Greeting(" "); got != "Hello  !" {
		t.Fatalf("expected whitespace to be kept, got %q", got)
	}
}
