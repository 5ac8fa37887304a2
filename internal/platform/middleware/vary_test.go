package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVaryMiddlewareSetsHeader(t *testing.T) {
	h := Vary()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	}))
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := resp.Header().Get("Vary"); got != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", got)
	}
	if resp.Body.String() != "pong" {
		t.Fatalf("expected body to be preserved, got %q", resp.Body.String())
	}
}

func TestAddVaryMergesWithoutDuplicates(t *testing.T) {
	h := http.Header{}
	h.Add("Vary", "Origin, accept")

	AddVary(h, "Accept", "Accept-Encoding", "", "accept-encoding")

	want := []string{"Origin, accept", "Accept-Encoding"}
	if diff := cmp.Diff(want, h.Values("Vary")); diff != "" {
		t.Fatalf("Vary mismatch (-want +got):\n%s", diff)
	}
}
