package about

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

func newTestRouter() (chi.Router, huma.API) {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("AboutTest", "test"))
	Register(api, huma.Operation{OperationID: "get-about", Method: http.MethodGet, Path: "/about.json"})
	return router, api
}

func get(t *testing.T, router http.Handler, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/about.json", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	return resp
}

func TestGetJSONHasExactlyThreeKeys(t *testing.T) {
	router, _ := newTestRouter()
	resp := get(t, router, "")

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	var got map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	want := map[string]any{
		"name":        "Spring Boot",
		"description": "Spring Boot is a Spring module which provides RAD (Rapid Application Development) feature to Spring framework.",
		"website":     "https://spring.io/projects/spring-boot",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestGetJSONIsStable(t *testing.T) {
	router, _ := newTestRouter()
	first := get(t, router, "*/*").Body.String()
	for range 3 {
		if body := get(t, router, "*/*").Body.String(); body != first {
			t.Fatalf("expected identical bodies, got %q and %q", first, body)
		}
	}
}

func TestGetFallsBackToJSONForUnsupportedAccept(t *testing.T) {
	router, _ := newTestRouter()
	resp := get(t, router, "text/html")

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
}

func TestGetCBOR(t *testing.T) {
	router, _ := newTestRouter()
	resp := get(t, router, "application/cbor")

	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %s", ct)
	}
	var got About
	if err := cbor.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if diff := cmp.Diff(Project, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAPIDocumentsAboutSchema(t *testing.T) {
	_, api := newTestRouter()

	op := api.OpenAPI().Paths["/about.json"].Get
	if op == nil {
		t.Fatal("expected GET /about.json in OpenAPI")
	}
	content := op.Responses["200"].Content
	for _, ct := range []string{"application/json", "application/cbor"} {
		if content[ct] == nil || content[ct].Schema == nil {
			t.Fatalf("expected %s schema, got %+v", ct, content)
		}
	}
	if api.OpenAPI().Components.Schemas.Map()["About"] == nil {
		t.Fatal("expected About schema to be registered")
	}
}
