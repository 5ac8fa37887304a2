// Package respond renders raw huma bodies and the problem-details responses
// produced outside of huma operations (unknown routes, wrong methods, panics).
package respond

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/demo-service/internal/platform/logging"
	appmiddleware "github.com/janisto/demo-service/internal/platform/middleware"
)

const (
	// ContentTypeText is used for every plain-text route.
	ContentTypeText = "text/plain; charset=utf-8"
	// ContentTypeJSON and ContentTypeCBOR match huma's default formats.
	ContentTypeJSON = "application/json"
	ContentTypeCBOR = "application/cbor"

	msgNotFound      = "resource not found"
	msgInternalError = "internal server error"
	errorSchemaPath  = "/schemas/ErrorModel.json"
)

// Body is a huma output whose body is written verbatim with ContentType.
type Body struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Text returns an output writing s as text/plain.
func Text(s string) *Body {
	return &Body{ContentType: ContentTypeText, Body: []byte(s)}
}

// Encode serializes v as CBOR when accept prefers it and as JSON otherwise.
func Encode(accept string, v any) (*Body, error) {
	if selectFormat(accept) {
		b, err := cbor.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode cbor: %w", err)
		}
		return &Body{ContentType: ContentTypeCBOR, Body: b}, nil
	}
	b, err := marshalJSON(v)
	if err != nil {
		return nil, err
	}
	return &Body{ContentType: ContentTypeJSON, Body: b}, nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// problem is an RFC 9457 body shaped like huma.ErrorModel. The cbor encoder
// reads the json tags.
type problem struct {
	Schema string `json:"$schema,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// NotFoundHandler renders 404 problem details.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, msgNotFound, nil)
	}
}

// MethodNotAllowedHandler renders 405 problem details and lists the methods
// the path does support in the Allow header.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		writeProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method), nil)
	}
}

// Recoverer turns panics into 500 problem details. http.ErrAbortHandler is
// re-panicked, and nothing is written once the handler has sent a header.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = fmt.Errorf("panic: %w\n%s", err, debug.Stack())
				if rw.wroteHeader {
					applog.LogError(r.Context(), "panic after response started", err)
					return
				}
				writeProblem(rw, r, http.StatusInternalServerError, msgInternalError, err)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string, cause error) {
	ctx := r.Context()
	fields := []zap.Field{zap.Int("status", status), zap.String("method", r.Method), zap.String("path", r.URL.Path)}
	if status >= http.StatusInternalServerError {
		applog.LogError(ctx, detail, cause, fields...)
	} else {
		applog.LogWarn(ctx, detail, fields...)
	}

	schema := schemaURL(r)
	p := problem{Schema: schema, Title: http.StatusText(status), Status: status, Detail: detail}

	contentType := "application/problem+json"
	var (
		body []byte
		err  error
	)
	if selectFormat(r.Header.Get("Accept")) {
		contentType = "application/problem+cbor"
		body, err = cbor.Marshal(p)
	} else {
		body, err = marshalJSON(p)
	}
	if err != nil {
		applog.LogError(ctx, "failed to encode problem", err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Link", fmt.Sprintf("<%s>; rel=\"describedBy\"", schema))
	appmiddleware.AddVary(h, "Accept")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		applog.LogError(ctx, "failed to write problem", err)
	}
}

func schemaURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + errorSchemaPath
}

// allowedMethods asks chi which methods match the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := rctx.RoutePath
	if path == "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = r.URL.Path
	}
	if path == "" {
		path = "/"
	}
	var allowed []string
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// responseWriter records whether the header has been sent.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// TextResponses documents a 200 text/plain response for op.Responses.
func TextResponses(description string) map[string]*huma.Response {
	return map[string]*huma.Response{
		"200": {
			Description: description,
			Content: map[string]*huma.MediaType{
				"text/plain": {Schema: &huma.Schema{Type: huma.TypeString}},
			},
		},
	}
}
