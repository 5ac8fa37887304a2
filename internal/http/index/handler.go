// Package index serves the route listing at GET /.
package index

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/demo-service/internal/platform/respond"
)

// Message lists paths in order, e.g. "possible routes: /, /ping".
func Message(paths []string) string {
	return "possible routes: " + strings.Join(paths, ", ")
}

// Registrar returns a registration function whose handler lists paths.
func Registrar(paths []string) func(huma.API, huma.Operation) {
	body := Message(paths)
	return func(api huma.API, op huma.Operation) {
		op.Responses = respond.TextResponses("Available routes")
		huma.Register(api, op, func(context.Context, *struct{}) (*respond.Body, error) {
			return respond.Text(body), nil
		})
	}
}
