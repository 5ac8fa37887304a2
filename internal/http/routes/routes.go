// Package routes holds the routing table of the service.
package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/demo-service/internal/http/about"
	"github.com/janisto/demo-service/internal/http/hello"
	"github.com/janisto/demo-service/internal/http/index"
	"github.com/janisto/demo-service/internal/http/ping"
)

// Route binds a method and path to the function registering its handler.
type Route struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Register    func(api huma.API, op huma.Operation)
}

// Operation describes r for huma.
func (r Route) Operation() huma.Operation {
	return huma.Operation{
		OperationID: r.OperationID,
		Method:      r.Method,
		Path:        r.Path,
		Summary:     r.Summary,
	}
}

// Table returns the routes in registration order. GET / lists the paths in
// this same order.
func Table() []Route {
	table := []Route{
		{Method: http.MethodGet, Path: "/", OperationID: "get-index", Summary: "List available routes"},
		{Method: http.MethodGet, Path: "/ping", OperationID: "get-ping", Summary: "Liveness check", Register: ping.Register},
		{Method: http.MethodGet, Path: "/hello", OperationID: "get-hello", Summary: "Greet by name", Register: hello.Register},
		{Method: http.MethodGet, Path: "/about.json", OperationID: "get-about", Summary: "Describe the project", Register: about.Register},
	}
	table[0].Register = index.Registrar(Paths(table))
	return table
}

// Paths returns the path of every route in table order.
func Paths(table []Route) []string {
	paths := make([]string, len(table))
	for i, r := range table {
		paths[i] = r.Path
	}
	return paths
}

// Register wires every route of Table into api.
func Register(api huma.API) {
	for _, r := range Table() {
		r.Register(api, r.Operation())
	}
}
