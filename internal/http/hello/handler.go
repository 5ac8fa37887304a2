// Package hello serves the greeting endpoint.
package hello

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/demo-service/internal/platform/logging"
	"github.com/janisto/demo-service/internal/platform/respond"
)

// DefaultName replaces a missing or empty name.
const DefaultName = "World"

// Register binds the hello handler to op.
func Register(api huma.API, op huma.Operation) {
	op.Responses = respond.TextResponses("Greeting")
	huma.Register(api, op, handler)
}

func handler(ctx context.Context, input *Input) (*respond.Body, error) {
	applog.LogInfo(ctx, "hello get", zap.String("name", input.Name))
	return respond.Text(Greeting(input.Name)), nil
}

// Greeting formats the reply for name, substituting DefaultName when empty.
func Greeting(name string) string {
	if name == "" {
		name = DefaultName
	}
	return fmt.Sprintf("Hello %s!", name)
}
