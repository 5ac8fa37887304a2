// Package ping serves the liveness check.
package ping

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/demo-service/internal/platform/respond"
)

// Reply is the body returned by GET /ping.
const Reply = "pong"

// Register binds the ping handler to op.
func Register(api huma.API, op huma.Operation) {
	op.Responses = respond.TextResponses("Liveness reply")
	huma.Register(api, op, handler)
}

func handler(context.Context, *struct{}) (*respond.Body, error) {
	return respond.Text(Reply), nil
}
