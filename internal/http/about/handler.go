// Package about serves the static project descriptor.
package about

import (
	"context"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/demo-service/internal/platform/logging"
	"github.com/janisto/demo-service/internal/platform/respond"
)

// Register binds the about handler to op. The body is encoded here rather
// than by huma so it carries exactly the fields of About and no $schema link.
func Register(api huma.API, op huma.Operation) {
	schema := api.OpenAPI().Components.Schemas.Schema(reflect.TypeFor[About](), true, "About")
	op.Responses = map[string]*huma.Response{
		"200": {
			Description: "Project descriptor",
			Content: map[string]*huma.MediaType{
				respond.ContentTypeJSON: {Schema: schema},
				respond.ContentTypeCBOR: {Schema: schema},
			},
		},
	}
	huma.Register(api, op, handler)
}

func handler(ctx context.Context, input *Input) (*respond.Body, error) {
	out, err := respond.Encode(input.Accept, Project)
	if err != nil {
		applog.LogError(ctx, "encode about payload", err)
		return nil, huma.Error500InternalServerError("failed to encode response")
	}
	return out, nil
}
