package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformOperationObject returns the members of an operation type:
// parameters, requestBody and responses.
func TransformOperationObject(op *openapi.Operation, opts NodeOptions) ([]tsast.Member, error) {
	params, err := TransformParametersArray(op.Parameters, opts.at("parameters"))
	if err != nil {
		return nil, err
	}
	body, err := requestBodyMember(op.RequestBody, opts.at("requestBody"))
	if err != nil {
		return nil, err
	}
	responses, err := TransformResponsesObject(op.Responses, opts.at("responses"))
	if err != nil {
		return nil, err
	}
	return []tsast.Member{
		params,
		body,
		tsast.Property{Name: "responses", Readonly: opts.Ctx.Immutable, Type: responses},
	}, nil
}
