package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformHeaderObject returns the type of a header: its schema, an object
// keyed by media type when it uses content, or unknown.
func TransformHeaderObject(h *openapi.Header, opts NodeOptions) (tsast.Node, error) {
	if h.Schema != nil {
		return TransformSchemaObject(h.Schema, opts)
	}
	if h.Content.Len() > 0 {
		members, err := contentMembers(h.Content, opts)
		if err != nil {
			return nil, err
		}
		return tsast.Object(members...), nil
	}
	return tsast.Unknown, nil
}
