package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformMediaTypeObject returns the type of a media type's schema, or unknown.
func TransformMediaTypeObject(mt *openapi.MediaType, opts NodeOptions) (tsast.Node, error) {
	if mt == nil || mt.Schema == nil {
		return tsast.Unknown, nil
	}
	return TransformSchemaObject(mt.Schema, opts.at("schema"))
}

func transformMediaTypeRef(mt *openapi.MediaType, opts NodeOptions) (tsast.Node, error) {
	if mt != nil && mt.Ref != "" {
		return opts.Ctx.schemaRef(mt.Ref, opts)
	}
	return TransformMediaTypeObject(mt, opts)
}

// contentMembers builds one member per media type of a content map.
func contentMembers(content *openapi.OrderedMap[*openapi.MediaType], opts NodeOptions) ([]tsast.Member, error) {
	ctx := opts.Ctx
	var members []tsast.Member
	for _, contentType := range keys(ctx, content) {
		mt, _ := content.Get(contentType)
		t, err := transformMediaTypeRef(mt, opts.at(contentType))
		if err != nil {
			return nil, err
		}
		members = append(members, tsast.Property{Name: contentType, Readonly: ctx.Immutable, Type: t})
	}
	return members, nil
}
