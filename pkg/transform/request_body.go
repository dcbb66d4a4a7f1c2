package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformRequestBodyObject returns `{ content: { [mediaType]: T } }`, or
// never when the body declares no content.
func TransformRequestBodyObject(rb *openapi.RequestBody, opts NodeOptions) (tsast.Node, error) {
	if rb.Content.Len() == 0 {
		return tsast.Never, nil
	}
	members, err := contentMembers(rb.Content, opts.at("content"))
	if err != nil {
		return nil, err
	}
	return tsast.Object(tsast.Property{Name: "content", Readonly: opts.Ctx.Immutable, Type: tsast.Object(members...)}), nil
}

// requestBodyMember returns the `requestBody` member of an operation. A body
// that is missing, not required or empty is optional.
func requestBodyMember(rb *openapi.RequestBody, opts NodeOptions) (tsast.Property, error) {
	ctx := opts.Ctx
	prop := tsast.Property{Name: "requestBody", Readonly: ctx.Immutable, Optional: true, Type: tsast.Never}
	if rb == nil {
		return prop, nil
	}
	resolved := rb
	if rb.Ref != "" {
		r, ok := ctx.resolver.RequestBody(rb.Ref)
		if !ok {
			t, err := ctx.unresolved(rb.Ref, opts.Path)
			if err != nil {
				return prop, err
			}
			prop.Type = t
			return prop, nil
		}
		resolved = r
		t, err := refType(ctx, rb.Ref, opts, ctx.resolver.RequestBody, TransformRequestBodyObject)
		if err != nil {
			return prop, err
		}
		prop.Type = t
	} else {
		t, err := TransformRequestBodyObject(rb, opts)
		if err != nil {
			return prop, err
		}
		prop.Type = t
	}
	prop.Optional = !resolved.Required || resolved.Content.Len() == 0
	prop.Doc = requestBodyDoc(resolved)
	return prop, nil
}
