package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformResponseObject returns `{ headers: {...}; content: {...} }`.
// Headers always accept unknown extra names. A response without content gets
// `content?: never` under ContentNever and `content?: unknown` otherwise.
func TransformResponseObject(resp *openapi.Response, opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	var headers []tsast.Member
	for _, name := range keys(ctx, resp.Headers) {
		h, _ := resp.Headers.Get(name)
		if h == nil {
			continue
		}
		headerOpts := opts.at("headers", name)
		prop := tsast.Property{Name: name, Readonly: ctx.Immutable}
		var err error
		if h.Ref != "" {
			prop.Type, err = refType(ctx, h.Ref, headerOpts, ctx.resolver.Header, TransformHeaderObject)
			if resolved, ok := ctx.resolver.Header(h.Ref); ok {
				prop.Doc = headerDoc(resolved)
			}
		} else {
			if ctx.ExcludeDeprecated && h.Deprecated {
				continue
			}
			prop.Type, err = TransformHeaderObject(h, headerOpts)
			prop.Optional = !h.Required
			prop.Doc = headerDoc(h)
		}
		if err != nil {
			return nil, err
		}
		headers = append(headers, prop)
	}
	headers = append(headers, tsast.IndexSignature{Param: "name", Key: tsast.String, Type: tsast.Unknown, Readonly: ctx.Immutable})

	members := []tsast.Member{tsast.Property{Name: "headers", Readonly: ctx.Immutable, Type: tsast.Object(headers...)}}
	content, err := contentMembers(resp.Content, opts.at("content"))
	if err != nil {
		return nil, err
	}
	if len(content) > 0 {
		members = append(members, tsast.Property{Name: "content", Readonly: ctx.Immutable, Type: tsast.Object(content...)})
	} else {
		var empty tsast.Node = tsast.Unknown
		if ctx.ContentNever {
			empty = tsast.Never
		}
		members = append(members, tsast.Property{Name: "content", Optional: true, Readonly: ctx.Immutable, Type: empty})
	}
	return tsast.Object(members...), nil
}

// TransformResponsesObject returns one member per status code, or never when
// the operation declares no responses.
func TransformResponsesObject(responses *openapi.OrderedMap[*openapi.Response], opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	var members []tsast.Member
	for _, code := range keys(ctx, responses) {
		resp, _ := responses.Get(code)
		if resp == nil {
			continue
		}
		respOpts := opts.at(code)
		prop := tsast.Property{Name: code, Readonly: ctx.Immutable}
		var err error
		if resp.Ref != "" {
			prop.Type, err = refType(ctx, resp.Ref, respOpts, ctx.resolver.Response, TransformResponseObject)
			if resolved, ok := ctx.resolver.Response(resp.Ref); ok {
				prop.Doc = responseDoc(resolved)
			}
		} else {
			prop.Type, err = TransformResponseObject(resp, respOpts)
			prop.Doc = responseDoc(resp)
		}
		if err != nil {
			return nil, err
		}
		members = append(members, prop)
	}
	if len(members) == 0 {
		return tsast.Never, nil
	}
	return tsast.Object(members...), nil
}
