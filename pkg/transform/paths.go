package transform

import (
	"regexp"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

var pathParamRE = regexp.MustCompile(`\{[^{}]+\}`)

// TransformPathsObject returns the type of the paths export: one member per
// path, or Record<string, never> when there are none. With PathParamsAsTypes,
// templated paths become template literal index signatures.
func TransformPathsObject(paths *openapi.OrderedMap[*openapi.PathItem], ctx *Context) (tsast.Node, error) {
	var members []tsast.Member
	for _, url := range keys(ctx, paths) {
		item, _ := paths.Get(url)
		if item == nil {
			continue
		}
		opts := NodeOptions{Path: joinPath("#", "paths", url), Ctx: ctx}
		t, err := pathItemRef(item, opts)
		if err != nil {
			return nil, err
		}
		if ctx.PathParamsAsTypes && pathParamRE.MatchString(url) {
			declared := item
			if item.Ref != "" {
				if resolved, ok := ctx.resolver.PathItem(item.Ref); ok {
					declared = resolved
				}
			}
			members = append(members, tsast.IndexSignature{
				Param: "path",
				Key:   pathTemplate(url, pathParamTypes(ctx, declared)),
				Type:  t,
			})
			continue
		}
		members = append(members, tsast.Property{Name: url, Type: t, Doc: pathItemDoc(item)})
	}
	if len(members) == 0 {
		return emptyRecord(), nil
	}
	return tsast.Object(members...), nil
}

// pathTemplate turns /users/{id} into `/users/${number}`.
func pathTemplate(url string, types map[string]tsast.Node) tsast.TemplateLiteral {
	var tl tsast.TemplateLiteral
	locs := pathParamRE.FindAllStringIndex(url, -1)
	tl.Head = url[:locs[0][0]]
	for i, loc := range locs {
		name := url[loc[0]+1 : loc[1]-1]
		t, ok := types[name]
		if !ok {
			t = tsast.String
		}
		end := len(url)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		tl.Spans = append(tl.Spans, tsast.TemplateSpan{Type: t, Tail: url[loc[1]:end]})
	}
	return tl
}

// pathParamTypes maps every path parameter declared on the item or its
// operations to ${number} or ${string}.
func pathParamTypes(ctx *Context, item *openapi.PathItem) map[string]tsast.Node {
	out := make(map[string]tsast.Node)
	params := append([]*openapi.Parameter(nil), item.Parameters...)
	for _, method := range openapi.Methods {
		if op := item.Operation(method); op != nil {
			params = append(params, op.Parameters...)
		}
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if p.Ref != "" {
			resolved, ok := ctx.resolver.Parameter(p.Ref)
			if !ok {
				continue
			}
			p = resolved
		}
		if p.In != "path" {
			continue
		}
		schema := p.Schema
		if schema.IsRef() {
			if resolved, ok := ctx.resolver.Schema(schema.Ref); ok {
				schema = resolved
			}
		}
		if schema != nil && (schema.Type.Is("number") || schema.Type.Is("integer")) {
			out[p.Name] = tsast.Number
		} else {
			out[p.Name] = tsast.String
		}
	}
	return out
}

// TransformWebhooksObject returns the type of the webhooks export.
func TransformWebhooksObject(webhooks *openapi.OrderedMap[*openapi.PathItem], ctx *Context) (tsast.Node, error) {
	var members []tsast.Member
	for _, name := range keys(ctx, webhooks) {
		item, _ := webhooks.Get(name)
		if item == nil {
			continue
		}
		t, err := pathItemRef(item, NodeOptions{Path: joinPath("#", "webhooks", name), Ctx: ctx})
		if err != nil {
			return nil, err
		}
		members = append(members, tsast.Property{Name: name, Type: t, Doc: pathItemDoc(item)})
	}
	if len(members) == 0 {
		return emptyRecord(), nil
	}
	return tsast.Object(members...), nil
}

func emptyRecord() tsast.Node {
	return tsast.Record(tsast.String, tsast.Never)
}
