package transform

import (
	"strconv"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
	"github.com/blimu-dev/typegen/pkg/utils"
)

// ComponentCategories lists the component maps in output order.
var ComponentCategories = []string{"schemas", "responses", "parameters", "requestBodies", "headers", "pathItems"}

var rootTypePrefixes = map[string]string{
	"schemas":       "Schema",
	"responses":     "Response",
	"parameters":    "Parameter",
	"requestBodies": "RequestBody",
	"headers":       "Header",
	"pathItems":     "PathItem",
}

// componentEntry is one named component ready to be transformed.
type componentEntry struct {
	name       string
	schema     *openapi.Schema
	deprecated bool
	doc        []string
	transform  func(NodeOptions) (tsast.Node, error)
}

// TransformComponentsObject returns the type of the components export plus,
// with RootTypes, one alias per entry. Every category is present; empty
// ones are never.
func TransformComponentsObject(c *openapi.Components, ctx *Context) (tsast.Node, []tsast.Node, error) {
	var members []tsast.Member
	var aliases []tsast.Node
	taken := make(map[string]bool)
	for _, category := range ComponentCategories {
		var items []tsast.Member
		for _, entry := range componentEntries(c, category, ctx) {
			if ctx.ExcludeDeprecated && entry.deprecated {
				continue
			}
			opts := NodeOptions{Path: joinPath("#", "components", category, entry.name), Ctx: ctx}
			t, err := entry.transform(opts)
			if err != nil {
				return nil, nil, err
			}
			optional := false
			if res := ctx.runPostTransform(t, entry.schema, opts.Path); res != nil {
				if res.Type != nil {
					t = res.Type
				}
				optional = res.Optional
			}
			items = append(items, tsast.Property{
				Name:     entry.name,
				Optional: optional,
				Readonly: ctx.Immutable,
				Type:     t,
				Doc:      entry.doc,
			})
			if ctx.RootTypes {
				aliases = append(aliases, ctx.rootTypeAlias(category, entry.name, opts.Path, taken))
			}
		}
		var t tsast.Node = tsast.Never
		if len(items) > 0 {
			t = tsast.Object(items...)
		}
		members = append(members, tsast.Property{Name: category, Type: t})
	}
	return tsast.Object(members...), aliases, nil
}

func componentEntries(c *openapi.Components, category string, ctx *Context) []componentEntry {
	var out []componentEntry
	switch category {
	case "schemas":
		for _, name := range keys(ctx, c.Schemas) {
			s, _ := c.Schemas.Get(name)
			out = append(out, componentEntry{
				name:       name,
				schema:     s,
				deprecated: s != nil && s.Deprecated,
				doc:        schemaDoc(s),
				transform: func(opts NodeOptions) (tsast.Node, error) {
					return transformSchema(s, opts)
				},
			})
		}
	case "responses":
		for _, name := range keys(ctx, c.Responses) {
			r, _ := c.Responses.Get(name)
			if r == nil {
				continue
			}
			out = append(out, componentEntry{name: name, doc: responseDoc(r), transform: func(opts NodeOptions) (tsast.Node, error) {
				if r.Ref != "" {
					return refType(ctx, r.Ref, opts, ctx.resolver.Response, TransformResponseObject)
				}
				return TransformResponseObject(r, opts)
			}})
		}
	case "parameters":
		for _, name := range keys(ctx, c.Parameters) {
			p, _ := c.Parameters.Get(name)
			if p == nil {
				continue
			}
			out = append(out, componentEntry{name: name, deprecated: p.Deprecated, doc: parameterDoc(p), transform: func(opts NodeOptions) (tsast.Node, error) {
				if p.Ref != "" {
					return refType(ctx, p.Ref, opts, ctx.resolver.Parameter, TransformParameterObject)
				}
				return TransformParameterObject(p, opts)
			}})
		}
	case "requestBodies":
		for _, name := range keys(ctx, c.RequestBodies) {
			rb, _ := c.RequestBodies.Get(name)
			if rb == nil {
				continue
			}
			out = append(out, componentEntry{name: name, doc: requestBodyDoc(rb), transform: func(opts NodeOptions) (tsast.Node, error) {
				if rb.Ref != "" {
					return refType(ctx, rb.Ref, opts, ctx.resolver.RequestBody, TransformRequestBodyObject)
				}
				return TransformRequestBodyObject(rb, opts)
			}})
		}
	case "headers":
		for _, name := range keys(ctx, c.Headers) {
			h, _ := c.Headers.Get(name)
			if h == nil {
				continue
			}
			out = append(out, componentEntry{name: name, deprecated: h.Deprecated, doc: headerDoc(h), transform: func(opts NodeOptions) (tsast.Node, error) {
				if h.Ref != "" {
					return refType(ctx, h.Ref, opts, ctx.resolver.Header, TransformHeaderObject)
				}
				return TransformHeaderObject(h, opts)
			}})
		}
	case "pathItems":
		for _, name := range keys(ctx, c.PathItems) {
			item, _ := c.PathItems.Get(name)
			if item == nil {
				continue
			}
			out = append(out, componentEntry{name: name, doc: pathItemDoc(item), transform: func(opts NodeOptions) (tsast.Node, error) {
				return pathItemRef(item, opts)
			}})
		}
	}
	return out
}

// rootTypeAlias declares `export type SchemaPet = components["schemas"]["Pet"];`.
// Names that are already taken get a numeric suffix.
func (c *Context) rootTypeAlias(category, name, path string, taken map[string]bool) tsast.TypeAlias {
	prefix := rootTypePrefixes[category]
	if category == "schemas" && c.RootTypesNoSchemaPrefix {
		prefix = ""
	}
	base := prefix + utils.TypeName(name)
	if base == "" || (base[0] >= '0' && base[0] <= '9') {
		base = rootTypePrefixes[category] + base
	}
	alias := base
	for i := 2; taken[alias]; i++ {
		alias = base + "_" + strconv.Itoa(i)
	}
	if alias != base {
		c.warn(WarnNameCollision, path, "root type %s already declared, using %s", base, alias)
	}
	taken[alias] = true
	return tsast.TypeAlias{
		Name:   alias,
		Export: true,
		Type:   tsast.Index(tsast.Ref("components"), category, name),
	}
}
