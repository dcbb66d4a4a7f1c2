package transform

import (
	"sort"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// ParameterLocations are the parameter buckets, in output order.
var ParameterLocations = []string{"query", "header", "path", "cookie"}

// TransformParameterObject returns the type of a single parameter value:
// its schema, the schema of its first media type, or string.
func TransformParameterObject(param *openapi.Parameter, opts NodeOptions) (tsast.Node, error) {
	if param.Schema != nil {
		return TransformSchemaObject(param.Schema, opts)
	}
	if param.Content.Len() > 0 {
		contentType := param.Content.Keys()[0]
		mt, _ := param.Content.Get(contentType)
		return transformMediaTypeRef(mt, opts.at(contentType))
	}
	return tsast.String, nil
}

type resolvedParameter struct {
	original *openapi.Parameter
	resolved *openapi.Parameter
}

// TransformParametersArray groups parameters by location and returns the
// `parameters` member of an operation or path item. Path parameters are
// always required; an empty bucket becomes `name?: never` and a bucket with
// only optional parameters is itself optional.
func TransformParametersArray(params []*openapi.Parameter, opts NodeOptions) (tsast.Property, error) {
	ctx := opts.Ctx
	entries := make([]resolvedParameter, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		resolved := p
		if p.Ref != "" {
			r, ok := ctx.resolver.Parameter(p.Ref)
			if !ok {
				if _, err := ctx.unresolved(p.Ref, opts.Path); err != nil {
					return tsast.Property{}, err
				}
				continue
			}
			resolved = r
		}
		if ctx.ExcludeDeprecated && resolved.Deprecated {
			continue
		}
		entries = append(entries, resolvedParameter{original: p, resolved: resolved})
	}
	if ctx.Alphabetize {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].resolved.Name < entries[j].resolved.Name
		})
	}

	buckets := make([]tsast.Member, 0, len(ParameterLocations))
	for _, in := range ParameterLocations {
		var members []tsast.Member
		allOptional := true
		for _, e := range entries {
			if e.resolved.In != in {
				continue
			}
			optional := in != "path" && !e.resolved.Required
			if !optional {
				allOptional = false
			}
			paramOpts := opts.at(in, e.resolved.Name)
			var t tsast.Node
			var err error
			if e.original.Ref != "" {
				t, err = refType(ctx, e.original.Ref, paramOpts, ctx.resolver.Parameter, TransformParameterObject)
			} else {
				t, err = TransformParameterObject(e.resolved, paramOpts)
			}
			if err != nil {
				return tsast.Property{}, err
			}
			members = append(members, tsast.Property{
				Name:     e.resolved.Name,
				Optional: optional,
				Readonly: ctx.Immutable,
				Type:     t,
				Doc:      parameterDoc(e.resolved),
			})
		}
		bucket := tsast.Property{Name: in, Readonly: ctx.Immutable, Optional: allOptional}
		if len(members) == 0 {
			bucket.Type = tsast.Never
		} else {
			bucket.Type = tsast.Object(members...)
		}
		buckets = append(buckets, bucket)
	}
	return tsast.Property{Name: "parameters", Readonly: ctx.Immutable, Type: tsast.Object(buckets...)}, nil
}

// mergeParameters applies operation parameters over path item parameters.
// Entries are keyed by location and name; the operation wins a conflict and
// the first occurrence keeps its position.
func mergeParameters(ctx *Context, shared, own []*openapi.Parameter) []*openapi.Parameter {
	merged := openapi.NewOrderedMap[*openapi.Parameter]()
	for _, p := range append(append([]*openapi.Parameter(nil), shared...), own...) {
		if p == nil {
			continue
		}
		resolved := p
		if p.Ref != "" {
			if r, ok := ctx.resolver.Parameter(p.Ref); ok {
				resolved = r
			}
		}
		key := resolved.In + ":" + resolved.Name
		if p.Ref != "" && resolved == p {
			key = p.Ref
		}
		merged.Set(key, p)
	}
	out := make([]*openapi.Parameter, 0, merged.Len())
	for _, p := range merged.All() {
		out = append(out, p)
	}
	return out
}
