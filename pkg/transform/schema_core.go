package transform

import (
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// transformSchemaCore handles the schema's own type: primitives, arrays,
// type lists and object members. It returns nil when the schema declares
// nothing structural, leaving the decision to the compositions.
func transformSchemaCore(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	if len(schema.Type) > 1 {
		return transformTypeList(schema, opts)
	}
	if typ, ok := schema.Type.Single(); ok {
		switch typ {
		case "null":
			return tsast.Null, nil
		case "string":
			return tsast.String, nil
		case "boolean":
			return tsast.Boolean, nil
		case "number", "integer":
			return tsast.Number, nil
		case "array":
			return transformArray(schema, opts)
		case "object":
		default:
			ctx.warn(WarnSchemaShape, opts.Path, "unknown type %q, using unknown", typ)
			return tsast.Unknown, nil
		}
	}
	return transformObject(schema, opts)
}

// transformTypeList handles `type: [a, b]`: one member per type, with
// primitives already listed in oneOf left to the oneOf union.
func transformTypeList(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	var members []tsast.Node
	for _, typ := range schema.Type {
		if typ == "null" {
			if !inOneOf(schema, typ) {
				members = append(members, tsast.Null)
			}
			continue
		}
		if isPrimitiveType(typ) && inOneOf(schema, typ) {
			continue
		}
		single := *schema
		single.Type = openapi.TypeSet{typ}
		single.Nullable = false
		single.AllOf, single.AnyOf, single.OneOf = nil, nil, nil
		t, err := transformSchema(&single, opts)
		if err != nil {
			return nil, err
		}
		members = append(members, t)
	}
	return tsast.NewUnion(members...), nil
}

func isPrimitiveType(typ string) bool {
	switch typ {
	case "boolean", "string", "number", "integer", "null":
		return true
	}
	return false
}

func inOneOf(schema *openapi.Schema, typ string) bool {
	for _, m := range schema.OneOf {
		if t, ok := m.Type.Single(); ok && t == typ {
			return true
		}
	}
	return false
}

func transformArray(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	var item tsast.Node = tsast.Unknown
	tuple := schema.PrefixItems
	tuplePath := "prefixItems"
	if tuple == nil && schema.Items != nil && schema.Items.Tuple != nil {
		tuple, tuplePath = schema.Items.Tuple, "items"
	}
	switch {
	case tuple != nil:
		elems := make([]tsast.Node, len(tuple))
		for i, s := range tuple {
			t, err := TransformSchemaObject(s, opts.at(tuplePath, itoa(i)))
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		item = tsast.Tuple{Elems: elems}
	case schema.Items != nil && schema.Items.Schema != nil:
		t, err := TransformSchemaObject(schema.Items.Schema, opts.at("items"))
		if err != nil {
			return nil, err
		}
		item = t
	default:
		ctx.warn(WarnSchemaShape, opts.Path, "array without items, using unknown[]")
	}

	if ctx.ArrayLength {
		if t, ok := fixedLength(schema, item, ctx.Immutable); ok {
			return t, nil
		}
	}

	var out tsast.Node
	if _, isTuple := item.(tsast.Tuple); isTuple {
		out = item
	} else {
		out = tsast.Array{Elem: item}
	}
	if ctx.Immutable {
		out = tsast.Readonly{Type: out}
	}
	return out, nil
}

// fixedLength expands minItems/maxItems into tuples, as long as the number of
// generated elements stays small. With immutable set every tuple is readonly.
func fixedLength(schema *openapi.Schema, item tsast.Node, immutable bool) (tsast.Node, bool) {
	lo := 0
	if schema.MinItems != nil && *schema.MinItems >= 0 {
		lo = *schema.MinItems
	}
	hi := -1
	if schema.MaxItems != nil && *schema.MaxItems >= 0 && lo <= *schema.MaxItems {
		hi = *schema.MaxItems
	}
	if lo == 0 && hi < 0 {
		return nil, false
	}
	size := lo
	if hi >= 0 {
		size = (hi*(hi+1) - lo*(lo-1)) / 2
	}
	if size >= 30 {
		return nil, false
	}
	repeat := func(n int) []tsast.Node {
		elems := make([]tsast.Node, n)
		for i := range elems {
			elems[i] = item
		}
		return elems
	}
	tuple := func(elems []tsast.Node) tsast.Node {
		if immutable {
			return tsast.Readonly{Type: tsast.Tuple{Elems: elems}}
		}
		return tsast.Tuple{Elems: elems}
	}
	switch {
	case lo == hi:
		return tuple(repeat(lo)), true
	case hi > 0:
		members := make([]tsast.Node, 0, hi-lo+1)
		for n := lo; n <= hi; n++ {
			members = append(members, tuple(repeat(n)))
		}
		return tsast.NewUnion(members...), true
	default:
		return tuple(append(repeat(lo), tsast.Rest{Type: tsast.Array{Elem: item}})), true
	}
}

// transformObject emits the members of an object schema. The result also
// carries the literal tag of a discriminator variant and the index signature
// for additional properties.
func transformObject(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	var members []tsast.Member

	tagProp := ""
	if schema.Discriminator == nil {
		if info, ok := ctx.discriminators.Variant(opts.Path); ok {
			tagProp = info.PropertyName
			lits := make([]tsast.Node, len(info.Values))
			for i, v := range info.Values {
				lits[i] = tsast.Lit(v)
			}
			members = append(members, tsast.Property{
				Name:     info.PropertyName,
				Readonly: ctx.Immutable,
				Type:     tsast.NewUnion(lits...),
			})
		}
	}

	inputOnly := strings.Contains(opts.Path, "/parameters") || strings.Contains(opts.Path, "/requestBody")
	for _, name := range keys(ctx, schema.Properties) {
		if name == tagProp {
			continue
		}
		prop, _ := schema.Properties.Get(name)
		if prop == nil {
			continue
		}
		if ctx.ExcludeDeprecated && ctx.deprecated(prop) {
			continue
		}
		optional := !(schema.IsRequired(name) ||
			(schema.Required == nil && ctx.PropertiesRequiredByDefault) ||
			(prop.HasDefault && ctx.DefaultNonNullable && !inputOnly))

		t, hookOptional, err := transformOptional(prop, opts.at("properties", name))
		if err != nil {
			return nil, err
		}
		if hookOptional {
			optional = true
		}
		members = append(members, tsast.Property{
			Name:     name,
			Optional: optional,
			Readonly: ctx.Immutable || prop.ReadOnly,
			Type:     t,
			Doc:      schemaDoc(prop),
		})
	}

	if schema.Defs.Len() > 0 {
		var defs []tsast.Member
		for _, name := range keys(ctx, schema.Defs) {
			def, _ := schema.Defs.Get(name)
			t, err := TransformSchemaObject(def, opts.at("$defs", name))
			if err != nil {
				return nil, err
			}
			defs = append(defs, tsast.Property{
				Name:     name,
				Readonly: ctx.Immutable || (def != nil && def.ReadOnly),
				Type:     t,
				Doc:      schemaDoc(def),
			})
		}
		members = append(members, tsast.Property{Name: "$defs", Type: tsast.Object(defs...)})
	}

	var index tsast.Node
	switch ap := schema.AdditionalProperties; {
	case ap != nil && ap.IsBool() && !*ap.Bool:
	case ap != nil:
		t, err := TransformSchemaObject(ap, opts.at("additionalProperties"))
		if err != nil {
			return nil, err
		}
		index = t
	case ctx.AdditionalProperties && (schema.Type.Is("object") || schema.Properties.Len() > 0):
		index = tsast.Unknown
	}

	if index == nil {
		if len(members) == 0 {
			return nil, nil
		}
		return tsast.Object(members...), nil
	}
	sig := tsast.Object(tsast.IndexSignature{
		Param:    "key",
		Key:      tsast.String,
		Type:     index,
		Readonly: ctx.Immutable,
	})
	if len(members) == 0 {
		return sig, nil
	}
	return tsast.NewIntersection(tsast.Object(members...), sig), nil
}

// deprecated reports whether a schema, or the schema a ref points at, is deprecated.
func (c *Context) deprecated(s *openapi.Schema) bool {
	if s.IsRef() {
		if target, ok := c.resolver.Schema(s.Ref); ok {
			return target.Deprecated
		}
		return false
	}
	return s.Deprecated
}
