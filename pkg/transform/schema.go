package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformSchemaObject converts a schema node into a type expression. Hooks
// come first, then refs, enum, const, the object/array/primitive core and the
// allOf/anyOf/oneOf compositions, and finally the legacy nullable flag.
// Post-transform hooks may replace the result.
func TransformSchemaObject(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	t, optional, err := transformOptional(schema, opts)
	if err != nil {
		return nil, err
	}
	if optional {
		t = tsast.NewUnion(t, tsast.Undefined)
	}
	return t, nil
}

// transformOptional runs the same pipeline as TransformSchemaObject but
// reports a hook's Optional flag instead of adding undefined to the type.
// Object properties turn the flag into a ? marker.
func transformOptional(schema *openapi.Schema, opts NodeOptions) (tsast.Node, bool, error) {
	ctx := opts.Ctx
	var (
		t        tsast.Node
		optional bool
	)
	if res := ctx.runTransform(schema, opts.Path); res != nil {
		t, optional = res.Type, res.Optional
	} else {
		var err error
		if t, err = transformSchemaBody(schema, opts); err != nil {
			return nil, false, err
		}
	}
	if res := ctx.runPostTransform(t, schema, opts.Path); res != nil && res.Type != nil {
		t, optional = res.Type, res.Optional
	}
	return t, optional, nil
}

// transformSchema is TransformSchemaObject without the post-transform hooks.
func transformSchema(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	if res := opts.Ctx.runTransform(schema, opts.Path); res != nil {
		if res.Optional {
			return tsast.NewUnion(res.Type, tsast.Undefined), nil
		}
		return res.Type, nil
	}
	return transformSchemaBody(schema, opts)
}

func transformSchemaBody(schema *openapi.Schema, opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	if schema == nil {
		return tsast.Never, nil
	}
	if schema.IsBool() {
		if *schema.Bool {
			return tsast.Unknown, nil
		}
		return tsast.Never, nil
	}
	if schema.IsRef() {
		return ctx.schemaRef(schema.Ref, opts)
	}

	if len(schema.Enum) > 0 && !schema.Type.Is("object") && schema.Properties.Len() == 0 && schema.AdditionalProperties == nil {
		return ctx.enumType(schema, opts), nil
	}
	if schema.HasConst {
		return literalType(schema.Const), nil
	}

	var final tsast.Node
	core, err := transformSchemaCore(schema, opts)
	if err != nil {
		return nil, err
	}
	allOf, err := collectAllOf(schema, opts)
	if err != nil {
		return nil, err
	}
	if core != nil || len(allOf) > 0 {
		parts := allOf
		if core != nil {
			parts = append([]tsast.Node{core}, allOf...)
		}
		final = tsast.NewIntersection(parts...)
	}
	for _, group := range []struct {
		name    string
		members []*openapi.Schema
	}{{"anyOf", schema.AnyOf}, {"oneOf", schema.OneOf}} {
		members, err := collectUnion(group.members, opts.at(group.name))
		if err != nil {
			return nil, err
		}
		final = composeUnion(final, members)
	}

	if final == nil {
		switch {
		case len(schema.Type) == 0:
			final = tsast.Unknown
		case ctx.EmptyObjectsUnknown:
			final = tsast.Unknown
		default:
			final = tsast.Record(tsast.String, tsast.Never)
		}
	}
	if schema.Nullable && !(schema.HasDefault && ctx.DefaultNonNullable) {
		final = tsast.NewUnion(final, tsast.Null)
	}
	return final, nil
}

// composeUnion adds a oneOf/anyOf group to what the schema already produced.
// Primitive members widen the type; anything else narrows it.
func composeUnion(base tsast.Node, members []tsast.Node) tsast.Node {
	if len(members) == 0 {
		return base
	}
	allPrimitive := true
	for _, m := range members {
		if !tsast.IsPrimitive(m) {
			allPrimitive = false
			break
		}
	}
	if allPrimitive {
		if base == nil {
			return tsast.NewUnion(members...)
		}
		return tsast.NewUnion(append([]tsast.Node{base}, members...)...)
	}
	if base == nil {
		return tsast.NewUnion(members...)
	}
	return tsast.NewIntersection(base, tsast.NewUnion(members...))
}

func collectUnion(members []*openapi.Schema, opts NodeOptions) ([]tsast.Node, error) {
	var out []tsast.Node
	for i, m := range members {
		t, err := TransformSchemaObject(m, opts.at(itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// collectAllOf transforms the allOf members. Referenced members get the
// parent's required keys through WithRequired, inline members inherit them
// directly, and members that carry a discriminator lose that property so the
// variant's own literal tag applies.
func collectAllOf(schema *openapi.Schema, opts NodeOptions) ([]tsast.Node, error) {
	ctx := opts.Ctx
	var out []tsast.Node
	for i, member := range schema.AllOf {
		if member == nil {
			continue
		}
		memberOpts := opts.at("allOf", itoa(i))
		var t tsast.Node
		var err error
		if member.IsRef() {
			t, err = TransformSchemaObject(member, memberOpts)
			if err != nil {
				return nil, err
			}
			if target, ok := ctx.resolver.Schema(member.Ref); ok && target.Properties.Len() > 0 {
				var missing []string
				for _, key := range schema.Required {
					if _, declared := target.Properties.Get(key); declared && !target.IsRequired(key) {
						missing = append(missing, key)
					}
				}
				if len(missing) > 0 {
					t = ctx.withRequiredType(t, missing)
				}
			}
		} else {
			inline := *member
			inline.Required = mergeRequired(member.Required, schema.Required)
			t, err = TransformSchemaObject(&inline, memberOpts)
			if err != nil {
				return nil, err
			}
		}

		prop := ""
		if member.IsRef() {
			prop, _ = ctx.discriminators.propertyFor(ctx.resolver.Target(member.Ref))
		} else if member.Discriminator != nil {
			prop = member.Discriminator.PropertyName
		}
		if prop != "" {
			t = tsast.Omit(t, prop)
		}
		out = append(out, t)
	}
	return out, nil
}

func mergeRequired(own, inherited []string) []string {
	out := append([]string(nil), own...)
	for _, key := range inherited {
		found := false
		for _, k := range out {
			if k == key {
				found = true
				break
			}
		}
		if !found {
			out = append(out, key)
		}
	}
	return out
}

func (c *Context) withRequiredType(t tsast.Node, keys []string) tsast.Node {
	c.withRequired = true
	lits := make([]tsast.Node, len(keys))
	for i, k := range keys {
		lits[i] = tsast.Lit(k)
	}
	return tsast.Ref("WithRequired", t, tsast.NewUnion(lits...))
}

// schemaRef emits a reference to a local schema. Refs into other documents
// cannot be named and are inlined instead; a loop through such refs becomes unknown.
func (c *Context) schemaRef(ref string, opts NodeOptions) (tsast.Node, error) {
	if !isExternal(ref) {
		if !c.resolver.Exists(ref) {
			return c.unresolved(ref, opts.Path)
		}
		return oapiRef(ref), nil
	}
	key := canonicalRef(ref)
	if c.inlining[key] {
		c.warn(WarnRefCycle, opts.Path, "circular $ref %q into another document, using unknown", ref)
		return tsast.Unknown, nil
	}
	target, ok := c.resolver.Schema(ref)
	if !ok {
		return c.unresolved(ref, opts.Path)
	}
	c.inlining[key] = true
	defer delete(c.inlining, key)
	return TransformSchemaObject(target, NodeOptions{Path: key, Ctx: c})
}

func (c *Context) enumType(schema *openapi.Schema, opts NodeOptions) tsast.Node {
	nullable := schema.Nullable || schema.Type.Is("null")
	if c.Enum && hoistable(schema.Enum) {
		var t tsast.Node = tsast.Ref(c.enums.hoist(opts.Path, schema))
		for _, v := range schema.Enum {
			if v == nil {
				nullable = true
			}
		}
		if nullable {
			t = tsast.NewUnion(t, tsast.Null)
		}
		return t
	}
	members := make([]tsast.Node, 0, len(schema.Enum)+1)
	for _, v := range schema.Enum {
		members = append(members, literalType(v))
	}
	if nullable {
		members = append(members, tsast.Null)
	}
	return tsast.NewUnion(members...)
}

// literalType converts an enum or const value. Objects and arrays become
// structural literal types.
func literalType(v any) tsast.Node {
	switch x := v.(type) {
	case map[string]any:
		members := make([]tsast.Member, 0, len(x))
		for _, k := range sortedKeys(x) {
			members = append(members, tsast.Property{Name: k, Type: literalType(x[k])})
		}
		return tsast.Object(members...)
	case []any:
		elems := make([]tsast.Node, len(x))
		for i, e := range x {
			elems[i] = literalType(e)
		}
		return tsast.Tuple{Elems: elems}
	}
	return tsast.Lit(v)
}
