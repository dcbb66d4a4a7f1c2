package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// TransformPathItemObject returns the type of a path item: its shared
// parameters and one member per HTTP method. Missing (or excluded) methods are
// `?: never`. Operations with an operationId are registered in the operations
// export and referenced from here; the others are inlined.
func TransformPathItemObject(item *openapi.PathItem, opts NodeOptions) (tsast.Node, error) {
	ctx := opts.Ctx
	shared, err := TransformParametersArray(item.Parameters, opts.at("parameters"))
	if err != nil {
		return nil, err
	}
	members := []tsast.Member{shared}
	for _, method := range openapi.Methods {
		op := item.Operation(method)
		if op == nil || (ctx.ExcludeDeprecated && op.Deprecated) {
			members = append(members, tsast.Property{Name: method, Optional: true, Readonly: ctx.Immutable, Type: tsast.Never})
			continue
		}
		merged := *op
		merged.Parameters = mergeParameters(ctx, item.Parameters, op.Parameters)
		opMembers, err := TransformOperationObject(&merged, opts.at(method))
		if err != nil {
			return nil, err
		}
		var t tsast.Node = tsast.Object(opMembers...)
		if op.OperationID != "" {
			err := ctx.registerOperation(OperationEntry{
				ID:     op.OperationID,
				Type:   t,
				Doc:    operationDoc(op),
				Path:   opts.Path,
				Method: method,
			})
			if err != nil {
				return nil, err
			}
			t = tsast.Index(tsast.Ref("operations"), op.OperationID)
		}
		members = append(members, tsast.Property{Name: method, Readonly: ctx.Immutable, Type: t, Doc: operationDoc(op)})
	}
	return tsast.Object(members...), nil
}

// pathItemRef transforms a path item, following a $ref to a named one.
func pathItemRef(item *openapi.PathItem, opts NodeOptions) (tsast.Node, error) {
	if item.Ref != "" {
		return refType(opts.Ctx, item.Ref, opts, opts.Ctx.resolver.PathItem, TransformPathItemObject)
	}
	return TransformPathItemObject(item, opts)
}
