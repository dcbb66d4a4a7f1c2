// Package transform turns an OpenAPI 3.x document into TypeScript type
// declarations. The exports are always paths, webhooks, components, $defs and
// operations, in that order, whatever the document declares.
package transform

import (
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

const withRequiredHelper = `type WithRequired<T, K extends keyof T> = T & {
    [P in K]-?: T[P];
};`

// Result is the output of one Transform call.
type Result struct {
	Nodes      []tsast.Node
	Warnings   []Warning
	Operations []OperationEntry
}

// String prints the declarations as TypeScript source.
func (r *Result) String() string {
	return tsast.Print(r.Nodes...)
}

// Transform converts doc into declarations. An unsupported document version
// or, unless Silent is set, an unresolved $ref aborts with an error; all
// other problems are reported as warnings.
func Transform(doc *openapi.Document, opts Options) (*Result, error) {
	if err := openapi.CheckVersion(doc); err != nil {
		return nil, err
	}
	ctx := NewContext(doc, opts)
	var nodes []tsast.Node
	if opts.Inject != "" {
		nodes = append(nodes, tsast.Raw{Text: opts.Inject})
	}

	paths, err := TransformPathsObject(doc.Paths, ctx)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, ctx.rootDecl("paths", paths, nil))

	webhooks, err := TransformWebhooksObject(doc.Webhooks, ctx)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, ctx.rootDecl("webhooks", webhooks, nil))

	var aliases []tsast.Node
	if doc.Components != nil {
		components, componentAliases, err := TransformComponentsObject(doc.Components, ctx)
		if err != nil {
			return nil, err
		}
		aliases = componentAliases
		nodes = append(nodes, ctx.rootDecl("components", components, nil))
	} else {
		nodes = append(nodes, ctx.rootDecl("components", emptyRecord(), nil))
	}

	defs, err := transformDefs(doc.Defs, ctx)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, ctx.rootDecl("$defs", defs, nil))

	nodes = append(nodes, ctx.operationsDecl())
	nodes = append(nodes, aliases...)
	nodes = append(nodes, ctx.enums.nodes()...)
	if ctx.withRequired {
		nodes = append(nodes, tsast.Raw{Text: withRequiredHelper})
	}
	if opts.InjectFooter != "" {
		nodes = append(nodes, tsast.Raw{Text: opts.InjectFooter})
	}
	if opts.MakePathsEnum && doc.Paths.Len() > 0 {
		nodes = append(nodes, MakeAPIPathsEnum(doc.Paths))
	}

	return &Result{
		Nodes:      nodes,
		Warnings:   ctx.Warnings(),
		Operations: ctx.operations.Entries(),
	}, nil
}

func transformDefs(defs *openapi.OrderedMap[*openapi.Schema], ctx *Context) (tsast.Node, error) {
	var members []tsast.Member
	for _, name := range keys(ctx, defs) {
		s, _ := defs.Get(name)
		t, err := TransformSchemaObject(s, NodeOptions{Path: joinPath("#", "$defs", name), Ctx: ctx})
		if err != nil {
			return nil, err
		}
		members = append(members, tsast.Property{Name: name, Readonly: ctx.Immutable, Type: t, Doc: schemaDoc(s)})
	}
	if len(members) == 0 {
		return emptyRecord(), nil
	}
	return tsast.Object(members...), nil
}

// rootDecl declares one export: an interface for object types unless
// ExportType is set, a type alias otherwise.
func (c *Context) rootDecl(name string, t tsast.Node, doc []string) tsast.Node {
	if lit, ok := t.(tsast.TypeLiteral); ok && !c.ExportType {
		return tsast.Interface{Name: name, Export: true, Members: lit.Members, Doc: doc}
	}
	return tsast.TypeAlias{Name: name, Export: true, Type: t, Doc: doc}
}

func (c *Context) operationsDecl() tsast.Node {
	if c.operations.Len() == 0 {
		return c.rootDecl("operations", emptyRecord(), nil)
	}
	var members []tsast.Member
	for _, e := range c.operations.Entries() {
		members = append(members, tsast.Property{Name: e.ID, Readonly: c.Immutable, Type: e.Type, Doc: e.Doc})
	}
	return c.rootDecl("operations", tsast.Object(members...), nil)
}
