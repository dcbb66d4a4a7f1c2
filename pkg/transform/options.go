package transform

import (
	"log/slog"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// Options configures a single Transform call. The zero value is usable; note that
// DefaultNonNullable is off unless set (pkg/config turns it on by default).
type Options struct {
	// AdditionalProperties treats a missing additionalProperties on object schemas as true.
	AdditionalProperties bool
	// Alphabetize sorts map-derived keys (properties, paths, responses, components...).
	Alphabetize bool
	// ArrayLength turns minItems/maxItems into fixed-length tuples.
	ArrayLength bool
	// DefaultNonNullable makes properties with a default required and keeps
	// nullable schemas with a default from being unioned with null.
	DefaultNonNullable bool
	// EmptyObjectsUnknown emits unknown instead of Record<string, never> for empty objects.
	EmptyObjectsUnknown bool
	// Enum emits TypeScript enums instead of literal unions for string/number enums.
	Enum bool
	// ExcludeDeprecated drops deprecated schemas, properties, parameters and operations.
	ExcludeDeprecated bool
	// ExportType declares the roots with `type X = {...}` instead of `interface X {...}`.
	ExportType bool
	// Immutable marks every property readonly and every array readonly.
	Immutable bool
	// PathParamsAsTypes keys paths by template literal types (`/users/${string}`).
	PathParamsAsTypes bool
	// PropertiesRequiredByDefault treats properties as required when a schema has no required list.
	PropertiesRequiredByDefault bool
	// MakePathsEnum appends an ApiPaths enum of every path and method.
	MakePathsEnum bool
	// ContentNever emits `content?: never` for responses without content (`content?: unknown` otherwise).
	ContentNever bool
	// RootTypes adds `export type SchemaFoo = components["schemas"]["Foo"]` aliases.
	RootTypes bool
	// RootTypesNoSchemaPrefix drops the Schema prefix from schema root type aliases.
	RootTypesNoSchemaPrefix bool

	// Silent degrades unresolved refs to unknown with a warning instead of failing.
	Silent bool
	// StrictOperationIDs fails on duplicate operationIds instead of overwriting.
	StrictOperationIDs bool

	// Inject is raw TypeScript placed before the generated declarations.
	Inject string
	// InjectFooter is raw TypeScript placed after the generated declarations.
	InjectFooter string

	// Transform hooks run, in order, before any built-in rule for every schema.
	Transform []TransformHook
	// PostTransform hooks run, in order, on every computed schema type and on
	// every non-schema component entry.
	PostTransform []PostTransformHook

	// Resolver fetches refs that point into other documents.
	Resolver ExternalResolver
	// Logger receives warnings. Nil discards them.
	Logger *slog.Logger
}

// HookMeta tells a hook where in the document the node sits.
type HookMeta struct {
	Path string
	Ctx  *Context
}

// HookResult replaces the computed type. Optional marks the value as possibly
// undefined: properties and component entries get `?`, other positions `| undefined`.
type HookResult struct {
	Type     tsast.Node
	Optional bool
}

// TransformHook may take over a schema before any built-in rule. Returning nil
// hands the schema to the next hook or to the built-in rules.
type TransformHook func(schema *openapi.Schema, meta HookMeta) *HookResult

// PostTransformHook may replace a computed type. schema is nil for non-schema
// component entries.
type PostTransformHook func(t tsast.Node, schema *openapi.Schema, meta HookMeta) *HookResult

// ExternalResolver decodes the node behind a ref into another document into
// target (*openapi.Schema, *openapi.Parameter, ...). openapi.FileResolver implements it.
type ExternalResolver interface {
	ResolveRef(ref string, target any) error
}

// FormatHook maps schema formats to TypeScript type names, for example
// {"date-time": "Date", "binary": "Blob"}. Nullable schemas keep `| null`.
func FormatHook(formats map[string]string) TransformHook {
	return func(schema *openapi.Schema, _ HookMeta) *HookResult {
		if schema.Format == "" || schema.IsRef() {
			return nil
		}
		name, ok := formats[schema.Format]
		if !ok {
			return nil
		}
		var t tsast.Node = tsast.Ref(name)
		if schema.Nullable || schema.Type.Is("null") {
			t = tsast.NewUnion(t, tsast.Null)
		}
		return &HookResult{Type: t}
	}
}
