package transform

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

var (
	// ErrUnresolvedRef is returned (wrapped in a *RefError) for dangling refs outside silent mode.
	ErrUnresolvedRef = errors.New("unresolved $ref")
	// ErrDuplicateOperationID is returned for a reused operationId when StrictOperationIDs is set.
	ErrDuplicateOperationID = errors.New("duplicate operationId")
)

// RefError reports a $ref that does not resolve
type RefError struct {
	Ref  string
	Path string
}

func (e *RefError) Error() string {
	return fmt.Sprintf("can't resolve $ref %q at %s", e.Ref, e.Path)
}

func (e *RefError) Unwrap() error { return ErrUnresolvedRef }

// WarningKind classifies recoverable problems
type WarningKind string

const (
	WarnUnresolvedRef      WarningKind = "unresolved-ref"
	WarnRefCycle           WarningKind = "ref-cycle"
	WarnSchemaShape        WarningKind = "schema-shape"
	WarnDuplicateOperation WarningKind = "duplicate-operation-id"
	WarnNameCollision      WarningKind = "name-collision"
)

// Warning is a recoverable problem found while transforming
type Warning struct {
	Kind    WarningKind
	Path    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Path, w.Message, w.Kind)
}

// NodeOptions is passed to every node transformer: where the node sits and the
// shared invocation state.
type NodeOptions struct {
	Path string
	Ctx  *Context
}

func (o NodeOptions) at(tokens ...string) NodeOptions {
	return NodeOptions{Path: joinPath(o.Path, tokens...), Ctx: o.Ctx}
}

// Context is the state of one Transform invocation. It is created by NewContext,
// never shared between invocations, and not safe for concurrent use.
type Context struct {
	Options

	doc            *openapi.Document
	resolver       *Resolver
	discriminators *Discriminators
	operations     *OperationRegistry
	enums          *enumRegistry
	logger         *slog.Logger
	warnings       []Warning
	inlining       map[string]bool
	withRequired   bool
}

// NewContext indexes doc and scans its discriminators.
func NewContext(doc *openapi.Document, opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	resolver := NewResolver(doc, opts.Resolver)
	return &Context{
		Options:        opts,
		doc:            doc,
		resolver:       resolver,
		discriminators: ScanDiscriminators(resolver),
		operations:     NewOperationRegistry(),
		enums:          newEnumRegistry(),
		logger:         logger,
		inlining:       make(map[string]bool),
	}
}

// Resolver returns the reference resolver of this invocation
func (c *Context) Resolver() *Resolver { return c.resolver }

// Discriminators returns the discriminator map of this invocation
func (c *Context) Discriminators() *Discriminators { return c.discriminators }

// Operations returns the operations registry filled while paths are transformed
func (c *Context) Operations() *OperationRegistry { return c.operations }

// Warnings returns the warnings recorded so far
func (c *Context) Warnings() []Warning { return c.warnings }

func (c *Context) warn(kind WarningKind, path, format string, args ...any) {
	w := Warning{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
	c.warnings = append(c.warnings, w)
	c.logger.Warn(w.Message, "kind", string(kind), "path", path)
}

// unresolved fails in strict mode and degrades to unknown in silent mode.
func (c *Context) unresolved(ref, path string) (tsast.Node, error) {
	if !c.Silent {
		return nil, &RefError{Ref: ref, Path: path}
	}
	c.warn(WarnUnresolvedRef, path, "can't resolve $ref %q, using unknown", ref)
	return tsast.Unknown, nil
}

func (c *Context) runTransform(schema *openapi.Schema, path string) *HookResult {
	if schema == nil {
		return nil
	}
	for _, hook := range c.Transform {
		if res := hook(schema, HookMeta{Path: path, Ctx: c}); res != nil && res.Type != nil {
			return res
		}
	}
	return nil
}

func (c *Context) runPostTransform(t tsast.Node, schema *openapi.Schema, path string) *HookResult {
	for _, hook := range c.PostTransform {
		if res := hook(t, schema, HookMeta{Path: path, Ctx: c}); res != nil {
			return res
		}
	}
	return nil
}

// keys returns the keys of m in document order, or sorted when alphabetizing.
func keys[V any](c *Context, m *openapi.OrderedMap[V]) []string {
	if c.Alphabetize {
		return m.SortedKeys()
	}
	return m.Keys()
}
