package transform

import (
	"strconv"

	"github.com/blimu-dev/typegen/pkg/openapi"
)

// IndexedSchema is a schema together with the JSON pointer it lives at
type IndexedSchema struct {
	Path   string
	Schema *openapi.Schema
}

// Resolver looks up $ref targets. Local targets come from an index built once
// over the whole document; refs into other documents go through the optional
// ExternalResolver and are cached.
type Resolver struct {
	index    map[string]any
	schemas  []IndexedSchema
	external ExternalResolver
	fetched  map[string]any
}

// NewResolver indexes every addressable object of doc.
func NewResolver(doc *openapi.Document, external ExternalResolver) *Resolver {
	r := &Resolver{
		index:    make(map[string]any),
		external: external,
		fetched:  make(map[string]any),
	}
	if doc == nil {
		return r
	}
	if c := doc.Components; c != nil {
		for name, s := range c.Schemas.All() {
			r.addSchema(joinPath("#", "components", "schemas", name), s)
		}
		for name, resp := range c.Responses.All() {
			r.addResponse(joinPath("#", "components", "responses", name), resp)
		}
		for name, p := range c.Parameters.All() {
			r.addParameter(joinPath("#", "components", "parameters", name), p)
		}
		for name, rb := range c.RequestBodies.All() {
			r.addRequestBody(joinPath("#", "components", "requestBodies", name), rb)
		}
		for name, h := range c.Headers.All() {
			r.addHeader(joinPath("#", "components", "headers", name), h)
		}
		for name, item := range c.PathItems.All() {
			r.addPathItem(joinPath("#", "components", "pathItems", name), item)
		}
	}
	for url, item := range doc.Paths.All() {
		r.addPathItem(joinPath("#", "paths", url), item)
	}
	for name, item := range doc.Webhooks.All() {
		r.addPathItem(joinPath("#", "webhooks", name), item)
	}
	for name, s := range doc.Defs.All() {
		r.addSchema(joinPath("#", "$defs", name), s)
	}
	return r
}

func (r *Resolver) addSchema(path string, s *openapi.Schema) {
	if s == nil {
		return
	}
	r.index[path] = s
	r.schemas = append(r.schemas, IndexedSchema{Path: path, Schema: s})
	for _, child := range s.Children() {
		r.addSchema(joinPath(path, child.Path...), child.Schema)
	}
}

func (r *Resolver) addParameter(path string, p *openapi.Parameter) {
	if p == nil {
		return
	}
	r.index[path] = p
	r.addSchema(joinPath(path, "schema"), p.Schema)
	r.addContent(joinPath(path, "content"), p.Content)
}

func (r *Resolver) addHeader(path string, h *openapi.Header) {
	if h == nil {
		return
	}
	r.index[path] = h
	r.addSchema(joinPath(path, "schema"), h.Schema)
	r.addContent(joinPath(path, "content"), h.Content)
}

func (r *Resolver) addRequestBody(path string, rb *openapi.RequestBody) {
	if rb == nil {
		return
	}
	r.index[path] = rb
	r.addContent(joinPath(path, "content"), rb.Content)
}

func (r *Resolver) addResponse(path string, resp *openapi.Response) {
	if resp == nil {
		return
	}
	r.index[path] = resp
	for name, h := range resp.Headers.All() {
		r.addHeader(joinPath(path, "headers", name), h)
	}
	r.addContent(joinPath(path, "content"), resp.Content)
}

func (r *Resolver) addContent(path string, content *openapi.OrderedMap[*openapi.MediaType]) {
	for mediaType, mt := range content.All() {
		if mt == nil {
			continue
		}
		mtPath := joinPath(path, mediaType)
		r.index[mtPath] = mt
		r.addSchema(joinPath(mtPath, "schema"), mt.Schema)
	}
}

func (r *Resolver) addPathItem(path string, item *openapi.PathItem) {
	if item == nil {
		return
	}
	r.index[path] = item
	for i, p := range item.Parameters {
		r.addParameter(joinPath(path, "parameters", strconv.Itoa(i)), p)
	}
	for _, method := range openapi.Methods {
		op := item.Operation(method)
		if op == nil {
			continue
		}
		opPath := joinPath(path, method)
		r.index[opPath] = op
		for i, p := range op.Parameters {
			r.addParameter(joinPath(opPath, "parameters", strconv.Itoa(i)), p)
		}
		r.addRequestBody(joinPath(opPath, "requestBody"), op.RequestBody)
		for code, resp := range op.Responses.All() {
			r.addResponse(joinPath(opPath, "responses", code), resp)
		}
	}
}

// Schemas returns every indexed schema in document order: components first,
// then paths, webhooks and $defs, each parent before its children.
func (r *Resolver) Schemas() []IndexedSchema {
	return r.schemas
}

// Exists reports whether a local ref points at an indexed object
func (r *Resolver) Exists(ref string) bool {
	_, ok := r.index[canonicalRef(ref)]
	return ok
}

// Resolve returns the object a local ref points at, without following any
// ref that object holds.
func (r *Resolver) Resolve(ref string) (any, bool) {
	node, ok := r.index[canonicalRef(ref)]
	return node, ok
}

// Schema resolves ref to a schema
func (r *Resolver) Schema(ref string) (*openapi.Schema, bool) {
	return resolveAs[openapi.Schema](r, ref)
}

// Parameter resolves ref to a parameter
func (r *Resolver) Parameter(ref string) (*openapi.Parameter, bool) {
	return resolveAs[openapi.Parameter](r, ref)
}

// RequestBody resolves ref to a request body
func (r *Resolver) RequestBody(ref string) (*openapi.RequestBody, bool) {
	return resolveAs[openapi.RequestBody](r, ref)
}

// Response resolves ref to a response
func (r *Resolver) Response(ref string) (*openapi.Response, bool) {
	return resolveAs[openapi.Response](r, ref)
}

// Header resolves ref to a header
func (r *Resolver) Header(ref string) (*openapi.Header, bool) {
	return resolveAs[openapi.Header](r, ref)
}

// PathItem resolves ref to a path item
func (r *Resolver) PathItem(ref string) (*openapi.PathItem, bool) {
	return resolveAs[openapi.PathItem](r, ref)
}

// Target follows a chain of schema refs and returns the canonical pointer of
// the last object reached. On a cycle it stops at the first repeated ref.
func (r *Resolver) Target(ref string) string {
	visited := make(map[string]bool)
	key := canonicalRef(ref)
	for !visited[key] {
		visited[key] = true
		s, ok := lookupAs[openapi.Schema](r, key)
		if !ok || !s.IsRef() {
			return key
		}
		key = canonicalRef(s.Ref)
	}
	return key
}

// resolveAs follows ref, and any ref the target itself holds, until a concrete
// node is reached. A ref chain that loops back returns the last node reached
// without following further.
func resolveAs[T any](r *Resolver, ref string) (*T, bool) {
	visited := make(map[string]bool)
	var last *T
	for ref != "" {
		key := canonicalRef(ref)
		if visited[key] {
			return last, last != nil
		}
		visited[key] = true
		node, ok := lookupAs[T](r, ref)
		if !ok {
			return nil, false
		}
		last = node
		ref = refOf(node)
	}
	return last, last != nil
}

func lookupAs[T any](r *Resolver, ref string) (*T, bool) {
	key := canonicalRef(ref)
	if !isExternal(ref) {
		node, ok := r.index[key].(*T)
		return node, ok
	}
	if cached, ok := r.fetched[key]; ok {
		node, ok := cached.(*T)
		return node, ok
	}
	if r.external == nil {
		return nil, false
	}
	node := new(T)
	if err := r.external.ResolveRef(ref, node); err != nil {
		return nil, false
	}
	r.fetched[key] = node
	return node, true
}

func refOf(node any) string {
	switch n := node.(type) {
	case *openapi.Schema:
		return n.Ref
	case *openapi.Parameter:
		return n.Ref
	case *openapi.RequestBody:
		return n.Ref
	case *openapi.Response:
		return n.Ref
	case *openapi.Header:
		return n.Ref
	case *openapi.PathItem:
		return n.Ref
	case *openapi.MediaType:
		return n.Ref
	}
	return ""
}
