package transform

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/blimu-dev/typegen/pkg/tsast"
)

// joinPath appends escaped JSON pointer tokens to a "#/..." path.
func joinPath(base string, tokens ...string) string {
	if base == "" {
		base = "#"
	}
	var b strings.Builder
	b.WriteString(base)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(t))
	}
	return b.String()
}

// splitRef separates the document part of a ref from its fragment.
func splitRef(ref string) (file, fragment string) {
	file, fragment, _ = strings.Cut(ref, "#")
	return file, fragment
}

func isExternal(ref string) bool {
	file, _ := splitRef(ref)
	return file != ""
}

// pointerTokens decodes the fragment of a ref into unescaped tokens.
func pointerTokens(ref string) ([]string, bool) {
	_, fragment := splitRef(ref)
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}
	ptr, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, false
	}
	return ptr.DecodedTokens(), true
}

// canonicalRef normalizes the escaping of a ref so that equal targets compare equal.
func canonicalRef(ref string) string {
	file, _ := splitRef(ref)
	tokens, ok := pointerTokens(ref)
	if !ok {
		return ref
	}
	return file + joinPath("#", tokens...)
}

// lastToken returns the final pointer token of a ref or path ("Dog" for #/components/schemas/Dog).
func lastToken(ref string) string {
	tokens, ok := pointerTokens(ref)
	if !ok || len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// oapiRef turns a local ref into an indexed access type on the generated roots:
// #/components/schemas/Pet becomes components["schemas"]["Pet"]. "properties"
// segments inside schemas are skipped since generated object types have no
// such key.
func oapiRef(ref string) tsast.Node {
	tokens, ok := pointerTokens(ref)
	if !ok || len(tokens) == 0 {
		return tsast.Unknown
	}
	var t tsast.Node = tsast.Ref(tokens[0])
	depth := 1
	if tokens[0] == "components" {
		depth = 2
	}
	skipped := false
	for i, token := range tokens[1:] {
		if token == "properties" && !skipped && i >= depth {
			skipped = true
			continue
		}
		skipped = false
		t = tsast.Index(t, token)
	}
	return t
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// refType emits the indexed access type for a local ref to a named object.
// Refs into other documents are resolved through lookup and inlined.
func refType[T any](c *Context, ref string, opts NodeOptions, lookup func(string) (*T, bool), inline func(*T, NodeOptions) (tsast.Node, error)) (tsast.Node, error) {
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
	target, ok := lookup(ref)
	if !ok {
		return c.unresolved(ref, opts.Path)
	}
	c.inlining[key] = true
	defer delete(c.inlining, key)
	return inline(target, NodeOptions{Path: key, Ctx: c})
}
