// Package tsast is a small model of TypeScript type-level syntax: type
// expressions, object members and the handful of declarations a generated
// types file needs. Print turns a tree into source text.
package tsast

import "slices"

// Node is a type expression or a top-level declaration.
type Node interface {
	tsNode()
}

// Member is an entry of a type literal or interface body.
type Member interface {
	tsMember()
}

// Keyword is a built-in type keyword.
type Keyword string

const (
	Any       Keyword = "any"
	Boolean   Keyword = "boolean"
	Never     Keyword = "never"
	Null      Keyword = "null"
	Number    Keyword = "number"
	String    Keyword = "string"
	Undefined Keyword = "undefined"
	Unknown   Keyword = "unknown"
)

// Literal is a literal type: a string, a number, true/false or null (nil).
type Literal struct {
	Value any
}

// TypeRef references a named type, optionally with type arguments.
type TypeRef struct {
	Name string
	Args []Node
}

// IndexedAccess is Object[Index].
type IndexedAccess struct {
	Object Node
	Index  Node
}

// Union is A | B | C.
type Union struct {
	Types []Node
}

// Intersection is A & B & C.
type Intersection struct {
	Types []Node
}

// Array is Elem[].
type Array struct {
	Elem Node
}

// Readonly is the `readonly` operator applied to an array or tuple.
type Readonly struct {
	Type Node
}

// Tuple is [A, B, ...C[]].
type Tuple struct {
	Elems []Node
}

// Rest is a rest element inside a tuple.
type Rest struct {
	Type Node
}

// TypeLiteral is an inline object type.
type TypeLiteral struct {
	Members []Member
}

// TemplateLiteral is a template literal type such as `/users/${string}`.
type TemplateLiteral struct {
	Head  string
	Spans []TemplateSpan
}

// TemplateSpan is one `${Type}Tail` segment of a template literal type.
type TemplateSpan struct {
	Type Node
	Tail string
}

// Property is a named member. Name is the raw key; the printer quotes it when needed.
type Property struct {
	Name     string
	Optional bool
	Readonly bool
	Type     Node
	Doc      []string
}

// IndexSignature is [Param: Key]: Type.
type IndexSignature struct {
	Param    string
	Key      Node
	Type     Node
	Readonly bool
	Doc      []string
}

// TypeAlias is `type Name = Type;`.
type TypeAlias struct {
	Name   string
	Type   Node
	Export bool
	Doc    []string
}

// Interface is `interface Name { ... }`.
type Interface struct {
	Name    string
	Members []Member
	Export  bool
	Doc     []string
}

// Enum is an enum declaration. Member values are strings or numbers.
type Enum struct {
	Name    string
	Members []EnumMember
	Export  bool
	Doc     []string
}

// EnumMember is one enum entry. Name is printed as given.
type EnumMember struct {
	Name  string
	Value any
	Doc   []string
}

// Raw is source text emitted verbatim.
type Raw struct {
	Text string
}

func (Keyword) tsNode()         {}
func (Literal) tsNode()         {}
func (TypeRef) tsNode()         {}
func (IndexedAccess) tsNode()   {}
func (Union) tsNode()           {}
func (Intersection) tsNode()    {}
func (Array) tsNode()           {}
func (Readonly) tsNode()        {}
func (Tuple) tsNode()           {}
func (Rest) tsNode()            {}
func (TypeLiteral) tsNode()     {}
func (TemplateLiteral) tsNode() {}
func (TypeAlias) tsNode()       {}
func (Interface) tsNode()       {}
func (Enum) tsNode()            {}
func (Raw) tsNode()             {}

func (Property) tsMember()       {}
func (IndexSignature) tsMember() {}

// Lit creates a literal type.
func Lit(v any) Literal {
	return Literal{Value: v}
}

// Ref creates a reference to a named type.
func Ref(name string, args ...Node) TypeRef {
	return TypeRef{Name: name, Args: args}
}

// Index builds obj["a"]["b"]... from string keys.
func Index(obj Node, keys ...string) Node {
	out := obj
	for _, k := range keys {
		out = IndexedAccess{Object: out, Index: Lit(k)}
	}
	return out
}

// Record creates Record<K, V>.
func Record(key, value Node) TypeRef {
	return Ref("Record", key, value)
}

// Omit creates Omit<T, "a" | "b">.
func Omit(t Node, keys ...string) Node {
	lits := make([]Node, len(keys))
	for i, k := range keys {
		lits[i] = Lit(k)
	}
	return Ref("Omit", t, NewUnion(lits...))
}

// Object creates a type literal.
func Object(members ...Member) TypeLiteral {
	return TypeLiteral{Members: members}
}

// NewUnion joins types with |. Nested unions are flattened and duplicate
// keywords, literals and references dropped; zero types give never and a
// single type is returned as-is.
func NewUnion(types ...Node) Node {
	flat := make([]Node, 0, len(types))
	for _, t := range types {
		if u, ok := t.(Union); ok {
			flat = append(flat, u.Types...)
			continue
		}
		flat = append(flat, t)
	}
	flat = dedupe(flat)
	switch len(flat) {
	case 0:
		return Never
	case 1:
		return flat[0]
	}
	return Union{Types: flat}
}

// NewIntersection joins types with &, with the same flattening rules as NewUnion.
func NewIntersection(types ...Node) Node {
	flat := make([]Node, 0, len(types))
	for _, t := range types {
		if in, ok := t.(Intersection); ok {
			flat = append(flat, in.Types...)
			continue
		}
		flat = append(flat, t)
	}
	flat = dedupe(flat)
	switch len(flat) {
	case 0:
		return Never
	case 1:
		return flat[0]
	}
	return Intersection{Types: flat}
}

func dedupe(types []Node) []Node {
	seen := make([]string, 0, len(types))
	out := types[:0:0]
	for _, t := range types {
		switch t.(type) {
		case Keyword, Literal, TypeRef, IndexedAccess:
			key := PrintType(t)
			if slices.Contains(seen, key) {
				continue
			}
			seen = append(seen, key)
		}
		out = append(out, t)
	}
	return out
}

// IsPrimitive reports whether t is a primitive keyword or the null literal.
func IsPrimitive(t Node) bool {
	switch v := t.(type) {
	case Keyword:
		switch v {
		case Boolean, Never, Null, Number, String, Undefined:
			return true
		}
	case Literal:
		return v.Value == nil
	}
	return false
}

// IsEmptyObject reports whether t is a type literal without members.
func IsEmptyObject(t Node) bool {
	lit, ok := t.(TypeLiteral)
	return ok && len(lit.Members) == 0
}
