package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
	"github.com/blimu-dev/typegen/pkg/utils"
)

var invalidCharRE = regexp.MustCompile(`[^A-Za-z_$0-9]`)

// enumRegistry collects the enum declarations hoisted while transforming.
type enumRegistry struct {
	decls  []tsast.Enum
	byPath map[string]string
	taken  map[string]bool
}

func newEnumRegistry() *enumRegistry {
	return &enumRegistry{byPath: make(map[string]string), taken: make(map[string]bool)}
}

// hoistable reports whether an enum can become a TypeScript enum: every value
// is a string, a number or null.
func hoistable(values []any) bool {
	for _, v := range values {
		switch v.(type) {
		case string, int, int64, uint64, float64, nil:
		default:
			return false
		}
	}
	return true
}

// hoist declares an enum for the schema at path and returns its name. The
// same path always yields the same declaration.
func (r *enumRegistry) hoist(path string, s *openapi.Schema) string {
	if name, ok := r.byPath[path]; ok {
		return name
	}
	name := r.reserve(enumName(path))
	r.byPath[path] = name

	names := stringList(s.Extensions["x-enum-varnames"])
	if names == nil {
		names = stringList(s.Extensions["x-enumNames"])
	}
	descriptions := stringList(s.Extensions["x-enum-descriptions"])

	decl := tsast.Enum{Name: name, Export: true, Doc: schemaDoc(s)}
	used := make(map[string]int)
	for i, v := range s.Enum {
		if v == nil {
			continue
		}
		member := tsast.EnumMember{Value: v}
		if i < len(names) && names[i] != "" {
			member.Name = enumMemberName(names[i])
		} else {
			member.Name = enumMemberName(fmt.Sprint(v))
		}
		if n := used[member.Name]; n > 0 {
			used[member.Name]++
			member.Name = fmt.Sprintf("%s_%d", member.Name, n+1)
		} else {
			used[member.Name] = 1
		}
		if i < len(descriptions) && descriptions[i] != "" {
			member.Doc = []string{descriptions[i]}
		}
		decl.Members = append(decl.Members, member)
	}
	r.decls = append(r.decls, decl)
	return name
}

func (r *enumRegistry) reserve(name string) string {
	candidate := name
	for i := 2; r.taken[candidate]; i++ {
		candidate = name + "_" + strconv.Itoa(i)
	}
	r.taken[candidate] = true
	return candidate
}

func (r *enumRegistry) nodes() []tsast.Node {
	out := make([]tsast.Node, len(r.decls))
	for i, d := range r.decls {
		out[i] = d
	}
	return out
}

// enumName derives a type name from a schema pointer:
// #/components/schemas/Pet/properties/status becomes PetStatus.
func enumName(path string) string {
	tokens, _ := pointerTokens(path)
	if len(tokens) >= 2 && tokens[0] == "components" && tokens[1] == "schemas" {
		tokens = tokens[2:]
	}
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "properties" {
			continue
		}
		words = append(words, utils.TypeName(t))
	}
	name := strings.Join(words, "")
	if name == "" {
		return "Enum"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "Enum" + name
	}
	return name
}

// enumMemberName turns a value or an x-enum-varnames entry into a member name.
func enumMemberName(name string) string {
	if name == "" {
		return "Empty"
	}
	if utils.IsIdentifier(name) {
		return name
	}
	switch {
	case name[0] >= '0' && name[0] <= '9':
		name = "Value" + strings.ReplaceAll(name, ".", "_")
	case name[0] == '-':
		name = "ValueMinus" + strings.ReplaceAll(name[1:], ".", "_")
	}
	if invalidCharRE.ReplaceAllString(name, "") == "" {
		return tsast.Quote(name)
	}
	name = strings.ReplaceAll(name, "+", "Plus")
	return invalidCharRE.ReplaceAllString(name, "_")
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	for i, item := range list {
		if item != nil {
			out[i] = fmt.Sprint(item)
		}
	}
	return out
}
