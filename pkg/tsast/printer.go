package tsast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/blimu-dev/typegen/pkg/utils"
)

const indentUnit = "    "

// Print renders declarations (or type expressions) one after another.
func Print(nodes ...Node) string {
	p := &printer{}
	for _, n := range nodes {
		p.decl(n)
	}
	return p.b.String()
}

// PrintType renders a single type expression on its own.
func PrintType(n Node) string {
	p := &printer{}
	p.typ(n)
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) write(s string) {
	p.b.WriteString(s)
}

func (p *printer) newline() {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat(indentUnit, p.depth))
}

func (p *printer) decl(n Node) {
	switch d := n.(type) {
	case TypeAlias:
		p.doc(d.Doc)
		p.export(d.Export)
		p.write("type " + d.Name + " = ")
		p.typ(d.Type)
		p.write(";\n")
	case Interface:
		p.doc(d.Doc)
		p.export(d.Export)
		p.write("interface " + d.Name + " ")
		p.members(d.Members)
		p.write("\n")
	case Enum:
		p.doc(d.Doc)
		p.export(d.Export)
		p.write("enum " + d.Name + " {")
		p.depth++
		for i, m := range d.Members {
			p.newline()
			if len(m.Doc) > 0 {
				p.doc(m.Doc)
			}
			p.write(m.Name + " = " + literal(m.Value))
			if i < len(d.Members)-1 {
				p.write(",")
			}
		}
		p.depth--
		if len(d.Members) > 0 {
			p.newline()
		}
		p.write("}\n")
	case Raw:
		text := strings.TrimRight(d.Text, "\n")
		if text != "" {
			p.write(text + "\n")
		}
	default:
		p.typ(n)
		p.write("\n")
	}
}

func (p *printer) export(export bool) {
	if export {
		p.write("export ")
	}
}

// doc writes a JSDoc block. Entries may span several lines; continuation lines
// are indented under the entry.
func (p *printer) doc(entries []string) {
	if len(entries) == 0 {
		return
	}
	escape := func(s string) string { return strings.ReplaceAll(s, "*/", "*\\/") }
	if len(entries) == 1 && !strings.Contains(entries[0], "\n") {
		p.write("/** " + escape(entries[0]) + " */")
		p.newline()
		return
	}
	p.write("/**")
	for _, e := range entries {
		for i, line := range strings.Split(escape(e), "\n") {
			p.newline()
			if i == 0 {
				p.write(strings.TrimRight(" * "+line, " "))
			} else {
				p.write(strings.TrimRight(" *     "+line, " "))
			}
		}
	}
	p.newline()
	p.write(" */")
	p.newline()
}

func (p *printer) members(members []Member) {
	if len(members) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.depth++
	for _, m := range members {
		p.newline()
		switch v := m.(type) {
		case Property:
			p.doc(v.Doc)
			if v.Readonly {
				p.write("readonly ")
			}
			p.write(PropertyKey(v.Name))
			if v.Optional {
				p.write("?")
			}
			p.write(": ")
			p.typ(v.Type)
			p.write(";")
		case IndexSignature:
			p.doc(v.Doc)
			if v.Readonly {
				p.write("readonly ")
			}
			p.write("[" + v.Param + ": ")
			p.typ(v.Key)
			p.write("]: ")
			p.typ(v.Type)
			p.write(";")
		}
	}
	p.depth--
	p.newline()
	p.write("}")
}

func (p *printer) typ(n Node) {
	switch t := n.(type) {
	case nil:
		p.write(string(Unknown))
	case Keyword:
		p.write(string(t))
	case Literal:
		p.write(literal(t.Value))
	case TypeRef:
		p.write(t.Name)
		if len(t.Args) > 0 {
			p.write("<")
			for i, a := range t.Args {
				if i > 0 {
					p.write(", ")
				}
				p.typ(a)
			}
			p.write(">")
		}
	case IndexedAccess:
		p.operand(t.Object, needsParensAsOperand)
		p.write("[")
		p.typ(t.Index)
		p.write("]")
	case Union:
		for i, m := range t.Types {
			if i > 0 {
				p.write(" | ")
			}
			p.typ(m)
		}
	case Intersection:
		for i, m := range t.Types {
			if i > 0 {
				p.write(" & ")
			}
			p.operand(m, func(n Node) bool { _, ok := n.(Union); return ok })
		}
	case Array:
		p.operand(t.Elem, needsParensAsOperand)
		p.write("[]")
	case Readonly:
		p.write("readonly ")
		p.typ(t.Type)
	case Tuple:
		p.write("[")
		for i, e := range t.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.typ(e)
		}
		p.write("]")
	case Rest:
		p.write("...")
		p.typ(t.Type)
	case TypeLiteral:
		p.members(t.Members)
	case TemplateLiteral:
		p.write("`" + escapeTemplate(t.Head))
		for _, s := range t.Spans {
			p.write("${")
			p.typ(s.Type)
			p.write("}" + escapeTemplate(s.Tail))
		}
		p.write("`")
	default:
		panic(fmt.Sprintf("tsast: cannot print %T as a type", n))
	}
}

func (p *printer) operand(n Node, parens func(Node) bool) {
	if parens(n) {
		p.write("(")
		p.typ(n)
		p.write(")")
		return
	}
	p.typ(n)
}

func needsParensAsOperand(n Node) bool {
	switch n.(type) {
	case Union, Intersection, Readonly:
		return true
	}
	return false
}

// PropertyKey formats a property name: identifiers stay bare, canonical
// non-negative numbers become numeric keys and everything else is quoted.
func PropertyKey(name string) string {
	if utils.IsIdentifier(name) {
		return name
	}
	if isNumericKey(name) {
		return name
	}
	return Quote(name)
}

func isNumericKey(s string) bool {
	if s == "" || s[0] == '-' {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return formatNumber(f) == s
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}

func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	}
	return Quote(fmt.Sprint(v))
}

func formatNumber(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
