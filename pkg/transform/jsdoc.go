package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
)

// docFields are the annotations a JSDoc block can carry.
type docFields struct {
	Title       string
	Summary     string
	Format      string
	Deprecated  bool
	Description string
	Default     any
	HasDefault  bool
	Example     any
	HasExample  bool
	Constant    bool
	Enum        string
}

func (f docFields) lines() []string {
	var out []string
	if t := strings.TrimSpace(f.Title); t != "" {
		out = append(out, t)
	}
	if s := strings.TrimSpace(f.Summary); s != "" {
		out = append(out, s)
	}
	if f.Format != "" {
		out = append(out, "Format: "+f.Format)
	}
	if f.Deprecated {
		out = append(out, "@deprecated")
	}
	if d := strings.TrimSpace(f.Description); d != "" {
		out = append(out, "@description "+d)
	}
	if f.HasDefault {
		out = append(out, "@default "+docValue(f.Default))
	}
	if f.HasExample {
		out = append(out, "@example "+docValue(f.Example))
	}
	if f.Constant {
		out = append(out, "@constant")
	}
	if f.Enum != "" {
		out = append(out, "@enum {"+f.Enum+"}")
	}
	return out
}

// docValue renders a default or example: objects and arrays as indented JSON,
// scalars as plain text.
func docValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		data, err := json.MarshalIndent(v, "", "  ")
		if err == nil {
			return string(data)
		}
	case nil:
		return "null"
	}
	return fmt.Sprint(v)
}

func schemaDoc(s *openapi.Schema) []string {
	if s == nil || s.IsBool() || s.IsRef() {
		return nil
	}
	f := docFields{
		Title:       s.Title,
		Summary:     s.Summary,
		Format:      s.Format,
		Deprecated:  s.Deprecated,
		Description: s.Description,
		Default:     s.Default,
		HasDefault:  s.HasDefault,
		Example:     s.Example,
		HasExample:  s.HasExample,
		Constant:    s.HasConst,
	}
	if len(s.Enum) > 0 {
		typ := "unknown"
		if len(s.Type) > 0 {
			typ = strings.Join(s.Type, "|")
		}
		if s.Nullable {
			typ += "|null"
		}
		f.Enum = typ
	}
	return f.lines()
}

func parameterDoc(p *openapi.Parameter) []string {
	return docFields{Description: p.Description, Deprecated: p.Deprecated}.lines()
}

func headerDoc(h *openapi.Header) []string {
	return docFields{Description: h.Description, Deprecated: h.Deprecated}.lines()
}

func operationDoc(op *openapi.Operation) []string {
	return docFields{Summary: op.Summary, Description: op.Description, Deprecated: op.Deprecated}.lines()
}

func pathItemDoc(item *openapi.PathItem) []string {
	return docFields{Summary: item.Summary, Description: item.Description}.lines()
}

func responseDoc(resp *openapi.Response) []string {
	return docFields{Summary: resp.Summary, Description: resp.Description}.lines()
}

func requestBodyDoc(rb *openapi.RequestBody) []string {
	return docFields{Description: rb.Description}.lines()
}
