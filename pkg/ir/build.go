package ir

import (
	"sort"
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/transform"
)

// MiscTag groups operations without tags
const MiscTag = "misc"

// Build summarizes the operations of doc, grouped by their first tag.
// Parameters declared on the path item are merged into each operation.
func Build(doc *openapi.Document) IR {
	resolver := transform.NewResolver(doc, nil)
	servicesMap := map[string]*IRService{}

	addOp := func(op *openapi.Operation, item *openapi.PathItem, method, path string, webhook bool) {
		tag := MiscTag
		if len(op.Tags) > 0 {
			tag = op.Tags[0]
		}
		if _, ok := servicesMap[tag]; !ok {
			servicesMap[tag] = &IRService{Tag: tag}
		}
		irOp := IROperation{
			OperationID: op.OperationID,
			Method:      strings.ToUpper(method),
			Path:        path,
			Tag:         tag,
			Tags:        op.Tags,
			Summary:     op.Summary,
			Deprecated:  op.Deprecated,
			Webhook:     webhook,
			RequestBody: requestBody(resolver, op.RequestBody),
		}
		irOp.Success, _ = transform.FirstSuccess(op.Responses)
		irOp.Error, _ = transform.FirstError(op.Responses)
		collectParams(resolver, &irOp, item.Parameters, op.Parameters)
		servicesMap[tag].Operations = append(servicesMap[tag].Operations, irOp)
	}

	walk := func(items *openapi.OrderedMap[*openapi.PathItem], webhook bool) {
		for path, item := range items.All() {
			if item != nil && item.Ref != "" {
				if resolved, ok := resolver.PathItem(item.Ref); ok {
					item = resolved
				}
			}
			for _, method := range openapi.Methods {
				if op := item.Operation(method); op != nil {
					addOp(op, item, method, path, webhook)
				}
			}
		}
	}
	walk(doc.Paths, false)
	walk(doc.Webhooks, true)

	// Sort services and operations for determinism
	services := make([]IRService, 0, len(servicesMap))
	for _, s := range servicesMap {
		sort.SliceStable(s.Operations, func(i, j int) bool {
			if s.Operations[i].Path == s.Operations[j].Path {
				return s.Operations[i].Method < s.Operations[j].Method
			}
			return s.Operations[i].Path < s.Operations[j].Path
		})
		services = append(services, *s)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Tag < services[j].Tag })
	return IR{Title: doc.Info.Title, Version: doc.Info.Version, Services: services}
}

func collectParams(resolver *transform.Resolver, op *IROperation, shared, own []*openapi.Parameter) {
	merged := openapi.NewOrderedMap[*openapi.Parameter]()
	for _, p := range append(append([]*openapi.Parameter(nil), shared...), own...) {
		if p == nil {
			continue
		}
		if p.Ref != "" {
			resolved, ok := resolver.Parameter(p.Ref)
			if !ok {
				continue
			}
			p = resolved
		}
		merged.Set(p.In+":"+p.Name, p)
	}
	for _, p := range merged.All() {
		param := IRParam{
			Name:        p.Name,
			Required:    p.Required || p.In == "path",
			Deprecated:  p.Deprecated,
			Type:        schemaType(p.Schema),
			Description: p.Description,
		}
		switch p.In {
		case "path":
			op.PathParams = append(op.PathParams, param)
		case "query":
			op.QueryParams = append(op.QueryParams, param)
		case "header":
			op.HeaderParams = append(op.HeaderParams, param)
		case "cookie":
			op.CookieParams = append(op.CookieParams, param)
		}
	}
}

func requestBody(resolver *transform.Resolver, rb *openapi.RequestBody) *IRRequestBody {
	if rb == nil {
		return nil
	}
	if rb.Ref != "" {
		resolved, ok := resolver.RequestBody(rb.Ref)
		if !ok {
			return nil
		}
		rb = resolved
	}
	return &IRRequestBody{ContentTypes: rb.Content.Keys(), Required: rb.Required}
}

func schemaType(s *openapi.Schema) string {
	switch {
	case s == nil:
		return "string"
	case s.IsRef():
		return s.Ref[strings.LastIndex(s.Ref, "/")+1:]
	case len(s.Enum) > 0:
		return "enum"
	case len(s.Type) > 0:
		return strings.Join(s.Type, "|")
	case len(s.OneOf) > 0:
		return "oneOf"
	case len(s.AnyOf) > 0:
		return "anyOf"
	case len(s.AllOf) > 0:
		return "allOf"
	}
	return "unknown"
}
