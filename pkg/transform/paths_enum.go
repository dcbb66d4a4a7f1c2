package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
	"github.com/blimu-dev/typegen/pkg/utils"
)

var (
	templateParamRE = regexp.MustCompile(`\{(\w+)\}`)
	nameJunkRE      = regexp.MustCompile(`\{.*\}|:.*|[^a-zA-Z\d_]+`)
)

// MakeAPIPathsEnum declares `export enum ApiPaths` with one member per
// operation. Members are named after the operationId, or after the method and
// path; values use :param placeholders (/users/:id).
func MakeAPIPathsEnum(paths *openapi.OrderedMap[*openapi.PathItem]) tsast.Enum {
	decl := tsast.Enum{Name: "ApiPaths", Export: true}
	used := make(map[string]int)
	for url, item := range paths.All() {
		if item == nil {
			continue
		}
		for _, method := range openapi.Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			name := op.OperationID
			if name == "" {
				name = methodPathName(method, url)
			}
			name = enumMemberName(name)
			if n := used[name]; n > 0 {
				used[name]++
				name = fmt.Sprintf("%s_%d", name, n+1)
			} else {
				used[name] = 1
			}
			decl.Members = append(decl.Members, tsast.EnumMember{
				Name:  name,
				Value: templateParamRE.ReplaceAllString(url, ":$1"),
			})
		}
	}
	return decl
}

// methodPathName builds GetUsersPosts-style names: each path segment is
// capitalised and stripped of parameters and punctuation.
func methodPathName(method, url string) string {
	var b strings.Builder
	for _, part := range strings.Split(method+url, "/") {
		if part == "" {
			continue
		}
		b.WriteString(nameJunkRE.ReplaceAllString(utils.UpperFirst(part), ""))
	}
	return b.String()
}
