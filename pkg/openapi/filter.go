package openapi

import (
	"fmt"
	"regexp"
)

// CompileTagFilters compiles regex patterns for tag filtering
func CompileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeTags pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeTags pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// ShouldIncludeOperation decides whether an operation with the given tags survives
// the filters. An operation is kept when any tag matches an include pattern (or
// there are none) and no tag matches an exclude pattern.
func ShouldIncludeOperation(tags []string, include, exclude []*regexp.Regexp) bool {
	included := len(include) == 0
	for _, tag := range tags {
		if included {
			break
		}
		for _, r := range include {
			if r.MatchString(tag) {
				included = true
				break
			}
		}
	}
	if !included {
		return false
	}

	for _, tag := range tags {
		for _, r := range exclude {
			if r.MatchString(tag) {
				return false
			}
		}
	}
	return true
}

// FilterByTags returns a copy of doc whose paths and webhooks only keep the
// operations accepted by ShouldIncludeOperation. Path items left without
// operations are dropped. doc itself is not modified.
func FilterByTags(doc *Document, include, exclude []*regexp.Regexp) *Document {
	if len(include) == 0 && len(exclude) == 0 {
		return doc
	}
	out := *doc
	out.Paths = filterPathItems(doc.Paths, include, exclude)
	out.Webhooks = filterPathItems(doc.Webhooks, include, exclude)
	return &out
}

func filterPathItems(items *OrderedMap[*PathItem], include, exclude []*regexp.Regexp) *OrderedMap[*PathItem] {
	if items == nil {
		return nil
	}
	out := NewOrderedMap[*PathItem]()
	for key, item := range items.All() {
		if item == nil || item.Ref != "" {
			out.Set(key, item)
			continue
		}
		copied := *item
		kept := 0
		for _, method := range Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			if ShouldIncludeOperation(op.Tags, include, exclude) {
				kept++
				continue
			}
			copied.SetOperation(method, nil)
		}
		if kept > 0 {
			out.Set(key, &copied)
		}
	}
	return out
}
