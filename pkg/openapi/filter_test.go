package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIncludeOperation(t *testing.T) {
	tests := []struct {
		name         string
		originalTags []string
		includeTags  []string
		excludeTags  []string
		expected     bool
	}{
		{
			name:         "no filters - include all",
			originalTags: []string{"users", "internal"},
			expected:     true,
		},
		{
			name:         "include filter matches first tag",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{"users"},
			expected:     true,
		},
		{
			name:         "include filter matches second tag",
			originalTags: []string{"internal", "users"},
			includeTags:  []string{"users"},
			expected:     true,
		},
		{
			name:         "include filter matches none",
			originalTags: []string{"internal", "admin"},
			includeTags:  []string{"users"},
			expected:     false,
		},
		{
			name:         "untagged operation with include filter",
			originalTags: nil,
			includeTags:  []string{"users"},
			expected:     false,
		},
		{
			name:         "exclude filter matches second tag",
			originalTags: []string{"users", "internal"},
			excludeTags:  []string{"internal"},
			expected:     false,
		},
		{
			name:         "exclude takes precedence over include",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{"users"},
			excludeTags:  []string{"internal"},
			expected:     false,
		},
		{
			name:         "regex patterns work",
			originalTags: []string{"users_v1", "internal_api"},
			includeTags:  []string{"^users_.*"},
			excludeTags:  []string{".*_api$"},
			expected:     false,
		},
		{
			name:         "multiple include patterns - any match",
			originalTags: []string{"orders", "billing"},
			includeTags:  []string{"users", "orders"},
			expected:     true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			include, exclude, err := CompileTagFilters(test.includeTags, test.excludeTags)
			require.NoError(t, err)
			assert.Equal(t, test.expected, ShouldIncludeOperation(test.originalTags, include, exclude))
		})
	}
}

func TestCompileTagFiltersInvalidPattern(t *testing.T) {
	_, _, err := CompileTagFilters([]string{"("}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "includeTags")
}

func TestFilterByTags(t *testing.T) {
	doc, err := Parse([]byte(`
openapi: 3.1.0
info: {title: t, version: "1"}
paths:
  /users:
    get:
      tags: [users]
      responses: {}
    delete:
      tags: [admin]
      responses: {}
  /admin:
    post:
      tags: [admin]
      responses: {}
`))
	require.NoError(t, err)

	include, exclude, err := CompileTagFilters(nil, []string{"^admin$"})
	require.NoError(t, err)
	filtered := FilterByTags(doc, include, exclude)

	assert.Equal(t, []string{"/users"}, filtered.Paths.Keys())
	users, _ := filtered.Paths.Get("/users")
	assert.NotNil(t, users.Get)
	assert.Nil(t, users.Delete)

	// the input document is left untouched
	assert.Equal(t, 2, doc.Paths.Len())
	original, _ := doc.Paths.Get("/users")
	assert.NotNil(t, original.Delete)
}
