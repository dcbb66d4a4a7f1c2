package transform

import (
	"fmt"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

// OperationEntry is an operation hoisted into the `operations` export.
type OperationEntry struct {
	ID   string
	Type tsast.Node
	Doc  []string
	// Path is the pointer of the path item or webhook declaring the operation.
	Path   string
	Method string
}

// OperationRegistry collects operations by operationId while paths and
// webhooks are transformed. An id keeps the position of its first
// registration; a later registration replaces the content.
type OperationRegistry struct {
	entries *openapi.OrderedMap[OperationEntry]
}

// NewOperationRegistry creates an empty registry
func NewOperationRegistry() *OperationRegistry {
	return &OperationRegistry{entries: openapi.NewOrderedMap[OperationEntry]()}
}

// Register stores e and returns the entry it replaced, if another path or
// method already used the same operationId.
func (r *OperationRegistry) Register(e OperationEntry) (OperationEntry, bool) {
	prev, exists := r.entries.Get(e.ID)
	r.entries.Set(e.ID, e)
	if exists && (prev.Path != e.Path || prev.Method != e.Method) {
		return prev, true
	}
	return OperationEntry{}, false
}

// Get returns the entry registered under id
func (r *OperationRegistry) Get(id string) (OperationEntry, bool) {
	return r.entries.Get(id)
}

// Len returns the number of registered operations
func (r *OperationRegistry) Len() int {
	return r.entries.Len()
}

// Entries returns the operations in registration order
func (r *OperationRegistry) Entries() []OperationEntry {
	out := make([]OperationEntry, 0, r.entries.Len())
	for _, e := range r.entries.All() {
		out = append(out, e)
	}
	return out
}

// registerOperation adds an entry, reporting a reused operationId as a
// warning or, with StrictOperationIDs, as an error.
func (c *Context) registerOperation(e OperationEntry) error {
	prev, replaced := c.operations.Register(e)
	if !replaced {
		return nil
	}
	if c.StrictOperationIDs {
		return fmt.Errorf("%w: %q used by %s %s and %s %s", ErrDuplicateOperationID, e.ID, prev.Method, prev.Path, e.Method, e.Path)
	}
	c.warn(WarnDuplicateOperation, joinPath(e.Path, e.Method),
		"operationId %q already used by %s %s, keeping the last one", e.ID, prev.Method, prev.Path)
	return nil
}
