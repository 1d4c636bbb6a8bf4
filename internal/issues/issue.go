// Package issues provides the issue type shared by the translator and the
// generator for problems that degrade output without failing it.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/oapistub/internal/severity"
)

// Issue is a single problem found while producing output.
type Issue struct {
	// Path is a dotted location inside the schema or operation (e.g. "response.items.owner")
	Path string
	// Message is a human-readable description
	Message string
	// Severity indicates how much the output is affected
	Severity severity.Severity
	// Field is the schema keyword involved, if any
	Field string
	// Value is the offending value, if any
	Value any
	// Context carries extra detail such as the reference that failed
	Context string
	// Operation is set when the issue belongs to a located operation
	Operation *OperationContext
}

// String renders the issue on one line:
//
//	[warning] response.items: unresolved reference (GET /pets, operationId: listPets) [#/components/schemas/Pet]
func (i Issue) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", i.Severity)
	if i.Path != "" {
		b.WriteString(i.Path)
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	if i.Operation != nil && !i.Operation.IsEmpty() {
		b.WriteByte(' ')
		b.WriteString(i.Operation.String())
	}
	if i.Context != "" {
		fmt.Fprintf(&b, " [%s]", i.Context)
	}
	return b.String()
}

// Count returns how many issues are at least as severe as min.
func Count(list []Issue, min severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity.AtLeast(min) {
			n++
		}
	}
	return n
}

// WithOperation returns a copy of list with ctx attached to every issue
// that has no operation yet.
func WithOperation(list []Issue, ctx OperationContext) []Issue {
	out := make([]Issue, len(list))
	for idx, i := range list {
		if i.Operation == nil {
			c := ctx
			i.Operation = &c
		}
		out[idx] = i
	}
	return out
}
