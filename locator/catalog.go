package locator

import (
	"strings"

	"github.com/erraggy/oapistub/parser"
)

// Summary describes one operation for listings.
type Summary struct {
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Operations lists every operation in path declaration order, methods in
// get, put, post, delete, options, head, patch, trace order.
func Operations(doc *parser.Document) []Summary {
	if doc == nil {
		return nil
	}
	var out []Summary
	for template, item := range doc.Paths.All() {
		for _, m := range item.Methods() {
			op := item.Operation(m)
			out = append(out, Summary{
				Method:      strings.ToUpper(m),
				Path:        template,
				OperationID: op.OperationID,
				Summary:     op.Summary,
				Deprecated:  op.Deprecated,
			})
		}
	}
	return out
}

// OperationIDs lists the distinct operationIds in declaration order.
func OperationIDs(doc *parser.Document) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, s := range Operations(doc) {
		if s.OperationID == "" {
			continue
		}
		if _, dup := seen[s.OperationID]; dup {
			continue
		}
		seen[s.OperationID] = struct{}{}
		out = append(out, s.OperationID)
	}
	return out
}

// Paths lists the path templates in declaration order.
func Paths(doc *parser.Document) []string {
	if doc == nil {
		return nil
	}
	return doc.Paths.Templates()
}
