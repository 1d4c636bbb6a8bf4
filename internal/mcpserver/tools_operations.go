package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oapistub/locator"
)

type operationsInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The document to list"`
	Overview bool      `json:"overview,omitempty" jsonschema:"Return a plain-text overview instead of structured entries"`
}

type operationSummary struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type operationsOutput struct {
	Title      string             `json:"title,omitempty"`
	Version    string             `json:"version"`
	Converted  bool               `json:"converted,omitempty"`
	Count      int                `json:"count"`
	Operations []operationSummary `json:"operations,omitempty"`
	Overview   string             `json:"overview,omitempty"`
}

func handleOperations(ctx context.Context, _ *mcp.CallToolRequest, input operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
	spec, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}
	doc := spec.Doc

	ops := locator.Operations(doc)
	output := operationsOutput{
		Version:   doc.Version(),
		Converted: spec.Converted,
		Count:     len(ops),
	}
	if doc.Info != nil {
		output.Title = doc.Info.Title
	}
	if input.Overview {
		output.Overview = locator.Overview(doc)
		return nil, output, nil
	}

	output.Operations = makeSlice[operationSummary](len(ops))
	for _, op := range ops {
		output.Operations = append(output.Operations, operationSummary{
			Method:      op.Method,
			Path:        op.Path,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Deprecated:  op.Deprecated,
		})
	}
	return nil, output, nil
}
