package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oapistub/locator"
)

type locateInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document to search"`
	Target string    `json:"target"           jsonschema:"operationId, path template or concrete path"`
	Method string    `json:"method,omitempty" jsonschema:"HTTP method; required to pick a non-GET operation by path"`
}

type locateOutput struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	OperationID string            `json:"operation_id,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Tier        string            `json:"tier"`
	PathParams  map[string]string `json:"path_params,omitempty"`
}

func handleLocate(ctx context.Context, _ *mcp.CallToolRequest, input locateInput) (*mcp.CallToolResult, locateOutput, error) {
	spec, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), locateOutput{}, nil
	}
	result, err := locator.New(spec.Doc, locator.WithLogger(logger)).Locate(locatorTarget(input.Target, input.Method))
	if err != nil {
		return errResult(err), locateOutput{}, nil
	}
	return nil, locateOutput{
		Method:      result.Method,
		Path:        result.OriginalPath,
		OperationID: result.Operation.OperationID,
		Summary:     result.Operation.Summary,
		Tier:        result.Tier.String(),
		PathParams:  result.PathParams,
	}, nil
}
