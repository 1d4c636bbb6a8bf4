package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oapistub/generator"
	"github.com/erraggy/oapistub/internal/specload"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/schema"
	"github.com/erraggy/oapistub/translator"
)

type operationInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The document containing the operation"`
	Target string    `json:"target"           jsonschema:"operationId, path template or concrete path"`
	Method string    `json:"method,omitempty" jsonschema:"HTTP method; required to pick a non-GET operation by path"`
}

type parameterInfo struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Required    bool   `json:"required,omitempty"`
	Description string `json:"description,omitempty"`
	Schema      any    `json:"schema,omitempty"`
}

type bodyInfo struct {
	ContentType string `json:"content_type,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Schema      any    `json:"schema,omitempty"`
}

type unresolvedInfo struct {
	Ref    string `json:"ref"`
	Reason string `json:"reason"`
}

type requestOutput struct {
	Method      string           `json:"method"`
	Path        string           `json:"path"`
	OperationID string           `json:"operation_id,omitempty"`
	BaseURL     string           `json:"base_url,omitempty"`
	Parameters  []parameterInfo  `json:"parameters,omitempty"`
	Body        *bodyInfo        `json:"body,omitempty"`
	Skipped     []string         `json:"skipped_parameters,omitempty"`
	Unresolved  []unresolvedInfo `json:"unresolved,omitempty"`
}

type responseOutput struct {
	Method      string           `json:"method"`
	Path        string           `json:"path"`
	Status      string           `json:"status,omitempty"`
	Description string           `json:"description,omitempty"`
	ContentType string           `json:"content_type,omitempty"`
	Schema      any              `json:"schema,omitempty"`
	Outline     string           `json:"outline,omitempty"`
	Unresolved  []unresolvedInfo `json:"unresolved,omitempty"`
}

// bundle loads the document, locates the operation and resolves it.
func (in operationInput) bundle(ctx context.Context) (*specload.Spec, *locator.Result, *generator.Bundle, error) {
	spec, err := in.Spec.load(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	located, err := locator.New(spec.Doc, locator.WithLogger(logger)).Locate(locatorTarget(in.Target, in.Method))
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := generator.BuildBundle(ctx, spec.Doc, located, spec.Location, cfg.Resolver(spec.Fetcher, logger))
	if err != nil {
		return nil, nil, nil, err
	}
	return spec, located, b, nil
}

func unresolvedList(b *generator.Bundle) []unresolvedInfo {
	out := makeSlice[unresolvedInfo](len(b.Report.Failures))
	for _, f := range b.Report.Failures {
		out = append(out, unresolvedInfo{Ref: f.Ref, Reason: f.Reason})
	}
	return out
}

func handleRequest(ctx context.Context, _ *mcp.CallToolRequest, input operationInput) (*mcp.CallToolResult, requestOutput, error) {
	spec, located, b, err := input.bundle(ctx)
	if err != nil {
		return errResult(err), requestOutput{}, nil
	}

	output := requestOutput{
		Method:      b.Method,
		Path:        b.OriginalPath,
		OperationID: b.Operation.OperationID,
		BaseURL:     generator.BaseURL(spec.Doc, located, spec.Location),
		Skipped:     b.SkippedParameters,
		Unresolved:  unresolvedList(b),
	}
	output.Parameters = makeSlice[parameterInfo](len(b.Parameters))
	for _, p := range b.Parameters {
		output.Parameters = append(output.Parameters, parameterInfo{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required,
			Description: p.Description,
			Schema:      p.Schema,
		})
	}
	if body := b.RequestBody; body != nil {
		output.Body = &bodyInfo{
			ContentType: body.ContentType,
			Required:    body.Required,
			Schema:      body.Schema,
		}
	}
	return nil, output, nil
}

func handleResponse(ctx context.Context, _ *mcp.CallToolRequest, input operationInput) (*mcp.CallToolResult, responseOutput, error) {
	_, _, b, err := input.bundle(ctx)
	if err != nil {
		return errResult(err), responseOutput{}, nil
	}

	output := responseOutput{
		Method:     b.Method,
		Path:       b.OriginalPath,
		Unresolved: unresolvedList(b),
	}
	if resp := b.Response; resp != nil {
		output.Status = resp.Status
		output.Description = resp.Description
		output.ContentType = resp.ContentType
		output.Schema = resp.Schema
		if resp.Schema != nil {
			output.Outline = translator.Render(schema.FromValue(resp.Schema), 0)
		}
	}
	return nil, output, nil
}
