package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oapistub/generator"
	"github.com/erraggy/oapistub/internal/pathutil"
)

type generateInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The document containing the operation"`
	Target       string    `json:"target"                  jsonschema:"operationId, path template or concrete path"`
	Method       string    `json:"method,omitempty"        jsonschema:"HTTP method; required to pick a non-GET operation by path"`
	Language     string    `json:"language,omitempty"      jsonschema:"ts (default), js or go"`
	PackageName  string    `json:"package_name,omitempty"  jsonschema:"Go package name for generated code (default: client)"`
	FunctionName string    `json:"function_name,omitempty" jsonschema:"Name of the generated function (default: derived from the operationId)"`
	OutputDir    string    `json:"output_dir,omitempty"    jsonschema:"Directory to write the generated file to; the source is returned inline when empty"`
}

type generateOutput struct {
	Success      bool     `json:"success"`
	FileName     string   `json:"file_name"`
	Language     string   `json:"language"`
	FunctionName string   `json:"function_name"`
	BaseURL      string   `json:"base_url,omitempty"`
	OutputDir    string   `json:"output_dir,omitempty"`
	Source       string   `json:"source,omitempty"`
	WarningCount int      `json:"warning_count"`
	Issues       []string `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	lang, err := generator.ParseLanguage(input.Language)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	spec, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithDocument(spec.Doc),
		generator.WithTarget(locatorTarget(input.Target, input.Method)),
		generator.WithSpecLocation(spec.Location),
		generator.WithLanguage(lang),
		generator.WithFunctionName(input.FunctionName),
		generator.WithResolver(cfg.Resolver(spec.Fetcher, logger)),
		generator.WithLogger(logger),
	}
	if input.PackageName != "" {
		opts = append(opts, generator.WithPackageName(input.PackageName))
	}

	result, err := generator.Generate(ctx, opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:      result.Success,
		FileName:     result.Files[0].Name,
		Language:     result.Language.String(),
		FunctionName: result.FunctionName,
		BaseURL:      result.BaseURL,
		WarningCount: result.WarningCount,
	}
	output.Issues = makeSlice[string](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issue.String())
	}

	if input.OutputDir == "" {
		output.Source = result.Source()
		return nil, output, nil
	}
	dir, err := pathutil.SanitizeOutputDir(input.OutputDir)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if err := result.WriteFiles(dir); err != nil {
		return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
	}
	output.OutputDir = dir
	return nil, output, nil
}
