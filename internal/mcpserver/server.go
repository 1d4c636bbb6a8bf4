// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oapistub capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oapistub"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
)

const serverInstructions = `oapistub MCP server: locates operations in OpenAPI documents, resolves their references and generates client stubs.

Every tool takes a spec (file, url or inline content). Operations are addressed by "target": an operationId, a path template such as /users/{id}, or a concrete path such as /users/42. Use "operations" first to see what a document offers.

Configuration: defaults come from OAPISTUB_* environment variables set in your MCP client config.
- OAPISTUB_FETCH_TIMEOUT (default: 10s): timeout per document or $ref fetch
- OAPISTUB_FAIL_FAST (default: false): fail on the first unresolvable $ref instead of marking it
- OAPISTUB_CONVERTER_URL: Swagger 2.0 conversion endpoint
- OAPISTUB_ALLOW_PRIVATE_IPS (default: false): allow fetching from private and loopback hosts
- OAPISTUB_CACHE_ENABLED (default: true): disable document caching entirely`

// logger receives server-side diagnostics; Run replaces it.
var logger parser.Logger = parser.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. A nil log discards diagnostics.
func Run(ctx context.Context, log *slog.Logger) error {
	if log != nil {
		logger = parser.NewSlogAdapter(log)
	}
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oapistub", Version: oapistub.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "operations",
		Description: "List the operations of an OpenAPI or Swagger document: method, path, operationId, summary. Set overview=true for a compact plain-text listing with query parameters.",
	}, handleOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "locate",
		Description: "Find the operation for a target: an exact path template, an operationId, or a concrete request path matched against the templates. Returns the declared path, method, match tier and captured path parameters. When nothing matches, the error lists every operationId and route.",
	}, handleLocate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "request",
		Description: "Describe the request of an operation with every $ref expanded: merged path and operation parameters, the request body and the base server URL. References that cannot be resolved are reported in unresolved.",
	}, handleRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "response",
		Description: "Describe the success response of an operation (200, else first 2XX, else default) with every $ref expanded. Returns the schema and a readable outline of it.",
	}, handleResponse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a self-contained client function for one operation in TypeScript (default), JavaScript or Go. Returns the source inline, or writes it to output_dir when given. Schemas that cannot be typed are emitted as unknown/any and listed in issues.",
	}, handleGenerate)
}

// locatorTarget builds the locator target for a tool's target and method
// arguments. The target doubles as the operationId candidate.
func locatorTarget(target, method string) locator.Target {
	return locator.Target{Path: target, Method: method}
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	var nf *oaserrors.OperationNotFoundError
	if errors.As(err, &nf) {
		return nf.Diagnostic()
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
