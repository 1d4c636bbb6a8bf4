// Package generator emits self-contained client stubs for single OpenAPI
// operations.
//
// A stub is one source file with a request type (headers, query, path and
// body), a response type (status, headers and body) and one function that
// performs the call: it substitutes path parameters, builds the query string,
// merges headers, encodes the body by its declared media type and decodes the
// response.
//
// # Languages
//
//   - LanguageTypeScript (default): an ES module with RequestType,
//     ResponseType and a default-exported async function using fetch
//   - LanguageJavaScript: the same module without types or annotations
//   - LanguageGo: a Go file using only the standard library, formatted with
//     golang.org/x/tools/imports
//
// # Usage
//
//	doc, err := parser.ParseFile("openapi.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := generator.Generate(ctx,
//	    generator.WithDocument(doc),
//	    generator.WithTarget(locator.Target{OperationID: "getUser"}),
//	    generator.WithSpecLocation("https://api.example.com/openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Source())
//
// # Resolution
//
// Generate locates the operation (see package locator), merges path-level and
// operation-level parameters, and expands every $ref in parameters, request
// body and responses with package resolver before rendering types with
// package translator. The response body type comes from the JSON content of
// the "200" response, else the first 2xx response, else "default".
//
// References that cannot be resolved do not fail generation; the affected
// types become unknown (TypeScript) or any (Go) and a warning is recorded in
// GenerateResult.Issues. Use resolver.WithPolicy(resolver.PolicyFailFast) with
// WithResolver to turn them into errors instead.
//
// # Base URL
//
// The base URL comes from the operation's servers, else the path item's, else
// the document's. Server variables take their defaults and relative URLs are
// resolved against WithSpecLocation. Swagger 2.0 documents use schemes, host
// and basePath.
package generator
