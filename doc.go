// Package oapistub turns OpenAPI operations into self-contained, typed client call stubs.
//
// Given an OpenAPI document and either a literal request path or an operationId,
// oapistub finds the matching operation, dereferences every local and remote $ref
// reachable from it, and emits a module with a request type, a response type and
// a single function that performs the call.
//
// # Packages
//
//   - parser: decode YAML/JSON documents into an order-preserving tree and a typed view
//   - pathtemplate: compile path templates such as /users/{id} into matchers
//   - locator: find an operation by exact path, operationId, or template match
//   - resolver: replace $ref pointers with their targets, local and remote
//   - schema: the tagged schema node model built from resolved values
//   - translator: render schema nodes as TypeScript or Go type expressions
//   - generator: emit TypeScript, JavaScript or Go client stubs
//   - converter: convert Swagger 2.0 documents through a conversion service
//   - oaserrors: structured error types
//
// The oapistub command (cmd/oapistub) exposes locate, operations, request,
// response, generate and subset subcommands, plus an MCP server over stdio.
//
// # Quick Start
//
//	doc, err := parser.ParseFile("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := generator.Generate(ctx,
//		generator.WithDocument(doc),
//		generator.WithTarget(locator.Target{OperationID: "getUser"}),
//		generator.WithLanguage(generator.LanguageGo),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(string(result.Files[0].Content))
package oapistub
