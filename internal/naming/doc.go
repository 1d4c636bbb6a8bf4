// Package naming turns OpenAPI names (operationIds, property and parameter
// names, which may contain any character) into identifiers and file names for
// generated TypeScript, JavaScript and Go code.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
