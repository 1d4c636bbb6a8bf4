// Package oaserrors provides structured error types for oapistub.
//
// Import path: github.com/erraggy/oapistub/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell a missing operation apart from a broken document or a
// failed remote reference.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures
//   - [DocumentError]: documents missing required root fields
//   - [OperationNotFoundError]: no operation matched a path or operationId
//   - [ReferenceError]: $ref resolution failures, including circular references
//   - [ResourceLimitError]: depth and size limits
//   - [ConversionError]: Swagger 2.0 conversion failures
//   - [GenerationError]: stub generation could not start
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrDocumentInvalid]: Matches any [DocumentError]
//   - [ErrOperationNotFound]: Matches any [OperationNotFoundError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConversion]: Matches any [ConversionError]
//   - [ErrGeneration]: Matches any [GenerationError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	res, err := locator.Locate(doc, locator.Target{Path: "/users/42"})
//	var nf *oaserrors.OperationNotFoundError
//	if errors.As(err, &nf) {
//	    fmt.Println(nf.Diagnostic())
//	}
//
// Reference failures are usually recovered per branch by the resolver and only
// surface as errors when the fail-fast policy is selected:
//
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // a $ref chain looped back on itself
//	}
package oaserrors
