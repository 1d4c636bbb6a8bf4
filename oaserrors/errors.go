package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Every typed error below matches exactly one of
// them, except ReferenceError, which also matches ErrCircularReference for
// cycles.
var (
	ErrParse             = errors.New("parse error")
	ErrDocumentInvalid   = errors.New("document invalid")
	ErrOperationNotFound = errors.New("operation not found")
	ErrReference         = errors.New("reference error")
	ErrCircularReference = errors.New("circular reference")
	ErrResourceLimit     = errors.New("resource limit exceeded")
	ErrConversion        = errors.New("conversion error")
	ErrGeneration        = errors.New("generation error")
	ErrConfig            = errors.New("configuration error")
)

// compose renders head followed by each non-empty detail and the cause,
// separated by ": ".
func compose(head string, cause error, details ...string) string {
	var b strings.Builder
	b.WriteString(head)
	for _, d := range details {
		if d != "" {
			b.WriteString(": ")
			b.WriteString(d)
		}
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// ParseError reports YAML or JSON that could not be decoded.
type ParseError struct {
	Path    string // file path, URL or "<bytes>"
	Line    int    // 1-based, 0 when unknown
	Column  int    // 1-based, 0 when unknown
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	head := ErrParse.Error()
	if e.Path != "" {
		head += " in " + e.Path
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		head += fmt.Sprintf(" at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		head += fmt.Sprintf(" at line %d", e.Line)
	}
	return compose(head, e.Cause, e.Message)
}

func (e *ParseError) Unwrap() error        { return e.Cause }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// DocumentError reports a document that lacks the root fields needed to
// locate operations (for example a missing paths object).
type DocumentError struct {
	// Source identifies the document (file path or URL)
	Source string
	// Field is the missing or malformed root field
	Field string
	// Message describes the problem
	Message string
}

func (e *DocumentError) Error() string {
	head := ErrDocumentInvalid.Error()
	if e.Source != "" {
		head += " (" + e.Source + ")"
	}
	return compose(head, nil, e.Field, e.Message)
}

func (e *DocumentError) Is(target error) bool { return target == ErrDocumentInvalid }

// OperationNotFoundError is returned when the locator exhausts every matching
// strategy. It carries the known operationIds and path templates so callers
// can show what would have matched.
type OperationNotFoundError struct {
	// Target is the path or operationId that was requested
	Target string
	// Method is the requested HTTP method, if any
	Method string
	// OperationIDs lists every operationId in declaration order
	OperationIDs []string
	// Paths lists every path template in declaration order
	Paths []string
}

func (e *OperationNotFoundError) Error() string {
	head := compose(ErrOperationNotFound.Error(), nil, e.Target)
	if e.Method != "" {
		head += " (" + strings.ToUpper(e.Method) + ")"
	}
	return head
}

// Diagnostic renders the bulleted list of operation ids and routes.
func (e *OperationNotFoundError) Diagnostic() string {
	var b strings.Builder
	b.WriteString("Operation wasn't found. Please specify a operation using an operationId or route\n\n")
	b.WriteString("The available IDs are:\n")
	for _, id := range e.OperationIDs {
		b.WriteString("- ")
		b.WriteString(id)
		b.WriteByte('\n')
	}
	b.WriteString("\nThe routes are:\n")
	for i, p := range e.Paths {
		b.WriteString("- ")
		b.WriteString(p)
		if i < len(e.Paths)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (e *OperationNotFoundError) Is(target error) bool { return target == ErrOperationNotFound }

// ReferenceError reports a $ref that could not be replaced by its target.
// The resolver only returns it under the fail-fast policy; otherwise the
// failure is recorded in its report.
type ReferenceError struct {
	Ref        string
	RefType    string // "local" or "remote"
	IsCircular bool
	Message    string
	Cause      error
}

func (e *ReferenceError) Error() string {
	head := ErrReference.Error()
	if e.IsCircular {
		head = ErrCircularReference.Error()
	}
	return compose(head, e.Cause, e.Ref, e.Message)
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

// Is matches ErrReference, and ErrCircularReference for cycles.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrCircularReference:
		return e.IsCircular
	}
	return false
}

// ResourceLimitError reports an exceeded bound such as "ref_depth" or
// "document_size".
type ResourceLimitError struct {
	ResourceType string
	Limit        int64
	Actual       int64 // 0 when unknown
	Message      string
}

func (e *ResourceLimitError) Error() string {
	head := compose(ErrResourceLimit.Error(), nil, e.ResourceType)
	switch {
	case e.Limit > 0 && e.Actual > 0:
		head += fmt.Sprintf(" (limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		head += fmt.Sprintf(" (limit: %d)", e.Limit)
	}
	return compose(head, nil, e.Message)
}

func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConversionError reports a Swagger 2.0 document the conversion service
// could not turn into OpenAPI 3.x.
type ConversionError struct {
	Source        string // URL sent to the service
	SourceVersion string // e.g. "2.0"
	Message       string
	Cause         error
}

func (e *ConversionError) Error() string {
	head := ErrConversion.Error()
	if e.SourceVersion != "" {
		head += " (" + e.SourceVersion + " -> 3.x)"
	}
	if e.Source != "" {
		head += " for " + e.Source
	}
	return compose(head, e.Cause, e.Message)
}

func (e *ConversionError) Unwrap() error        { return e.Cause }
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// GenerationError reports that stub generation could not start, for example
// because no document or operation was supplied. Unrepresentable schemas never
// produce this error; they degrade to an untyped value instead.
type GenerationError struct {
	// Operation identifies the operation being generated ("GET /users/{id}")
	Operation string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

func (e *GenerationError) Error() string {
	head := ErrGeneration.Error()
	if e.Operation != "" {
		head += " for " + e.Operation
	}
	return compose(head, e.Cause, e.Message)
}

func (e *GenerationError) Unwrap() error        { return e.Cause }
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// ConfigError reports an invalid option or input combination.
type ConfigError struct {
	Option  string
	Value   any // nil when not applicable
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	head := ErrConfig.Error()
	if e.Option != "" {
		head += " for " + e.Option
	}
	if e.Value != nil {
		head += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return compose(head, e.Cause, e.Message)
}

func (e *ConfigError) Unwrap() error        { return e.Cause }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
