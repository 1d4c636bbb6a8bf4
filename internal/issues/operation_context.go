package issues

import "fmt"

// OperationContext identifies the operation an issue was raised for.
type OperationContext struct {
	// Method is the upper-case HTTP method; empty for path-level issues
	Method string
	// Path is the path template, e.g. /users/{id}
	Path string
	// OperationID is the operationId if declared
	OperationID string
}

// String renders the context in parentheses, or "" when it is empty.
func (c OperationContext) String() string {
	switch {
	case c.IsEmpty():
		return ""
	case c.OperationID != "" && c.Method != "":
		return fmt.Sprintf("(%s %s, operationId: %s)", c.Method, c.Path, c.OperationID)
	case c.OperationID != "":
		return fmt.Sprintf("(operationId: %s)", c.OperationID)
	case c.Method != "":
		return fmt.Sprintf("(%s %s)", c.Method, c.Path)
	default:
		return fmt.Sprintf("(path: %s)", c.Path)
	}
}

// IsEmpty reports whether no field is set.
func (c OperationContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.OperationID == ""
}
