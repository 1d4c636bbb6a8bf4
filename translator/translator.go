package translator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oapistub/internal/issues"
	"github.com/erraggy/oapistub/internal/pathutil"
	"github.com/erraggy/oapistub/internal/severity"
	"github.com/erraggy/oapistub/schema"
)

// Dialect selects the target type system.
type Dialect int

const (
	// DialectTypeScript renders TypeScript type expressions
	DialectTypeScript Dialect = iota
	// DialectGo renders Go type expressions
	DialectGo
	// DialectOutline renders the structural outline used in summaries
	DialectOutline
)

// String returns the dialect name accepted by ParseDialect.
func (d Dialect) String() string {
	switch d {
	case DialectTypeScript:
		return "typescript"
	case DialectGo:
		return "go"
	case DialectOutline:
		return "outline"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect maps a name (typescript, ts, go, outline) to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "typescript", "ts":
		return DialectTypeScript, nil
	case "go", "golang":
		return DialectGo, nil
	case "outline", "text":
		return DialectOutline, nil
	default:
		return DialectTypeScript, fmt.Errorf("translator: unknown dialect %q", name)
	}
}

// Renderer renders nodes in one dialect and collects issues across calls.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	dialect Dialect
	issues  []issues.Issue
	path    pathutil.PathBuilder
}

// New returns a Renderer for dialect.
func New(dialect Dialect) *Renderer {
	return &Renderer{dialect: dialect}
}

// Render renders n in the structural outline dialect.
//
// Example:
//
//	translator.Render(node, 0) // {\n  name (Required): string,\n}
func Render(n schema.Node, indent int) string {
	return New(DialectOutline).Render(n, indent)
}

// Dialect returns the dialect the renderer was created with.
func (r *Renderer) Dialect() Dialect {
	return r.dialect
}

// Render renders n with nested lines indented relative to indent levels.
func (r *Renderer) Render(n schema.Node, indent int) string {
	return r.RenderAt("", n, indent)
}

// RenderAt renders n and reports issues under the dotted location path.
func (r *Renderer) RenderAt(path string, n schema.Node, indent int) string {
	r.path.Reset()
	if path != "" {
		r.path.Push(path)
	}
	defer r.path.Reset()

	if indent < 0 {
		indent = 0
	}
	switch r.dialect {
	case DialectGo:
		return r.goType(n, indent, false)
	case DialectOutline:
		return r.outline(n, indent)
	default:
		return r.tsType(n, indent)
	}
}

// Issues returns the issues recorded so far.
func (r *Renderer) Issues() []issues.Issue {
	out := make([]issues.Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// Reset discards recorded issues.
func (r *Renderer) Reset() {
	r.issues = nil
}

func (r *Renderer) push(segment string) func() {
	r.path.Push(segment)
	return r.path.Pop
}

// pushMember records a composite member as kind[i].
func (r *Renderer) pushMember(kind schema.CompositeKind, i int) func() {
	r.path.Push(string(kind))
	r.path.PushIndex(i)
	return func() {
		r.path.Pop()
		r.path.Pop()
	}
}

func (r *Renderer) warn(message, field, context string) {
	r.issues = append(r.issues, issues.Issue{
		Path:     r.path.String(),
		Message:  message,
		Severity: severity.SeverityWarning,
		Field:    field,
		Context:  context,
	})
}

func (r *Renderer) info(message, field string) {
	r.issues = append(r.issues, issues.Issue{
		Path:     r.path.String(),
		Message:  message,
		Severity: severity.SeverityInfo,
		Field:    field,
	})
}

// degraded records why n is rendered as the top type.
func (r *Renderer) degraded(n schema.Node) {
	switch t := n.(type) {
	case *schema.Ref:
		r.warn("reference was not expanded", "$ref", t.Pointer)
	case *schema.Unknown:
		if t.Reason != "" {
			r.warn(t.Reason, "", "")
		}
	case nil:
		r.warn("missing schema", "", "")
	}
}

func pad(unit string, indent int) string {
	return strings.Repeat(unit, indent)
}

// firstLine returns the first line of a description, trimmed.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// isUnion reports whether the rendering of n has alternatives at its top level.
func isUnion(n schema.Node) bool {
	switch t := n.(type) {
	case *schema.Composite:
		return len(t.Members) > 1 || t.Nullable
	case *schema.Primitive:
		return len(t.Enum) > 1 || (t.Nullable && t.Type != "null")
	case *schema.Unknown, *schema.Ref, nil:
		return false
	default:
		m := schema.MetaOf(n)
		return m != nil && m.Nullable
	}
}
