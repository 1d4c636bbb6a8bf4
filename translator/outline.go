package translator

import (
	"strings"

	"github.com/erraggy/oapistub/schema"
)

const outlineIndent = "  "

// outline renders the summary form:
//
//	{
//	  id (Required): integer (int64),
//	  tags: array<string>,
//	}
func (r *Renderer) outline(n schema.Node, indent int) string {
	switch t := n.(type) {
	case *schema.Object:
		if len(t.Properties) == 0 {
			return "object" + outlineAnnotations(&t.Meta)
		}
		return r.outlineObject(t, indent)
	case *schema.Array:
		done := r.push("items")
		defer done()
		out := "array<" + r.outlineName(t.Items) + ">"
		if o, ok := t.Items.(*schema.Object); ok && len(o.Properties) > 0 {
			out += " of " + r.outlineObject(o, indent)
		}
		return out
	case *schema.Primitive:
		out := t.Type
		if len(t.Enum) > 0 {
			out += " (one of: " + enumList(t.Enum) + ")"
		}
		if t.Format != "" {
			out += " (" + t.Format + ")"
		}
		return out + outlineAnnotations(&t.Meta)
	case *schema.Composite:
		sep := " | "
		if t.Kind == schema.AllOf {
			sep = " & "
		}
		parts := make([]string, 0, len(t.Members))
		for i, m := range t.Members {
			done := r.pushMember(t.Kind, i)
			parts = append(parts, r.outline(m, indent))
			done()
		}
		return string(t.Kind) + "(" + strings.Join(parts, sep) + ")" + outlineAnnotations(&t.Meta)
	default:
		r.degraded(n)
		return "any"
	}
}

func (r *Renderer) outlineObject(o *schema.Object, indent int) string {
	var b strings.Builder
	inner := pad(outlineIndent, indent+1)
	b.WriteString("{\n")
	for _, p := range o.Properties {
		b.WriteString(inner)
		b.WriteString(p.Name)
		if p.Required {
			b.WriteString(" (Required)")
		}
		b.WriteString(": ")
		if m := schema.MetaOf(p.Node); m != nil && m.Description != "" {
			b.WriteString("// ")
			b.WriteString(firstLine(m.Description))
			b.WriteByte('\n')
			b.WriteString(inner)
		}
		done := r.push(p.Name)
		b.WriteString(r.outline(p.Node, indent+1))
		done()
		b.WriteString(",\n")
	}
	b.WriteString(pad(outlineIndent, indent))
	b.WriteByte('}')
	return b.String()
}

// outlineName is the short name used inside array<...>.
func (r *Renderer) outlineName(n schema.Node) string {
	switch t := n.(type) {
	case *schema.Object:
		return "object"
	case *schema.Array:
		return "array<" + r.outlineName(t.Items) + ">"
	case *schema.Primitive:
		return t.Type
	case *schema.Composite:
		return string(t.Kind)
	default:
		r.degraded(n)
		return "any"
	}
}

func outlineAnnotations(m *schema.Meta) string {
	var out string
	if m.Nullable {
		out += " (nullable)"
	}
	if m.Deprecated {
		out += " (deprecated)"
	}
	if m.Default != nil {
		out += " = " + literalText(m.Default)
	}
	return out
}
