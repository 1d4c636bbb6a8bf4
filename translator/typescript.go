package translator

import (
	"strconv"
	"strings"

	"github.com/erraggy/oapistub/internal/naming"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/schema"
)

const tsIndent = "  "

func (r *Renderer) tsType(n schema.Node, indent int) string {
	var out string
	switch t := n.(type) {
	case *schema.Primitive:
		out = tsPrimitive(t)
	case *schema.Object:
		out = r.tsObject(t, indent)
	case *schema.Array:
		done := r.push("items")
		out = "Array<" + r.tsType(t.Items, indent) + ">"
		done()
	case *schema.Composite:
		out = r.tsComposite(t, indent)
	default:
		r.degraded(n)
		return "unknown"
	}
	if m := schema.MetaOf(n); m != nil && m.Nullable {
		if p, ok := n.(*schema.Primitive); !ok || p.Type != "null" {
			out += " | null"
		}
	}
	return out
}

func tsPrimitive(p *schema.Primitive) string {
	if len(p.Enum) > 0 {
		lits := make([]string, 0, len(p.Enum))
		for _, v := range p.Enum {
			lits = append(lits, tsLiteral(v))
		}
		return strings.Join(lits, " | ")
	}
	var base string
	switch p.Type {
	case "integer", "number":
		base = "number"
	case "boolean":
		base = "boolean"
	case "null":
		base = "null"
	default:
		base = "string"
	}
	if p.Format != "" {
		base += " /* " + strings.ReplaceAll(p.Format, "*/", "* /") + " */"
	}
	return base
}

func tsLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return naming.QuoteJS(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case *parser.Object, []any:
		return literalText(t)
	default:
		return naming.QuoteJS(parser.FormatScalar(t))
	}
}

func (r *Renderer) tsObject(o *schema.Object, indent int) string {
	if len(o.Properties) == 0 {
		value := "unknown"
		if o.AdditionalProperties != nil {
			done := r.push("additionalProperties")
			value = r.tsType(o.AdditionalProperties, indent+1)
			done()
		}
		return "{ [key: string]: " + value + " }"
	}

	var b strings.Builder
	inner := pad(tsIndent, indent+1)
	b.WriteString("{\n")
	for _, p := range o.Properties {
		if m := schema.MetaOf(p.Node); m != nil && (m.Description != "" || m.Deprecated) {
			b.WriteString(inner)
			b.WriteString(tsDocComment(m))
			b.WriteByte('\n')
		}
		b.WriteString(inner)
		b.WriteString(naming.JSPropertyKey(p.Name))
		if !p.Required {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		done := r.push(p.Name)
		b.WriteString(r.tsType(p.Node, indent+1))
		done()
		b.WriteString(";\n")
	}
	if o.AdditionalProperties != nil {
		// an index signature must admit every declared property type
		b.WriteString(inner)
		b.WriteString("[key: string]: unknown;\n")
	}
	b.WriteString(pad(tsIndent, indent))
	b.WriteByte('}')
	return b.String()
}

func tsDocComment(m *schema.Meta) string {
	text := strings.ReplaceAll(firstLine(m.Description), "*/", "* /")
	if m.Deprecated {
		if text != "" {
			text += " "
		}
		text += "@deprecated"
	}
	return "/** " + text + " */"
}

func (r *Renderer) tsComposite(c *schema.Composite, indent int) string {
	if len(c.Members) == 0 {
		return "unknown"
	}
	sep := " | "
	if c.Kind == schema.AllOf {
		sep = " & "
	}
	parts := make([]string, 0, len(c.Members))
	for i, m := range c.Members {
		done := r.pushMember(c.Kind, i)
		s := r.tsType(m, indent)
		done()
		if len(c.Members) > 1 && isUnion(m) {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep)
}
