package translator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oapistub/internal/naming"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/schema"
)

const goIndent = "\t"

// goType renders n as a Go type. Optional (or nullable) scalars and structs
// become pointers; slices, maps and any already have a zero value meaning
// "absent".
func (r *Renderer) goType(n schema.Node, indent int, optional bool) string {
	switch t := n.(type) {
	case *schema.Primitive:
		base := goPrimitive(t)
		if (optional || t.Nullable) && pointerable(base) {
			base = "*" + base
		}
		if len(t.Enum) > 0 {
			base += " /* one of: " + enumList(t.Enum) + " */"
		}
		return base
	case *schema.Object:
		s := r.goObject(t, indent)
		if (optional || t.Nullable) && strings.HasPrefix(s, "struct") {
			s = "*" + s
		}
		return s
	case *schema.Array:
		done := r.push("items")
		defer done()
		return "[]" + r.goType(t.Items, indent, false)
	case *schema.Composite:
		if t.Kind == schema.AllOf {
			if merged, ok := mergeAllOf(t); ok {
				return r.goType(merged, indent, optional)
			}
		}
		r.info(fmt.Sprintf("%s has no Go equivalent, using any", t.Kind), string(t.Kind))
		return "any"
	default:
		r.degraded(n)
		return "any"
	}
}

func goPrimitive(p *schema.Primitive) string {
	switch p.Type {
	case "string":
		switch p.Format {
		case "date-time":
			return "time.Time"
		case "byte", "binary":
			return "[]byte"
		default:
			return "string"
		}
	case "integer":
		if p.Format == "int32" {
			return "int32"
		}
		return "int64"
	case "number":
		if p.Format == "float" {
			return "float32"
		}
		return "float64"
	case "boolean":
		return "bool"
	default:
		return "any"
	}
}

func pointerable(typ string) bool {
	return typ != "any" && !strings.HasPrefix(typ, "[]") && !strings.HasPrefix(typ, "map[")
}

func (r *Renderer) goObject(o *schema.Object, indent int) string {
	if len(o.Properties) == 0 {
		value := "any"
		if o.AdditionalProperties != nil {
			done := r.push("additionalProperties")
			value = r.goType(o.AdditionalProperties, indent, false)
			done()
		}
		return "map[string]" + value
	}
	if o.AdditionalProperties != nil {
		r.info("additionalProperties dropped next to declared properties", "additionalProperties")
	}

	names := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		names[i] = p.Name
	}
	fields := GoFieldNames(names)

	var b strings.Builder
	inner := pad(goIndent, indent+1)
	b.WriteString("struct {\n")
	for i, p := range o.Properties {
		field := fields[i]
		if m := schema.MetaOf(p.Node); m != nil && m.Description != "" {
			b.WriteString(inner)
			b.WriteString("// ")
			b.WriteString(firstLine(m.Description))
			b.WriteByte('\n')
		}
		tag := p.Name
		if !p.Required {
			tag += ",omitempty"
		}
		done := r.push(p.Name)
		typ := r.goType(p.Node, indent+1, !p.Required)
		done()
		fmt.Fprintf(&b, "%s%s %s `json:%s`\n", inner, field, typ, strconv.Quote(tag))
	}
	b.WriteString(pad(goIndent, indent))
	b.WriteByte('}')
	return b.String()
}

// GoFieldNames returns the struct field names DialectGo uses for properties
// with the given names. Names that collide after casing get a numeric suffix.
func GoFieldNames(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]int, len(names))
	for i, name := range names {
		field := naming.GoExported(name, "Field")
		if n := used[field]; n > 0 {
			used[field] = n + 1
			field += strconv.Itoa(n + 1)
		} else {
			used[field] = 1
		}
		out[i] = field
	}
	return out
}

// mergeAllOf flattens an allOf of plain objects into a single object.
func mergeAllOf(c *schema.Composite) (*schema.Object, bool) {
	merged := &schema.Object{Meta: c.Meta}
	index := make(map[string]int)
	for _, m := range c.Members {
		o, ok := m.(*schema.Object)
		if !ok {
			return nil, false
		}
		for _, p := range o.Properties {
			if i, seen := index[p.Name]; seen {
				prev := merged.Properties[i]
				prev.Required = prev.Required || p.Required
				prev.Node = p.Node
				merged.Properties[i] = prev
				continue
			}
			index[p.Name] = len(merged.Properties)
			merged.Properties = append(merged.Properties, p)
		}
		if o.AdditionalProperties != nil {
			merged.AdditionalProperties = o.AdditionalProperties
		}
	}
	return merged, true
}

func enumList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strings.ReplaceAll(literalText(v), "*/", "* /"))
	}
	return strings.Join(parts, ", ")
}

// literalText renders a decoded literal; structured values use JSON.
func literalText(v any) string {
	switch v.(type) {
	case *parser.Object, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%T", v)
		}
		return string(data)
	default:
		return parser.FormatScalar(v)
	}
}
