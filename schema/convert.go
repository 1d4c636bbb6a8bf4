package schema

import (
	"fmt"
	"slices"

	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

// FromValue converts a decoded (normally resolved) schema value to a Node.
//
// Missing types are inferred: properties or additionalProperties imply an
// object, items an array, and enum the type of its first value. OpenAPI 3.1
// type arrays such as ["string", "null"] use the first non-null entry and set
// Nullable. Unresolved markers and anything else that cannot be described
// become *Unknown.
func FromValue(v any) Node {
	switch t := v.(type) {
	case nil:
		return &Unknown{Reason: "missing schema"}
	case *resolver.Unresolved:
		return &Unknown{Reason: fmt.Sprintf("unresolved reference %s (%s)", t.Ref, t.Reason)}
	case bool:
		// true allows anything; false allows nothing, which no type can express either
		if t {
			return &Unknown{}
		}
		return &Unknown{Reason: "schema false"}
	case *parser.Object:
		return fromObject(t)
	default:
		return &Unknown{Reason: fmt.Sprintf("schema is %T, not an object", v)}
	}
}

func fromObject(o *parser.Object) Node {
	if ref := o.String("$ref"); ref != "" {
		return &Ref{Pointer: ref}
	}

	meta := Meta{
		Description: o.String("description"),
		Nullable:    o.Bool("nullable") || o.Bool("x-nullable"),
		Deprecated:  o.Bool("deprecated"),
	}
	if d, ok := o.Get("default"); ok {
		meta.Default = d
	}

	for _, kind := range []CompositeKind{OneOf, AnyOf, AllOf} {
		members := o.Slice(string(kind))
		if len(members) == 0 {
			continue
		}
		c := &Composite{Kind: kind}
		for _, m := range members {
			c.Members = append(c.Members, FromValue(m))
		}
		rest := withoutComposites(o)
		if !hasShape(rest) {
			c.Meta = meta
			return c
		}
		// local structure next to the combinator applies on top of it
		if kind == AllOf {
			c.Meta = meta
			c.Members = append(c.Members, fromObject(rest))
			return c
		}
		return &Composite{Meta: meta, Kind: AllOf, Members: []Node{fromObject(rest), c}}
	}

	typ, nullable := schemaType(o)
	meta.Nullable = meta.Nullable || nullable

	switch typ {
	case "object":
		return objectNode(o, meta)
	case "array":
		a := &Array{Meta: meta}
		if items, ok := o.Get("items"); ok {
			a.Items = FromValue(items)
		} else {
			a.Items = &Unknown{}
		}
		return a
	case "string", "integer", "number", "boolean", "null":
		p := &Primitive{Meta: meta, Type: typ, Format: o.String("format")}
		if enum := o.Slice("enum"); len(enum) > 0 {
			p.Enum = slices.Clone(enum)
		}
		return p
	case "file":
		// Swagger 2.0 form upload
		return &Primitive{Meta: meta, Type: "string", Format: "binary"}
	case "":
		return &Unknown{Meta: meta}
	default:
		return &Unknown{Meta: meta, Reason: fmt.Sprintf("unsupported type %q", typ)}
	}
}

// schemaType returns the declared or inferred type and whether null is allowed.
func schemaType(o *parser.Object) (string, bool) {
	raw, _ := o.Get("type")
	switch t := raw.(type) {
	case string:
		return t, false
	case []any:
		var (
			typ      string
			nullable bool
		)
		for _, entry := range t {
			s, _ := entry.(string)
			if s == "null" {
				nullable = true
				continue
			}
			if typ == "" {
				typ = s
			}
		}
		if typ == "" && nullable {
			typ = "null"
		}
		return typ, nullable
	}

	switch {
	case o.Has("properties") || o.Has("additionalProperties"):
		return "object", false
	case o.Has("items"):
		return "array", false
	}
	if enum := o.Slice("enum"); len(enum) > 0 {
		return literalType(enum[0]), false
	}
	return "", false
}

func literalType(v any) string {
	switch v.(type) {
	case int:
		return "integer"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "string"
	}
}

func objectNode(o *parser.Object, meta Meta) *Object {
	required := make(map[string]bool)
	for _, r := range o.Slice("required") {
		if s, ok := r.(string); ok {
			required[s] = true
		}
	}

	obj := &Object{Meta: meta}
	for name, prop := range o.Object("properties").All() {
		obj.Properties = append(obj.Properties, Property{
			Name:     name,
			Node:     FromValue(prop),
			Required: required[name],
		})
	}

	switch ap := mustGet(o, "additionalProperties").(type) {
	case bool:
		if ap {
			obj.AdditionalProperties = &Unknown{}
		}
	case *parser.Object, *resolver.Unresolved:
		obj.AdditionalProperties = FromValue(ap)
	}
	return obj
}

func mustGet(o *parser.Object, key string) any {
	v, _ := o.Get(key)
	return v
}

func withoutComposites(o *parser.Object) *parser.Object {
	rest := o.Clone()
	for _, kind := range []CompositeKind{OneOf, AnyOf, AllOf} {
		rest.Delete(string(kind))
	}
	return rest
}

// hasShape reports whether o declares structure beyond a bare type.
func hasShape(o *parser.Object) bool {
	for _, key := range []string{"properties", "additionalProperties", "items", "enum"} {
		if o.Has(key) {
			return true
		}
	}
	return false
}
