// Package schema models resolved JSON Schema fragments as a closed set of node
// types so renderers can handle every shape exhaustively.
package schema

// Node is one of *Ref, *Primitive, *Object, *Array, *Composite or *Unknown.
type Node interface {
	node()
}

// Meta carries annotations shared by every concrete node.
type Meta struct {
	Description string
	Nullable    bool
	Deprecated  bool
	// Default is the decoded default value, nil when absent
	Default any
}

// Ref is an unexpanded $ref. Resolved values never contain one; FromValue
// produces it only when given unresolved input.
type Ref struct {
	Pointer string
}

// Primitive is a string, integer, number, boolean or null schema.
type Primitive struct {
	Meta
	// Type is one of string, integer, number, boolean, null
	Type   string
	Format string
	// Enum lists the allowed literal values in declaration order
	Enum []any
}

// Property is a named object member.
type Property struct {
	Name     string
	Node     Node
	Required bool
}

// Object is an object schema with properties in declaration order.
type Object struct {
	Meta
	Properties []Property
	// AdditionalProperties is the schema of undeclared members; nil when not allowed or unspecified
	AdditionalProperties Node
}

// Required returns the names of the required properties in declaration order.
func (o *Object) Required() []string {
	var out []string
	for _, p := range o.Properties {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// Array is an array schema.
type Array struct {
	Meta
	Items Node
}

// CompositeKind is the combinator of a Composite.
type CompositeKind string

const (
	OneOf CompositeKind = "oneOf"
	AnyOf CompositeKind = "anyOf"
	AllOf CompositeKind = "allOf"
)

// Composite combines member schemas.
type Composite struct {
	Meta
	Kind    CompositeKind
	Members []Node
}

// Unknown is a fragment that cannot be described: missing, unresolved or of
// an unsupported shape. Renderers emit their top type for it.
type Unknown struct {
	Meta
	// Reason explains why the fragment is unknown; empty for an explicit "any"
	Reason string
}

func (*Ref) node()       {}
func (*Primitive) node() {}
func (*Object) node()    {}
func (*Array) node()     {}
func (*Composite) node() {}
func (*Unknown) node()   {}

// MetaOf returns the annotations of n, or nil for *Ref.
func MetaOf(n Node) *Meta {
	switch t := n.(type) {
	case *Primitive:
		return &t.Meta
	case *Object:
		return &t.Meta
	case *Array:
		return &t.Meta
	case *Composite:
		return &t.Meta
	case *Unknown:
		return &t.Meta
	default:
		return nil
	}
}
