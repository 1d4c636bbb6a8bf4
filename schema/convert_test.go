package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

func from(t *testing.T, src string) Node {
	t.Helper()
	v, err := parser.DecodeValue([]byte(src))
	require.NoError(t, err)
	return FromValue(v)
}

func TestFromValuePrimitive(t *testing.T) {
	n := from(t, "type: string\nenum: [a, b]\nformat: custom\ndefault: a\ndescription: pick one\n")
	p, ok := n.(*Primitive)
	require.True(t, ok)
	assert.Equal(t, "string", p.Type)
	assert.Equal(t, "custom", p.Format)
	assert.Equal(t, []any{"a", "b"}, p.Enum)
	assert.Equal(t, "a", p.Default)
	assert.Equal(t, "pick one", p.Description)
}

func TestFromValueObject(t *testing.T) {
	n := from(t, `
type: object
required: [id]
properties:
  id: {type: integer, format: int64}
  tags:
    type: array
    items: {type: string}
  meta:
    additionalProperties: {type: string}
`)
	o, ok := n.(*Object)
	require.True(t, ok)
	require.Len(t, o.Properties, 3)
	assert.Equal(t, "id", o.Properties[0].Name)
	assert.True(t, o.Properties[0].Required)
	assert.False(t, o.Properties[1].Required)
	assert.Equal(t, []string{"id"}, o.Required())

	arr, ok := o.Properties[1].Node.(*Array)
	require.True(t, ok)
	assert.Equal(t, "string", arr.Items.(*Primitive).Type)

	meta, ok := o.Properties[2].Node.(*Object)
	require.True(t, ok, "additionalProperties implies object")
	assert.Equal(t, "string", meta.AdditionalProperties.(*Primitive).Type)
}

func TestFromValueInference(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"items implies array", "items: {type: string}", "array"},
		{"properties implies object", "properties: {a: {type: string}}", "object"},
		{"string enum", "enum: [x, y]", "string"},
		{"integer enum", "enum: [1, 2]", "integer"},
		{"number enum", "enum: [1.5]", "number"},
		{"boolean enum", "enum: [true]", "boolean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch n := from(t, tt.src).(type) {
			case *Array:
				assert.Equal(t, tt.want, "array")
			case *Object:
				assert.Equal(t, tt.want, "object")
			case *Primitive:
				assert.Equal(t, tt.want, n.Type)
			default:
				t.Fatalf("unexpected node %T", n)
			}
		})
	}
}

func TestFromValueNullable(t *testing.T) {
	p := from(t, `type: ["string", "null"]`).(*Primitive)
	assert.Equal(t, "string", p.Type)
	assert.True(t, p.Nullable)

	p = from(t, "type: integer\nnullable: true").(*Primitive)
	assert.True(t, p.Nullable)

	p = from(t, `type: ["null"]`).(*Primitive)
	assert.Equal(t, "null", p.Type)
}

func TestFromValueComposite(t *testing.T) {
	c := from(t, `
oneOf:
  - {type: string}
  - {type: integer}
`).(*Composite)
	assert.Equal(t, OneOf, c.Kind)
	assert.Len(t, c.Members, 2)

	c = from(t, `
allOf:
  - {type: object, properties: {a: {type: string}}}
properties:
  b: {type: integer}
`).(*Composite)
	assert.Equal(t, AllOf, c.Kind)
	require.Len(t, c.Members, 2)
	assert.Equal(t, "b", c.Members[1].(*Object).Properties[0].Name)

	// a union with local structure becomes an intersection around it
	c = from(t, `
type: object
properties:
  kind: {type: string}
anyOf:
  - {properties: {a: {type: string}}}
  - {properties: {b: {type: string}}}
`).(*Composite)
	assert.Equal(t, AllOf, c.Kind)
	require.Len(t, c.Members, 2)
	assert.Equal(t, AnyOf, c.Members[1].(*Composite).Kind)
}

func TestFromValueUnknown(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"true", true},
		{"false", false},
		{"string", "nope"},
		{"unresolved", &resolver.Unresolved{Ref: "#/x", Reason: resolver.ReasonCircular}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromValue(tt.in).(*Unknown)
			assert.True(t, ok)
		})
	}

	u := FromValue(&resolver.Unresolved{Ref: "#/x", Reason: resolver.ReasonCircular}).(*Unknown)
	assert.Equal(t, "unresolved reference #/x (circular)", u.Reason)

	u = from(t, "type: tuple").(*Unknown)
	assert.Contains(t, u.Reason, "unsupported type")

	u = from(t, "description: anything").(*Unknown)
	assert.Empty(t, u.Reason)
	assert.Equal(t, "anything", u.Description)
}

func TestFromValueRefAndFile(t *testing.T) {
	r, ok := from(t, "$ref: '#/components/schemas/Pet'").(*Ref)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Pet", r.Pointer)
	assert.Nil(t, MetaOf(r))

	p := from(t, "type: file").(*Primitive)
	assert.Equal(t, "binary", p.Format)
	assert.NotNil(t, MetaOf(p))
}
