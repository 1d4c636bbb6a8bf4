package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestObjectSetDelete(t *testing.T) {
	o := NewObject(0)
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3)
	assert.Equal(t, []string{"b", "a"}, o.Keys())
	v, _ := o.Get("b")
	assert.Equal(t, 3, v)

	o.Delete("b")
	o.Delete("missing")
	assert.Equal(t, []string{"a"}, o.Keys())
	assert.Equal(t, 1, o.Len())

	var nilObj *Object
	assert.Equal(t, 0, nilObj.Len())
	assert.False(t, nilObj.Has("a"))
	assert.Empty(t, nilObj.String("a"))
}

func TestObjectMarshal(t *testing.T) {
	o := NewObject(2)
	o.Set("z", "last")
	inner := NewObject(1)
	inner.Set("k", []any{1, 2})
	o.Set("a", inner)

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last","a":{"k":[1,2]}}`, string(data))

	out, err := yaml.Marshal(o)
	require.NoError(t, err)
	back, err := DecodeValue(out)
	require.NoError(t, err)
	backObj, _ := AsObject(back)
	assert.Equal(t, []string{"z", "a"}, backObj.Keys())
	assert.Equal(t, []any{1, 2}, backObj.Object("a").Slice("k"))
}

func TestDeepCopy(t *testing.T) {
	inner := NewObject(1)
	inner.Set("x", 1)
	o := NewObject(1)
	o.Set("inner", inner)
	o.Set("list", []any{inner})

	c, ok := AsObject(DeepCopy(o))
	require.True(t, ok)
	c.Object("inner").Set("x", 2)
	c.Slice("list")[0].(*Object).Set("y", 3)

	x, _ := inner.Get("x")
	assert.Equal(t, 1, x)
	assert.False(t, inner.Has("y"))
}

func TestObjectClone(t *testing.T) {
	o := NewObject(1)
	o.Set("a", 1)
	c := o.Clone()
	c.Set("b", 2)
	assert.Equal(t, []string{"a"}, o.Keys())
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}
