package parser

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"

	"go.yaml.in/yaml/v4"
)

// Object is a JSON object that remembers the order its keys were declared in.
//
// Decoded documents use *Object for every mapping so that property order
// survives into generated types. The zero value is not usable; create one with
// NewObject.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object sized for capacity keys.
func NewObject(capacity int) *Object {
	if capacity < 0 {
		capacity = 0
	}
	return &Object{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Delete removes key, preserving the order of the remaining keys.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
}

// Keys returns a copy of the keys in declaration order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// All iterates key/value pairs in declaration order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := NewObject(len(o.keys))
	for _, k := range o.keys {
		c.Set(k, o.values[k])
	}
	return c
}

// String returns the value under key when it is a string.
func (o *Object) String(key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

// Bool returns the value under key when it is a bool.
func (o *Object) Bool(key string) bool {
	v, _ := o.Get(key)
	b, _ := v.(bool)
	return b
}

// Object returns the value under key when it is an *Object.
func (o *Object) Object(key string) *Object {
	v, _ := o.Get(key)
	m, _ := v.(*Object)
	return m
}

// Slice returns the value under key when it is a []any.
func (o *Object) Slice(key string) []any {
	v, _ := o.Get(key)
	s, _ := v.([]any)
	return s
}

// MarshalJSON writes keys in declaration order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML produces a mapping node with keys in declaration order.
func (o *Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if o == nil {
		return node, nil
	}
	for _, k := range o.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(o.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// AsObject returns v as an *Object when it is one.
func AsObject(v any) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok && o != nil
}

// DeepCopy returns a copy of a raw value where every *Object and []any is new.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return t
		}
		c := NewObject(t.Len())
		for k, val := range t.All() {
			c.Set(k, DeepCopy(val))
		}
		return c
	case []any:
		c := make([]any, len(t))
		for i, val := range t {
			c[i] = DeepCopy(val)
		}
		return c
	default:
		return v
	}
}
