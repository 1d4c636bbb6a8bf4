package parser

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/erraggy/oapistub/oaserrors"
	"go.yaml.in/yaml/v4"
)

// maxAliasDepth bounds alias expansion so documents with self-referencing
// anchors cannot recurse forever.
const maxAliasDepth = 64

// Alias fan-out limits, matching the ratios yaml v4 enforces when decoding
// into Go values: small documents may be mostly aliases, large ones may not.
const (
	aliasRatioSmallDoc = 400_000
	aliasRatioLargeDoc = 4_000_000
)

// SourceFormat represents the format of the source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// DetectFormat guesses the format from the first non-space byte.
func DetectFormat(data []byte) SourceFormat {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	// JSON objects/arrays start with { or [
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// DecodeValue decodes YAML or JSON bytes into a raw value tree.
//
// Mappings become *Object (declaration order preserved), sequences become
// []any and scalars become nil, bool, int, float64 or string. The YAML decoder
// handles JSON input as well. Documents whose aliases expand far beyond their
// own size are rejected with a *oaserrors.ParseError.
func DecodeValue(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		pe := &oaserrors.ParseError{Message: "invalid YAML or JSON", Cause: err}
		return nil, pe
	}
	if root.Kind == 0 {
		return nil, nil
	}
	var d decoder
	return d.value(&root)
}

// decoder expands a node tree, counting the values it produces.
type decoder struct {
	values     int
	aliased    int
	aliasDepth int
}

// allowedAliasRatio is the share of values that may come from alias
// expansion once values have been produced.
func allowedAliasRatio(values int) float64 {
	switch {
	case values <= aliasRatioSmallDoc:
		return 0.99
	case values >= aliasRatioLargeDoc:
		return 0.10
	}
	return 0.99 - 0.89*(float64(values-aliasRatioSmallDoc)/(aliasRatioLargeDoc-aliasRatioSmallDoc))
}

// count records one produced value and fails when aliases dominate.
func (d *decoder) count(n *yaml.Node) error {
	d.values++
	if d.aliasDepth > 0 {
		d.aliased++
	}
	if d.aliased > 100 && d.values > 1000 &&
		float64(d.aliased)/float64(d.values) > allowedAliasRatio(d.values) {
		return &oaserrors.ParseError{
			Line:    n.Line,
			Column:  n.Column,
			Message: "document contains excessive aliasing",
		}
	}
	return nil
}

func (d *decoder) value(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])

	case yaml.AliasNode:
		if d.aliasDepth >= maxAliasDepth || n.Alias == nil {
			return nil, &oaserrors.ParseError{
				Line:    n.Line,
				Column:  n.Column,
				Message: "alias nesting too deep or dangling alias",
			}
		}
		d.aliasDepth++
		defer func() { d.aliasDepth-- }()
		return d.value(n.Alias)
	}

	if err := d.count(n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.MappingNode:
		obj := NewObject(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.ShortTag() == "!!merge" {
				if err := d.merge(obj, valNode); err != nil {
					return nil, err
				}
				continue
			}
			val, err := d.value(valNode)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := d.value(item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	case yaml.ScalarNode:
		return scalarValue(n), nil
	}

	return nil, &oaserrors.ParseError{
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf("unsupported YAML node kind %d", n.Kind),
	}
}

// merge applies a YAML merge key ("<<: *base") without overriding keys
// already set explicitly.
func (d *decoder) merge(obj *Object, src *yaml.Node) error {
	val, err := d.value(src)
	if err != nil {
		return err
	}
	sources := []any{val}
	if list, ok := val.([]any); ok {
		sources = list
	}
	for _, s := range sources {
		m, ok := AsObject(s)
		if !ok {
			continue
		}
		for k, v := range m.All() {
			if !obj.Has(k) {
				obj.Set(k, v)
			}
		}
	}
	return nil
}

func scalarValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.Atoi(n.Value); err == nil {
			return i
		}
		var i int
		if err := n.Decode(&i); err == nil {
			return i
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	// strings, timestamps and anything unrecognized keep their source text
	return n.Value
}
