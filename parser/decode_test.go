package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/oaserrors"
)

func TestDecodeValuePreservesOrder(t *testing.T) {
	v, err := DecodeValue([]byte("zeta: 1\nalpha: 2\nmid: 3\n"))
	require.NoError(t, err)
	obj, ok := AsObject(v)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	v, err = DecodeValue([]byte(`{"b": {"y": 1, "x": 2}, "a": [3, "s", true, null, 1.5]}`))
	require.NoError(t, err)
	obj, _ = AsObject(v)
	assert.Equal(t, []string{"b", "a"}, obj.Keys())
	assert.Equal(t, []string{"y", "x"}, obj.Object("b").Keys())
	assert.Equal(t, []any{3, "s", true, nil, 1.5}, obj.Slice("a"))
}

func TestDecodeValueScalars(t *testing.T) {
	v, err := DecodeValue([]byte("i: 42\nf: 3.0\ns: \"42\"\nb: false\nn: ~\nd: 2024-01-02\n"))
	require.NoError(t, err)
	obj, _ := AsObject(v)

	i, _ := obj.Get("i")
	assert.Equal(t, 42, i)
	f, _ := obj.Get("f")
	assert.Equal(t, 3.0, f)
	assert.Equal(t, "42", obj.String("s"))
	b, _ := obj.Get("b")
	assert.Equal(t, false, b)
	n, ok := obj.Get("n")
	assert.True(t, ok)
	assert.Nil(t, n)
	assert.Equal(t, "2024-01-02", obj.String("d"))
}

func TestDecodeValueMergeKeys(t *testing.T) {
	src := `base: &base
  type: string
  format: uuid
derived:
  <<: *base
  format: email
`
	v, err := DecodeValue([]byte(src))
	require.NoError(t, err)
	obj, _ := AsObject(v)
	derived := obj.Object("derived")
	require.NotNil(t, derived)
	assert.Equal(t, "email", derived.String("format"))
	assert.Equal(t, "string", derived.String("type"))
}

func TestDecodeValueRejectsAliasExpansionBomb(t *testing.T) {
	var b strings.Builder
	b.WriteString(`l0: &l0 ["lol", "lol", "lol", "lol", "lol", "lol", "lol", "lol", "lol", "lol"]` + "\n")
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := range 10 {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}

	start := time.Now()
	_, err := DecodeValue([]byte(b.String()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
	assert.Contains(t, err.Error(), "excessive aliasing")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestDecodeValueAllowsModerateAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString("shared: &shared {type: string, format: uuid, minLength: 1}\nproperties:\n")
	for i := range 300 {
		fmt.Fprintf(&b, "  p%d:\n    description: d\n    title: t\n    deprecated: false\n    schema: *shared\n", i)
	}

	v, err := DecodeValue([]byte(b.String()))
	require.NoError(t, err)
	obj, _ := AsObject(v)
	props := obj.Object("properties")
	require.NotNil(t, props)
	assert.Equal(t, 300, props.Len())
	assert.Equal(t, "uuid", props.Object("p299").Object("schema").String("format"))
}

func TestDecodeValueInvalid(t *testing.T) {
	_, err := DecodeValue([]byte("a: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	v, err := DecodeValue([]byte(""))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, DetectFormat([]byte("  {\"a\":1}")))
	assert.Equal(t, SourceFormatYAML, DetectFormat([]byte("a: 1")))
	assert.Equal(t, SourceFormatUnknown, DetectFormat([]byte("   ")))
}
