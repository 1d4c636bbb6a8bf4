package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	root := decode(t, `
paths:
  /users/{id}:
    get: {operationId: getUser}
  a~b: tilde
list: [zero, one]
`)

	tests := []struct {
		pointer string
		want    any
	}{
		{"/paths/~1users~1{id}/get/operationId", "getUser"},
		{"/paths/~1users~1%7Bid%7D/get/operationId", "getUser"},
		{"/paths/a~0b", "tilde"},
		{"/list/1", "one"},
	}
	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			got, err := Lookup(root, tt.pointer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := Lookup(root, "")
	require.NoError(t, err)
	assert.Same(t, obj(t, root), obj(t, got))

	for _, bad := range []string{"paths", "/missing", "/list/2", "/list/-1", "/list/x", "/paths/a~0b/deeper"} {
		_, err := Lookup(root, bad)
		assert.Error(t, err, bad)
	}
}

func TestResolveDocument(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://example.com/api/openapi.yaml", "common.yaml", "https://example.com/api/common.yaml"},
		{"https://example.com/api/openapi.yaml", "../shared/x.json", "https://example.com/shared/x.json"},
		{"https://example.com/api/openapi.yaml", "https://other.com/y.yaml", "https://other.com/y.yaml"},
		{"/specs/openapi.yaml", "common.yaml", "/specs/common.yaml"},
		{"/specs/openapi.yaml", "./sub/common.yaml", "/specs/sub/common.yaml"},
		{"/specs/openapi.yaml", "/abs/common.yaml", "/abs/common.yaml"},
		{"", "common.yaml", "common.yaml"},
	}
	for _, tt := range tests {
		got, err := resolveDocument(tt.base, tt.ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s + %s", tt.base, tt.ref)
	}
}
