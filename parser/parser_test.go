package parser

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/oaserrors"
)

func TestParseWithOptionsSources(t *testing.T) {
	ctx := context.Background()

	_, err := ParseWithOptions(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = ParseWithOptions(ctx, WithBytes([]byte(testDoc)), WithReader(strings.NewReader(testDoc)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = ParseWithOptions(ctx, WithReader(nil))
	require.Error(t, err)

	doc, err := ParseWithOptions(ctx,
		WithReader(bytes.NewBufferString(testDoc)),
		WithSourceName("stdin"),
		WithValidation(true),
		WithLogger(NopLogger{}),
	)
	require.NoError(t, err)
	assert.Equal(t, "stdin", doc.SourcePath)
	assert.Equal(t, int64(len(testDoc)), doc.SourceSize)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.0","paths":{"/a":{"get":{}}}}`), 0o600))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, SourceFormatJSON, doc.SourceFormat)
	assert.Equal(t, []string{"/a"}, doc.Paths.Templates())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseValidationFailure(t *testing.T) {
	_, err := ParseWithOptions(context.Background(), WithBytes([]byte("info: {}\n")), WithValidation(true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDocumentInvalid))
}

func TestParseInvalidYAMLCarriesSource(t *testing.T) {
	_, err := ParseWithOptions(context.Background(), WithBytes([]byte("a: [")), WithSourceName("broken.yaml"))
	require.Error(t, err)
	var pe *oaserrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "broken.yaml", pe.Path)
}

func TestParseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDoc))
	}))
	defer srv.Close()

	doc, err := ParseURL(context.Background(), srv.URL+"/openapi.yaml", nil)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/openapi.yaml", doc.SourcePath)
	assert.Equal(t, "Things", doc.Info.Title)
}

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "", FormatScalar(nil))
	assert.Equal(t, "true", FormatScalar(true))
	assert.Equal(t, "12", FormatScalar(12))
	assert.Equal(t, "1.5", FormatScalar(1.5))
	assert.Equal(t, "x", FormatScalar("x"))
}
