package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/internal/httputil"
	"github.com/erraggy/oapistub/internal/testutil"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

func bundleFor(t *testing.T, doc *parser.Document, target locator.Target) *Bundle {
	t.Helper()
	located, err := locator.Locate(doc, target)
	require.NoError(t, err)
	b, err := BuildBundle(context.Background(), doc, located, "", nil)
	require.NoError(t, err)
	return b
}

func paramNames(params []Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.In + ":" + p.Name
	}
	return names
}

func TestBuildBundleGetUser(t *testing.T) {
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	b := bundleFor(t, doc, locator.Target{OperationID: "getUser"})

	assert.Equal(t, "/users/{id}", b.OriginalPath)
	assert.Equal(t, "GET", b.Method)
	assert.Equal(t, []string{"header:X-Trace-Id", "path:id", "query:expand"}, paramNames(b.Parameters))
	assert.Len(t, b.ParametersIn("query"), 1)
	assert.Nil(t, b.RequestBody)

	require.NotNil(t, b.Response)
	assert.Equal(t, "200", b.Response.Status)
	assert.Equal(t, httputil.MediaJSON, b.Response.Kind)
	userSchema, ok := parser.AsObject(b.Response.Schema)
	require.True(t, ok, "response schema must be expanded")
	assert.Equal(t, []string{"id", "name", "email", "manager"}, userSchema.Object("properties").Keys())

	// User.manager points back at User
	require.Len(t, b.Report.Failures, 1)
	assert.Equal(t, resolver.ReasonCircular, b.Report.Failures[0].Reason)
	assert.Equal(t, "GET /users/{id}", b.String())
}

func TestBuildBundleRequestBodyRef(t *testing.T) {
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	b := bundleFor(t, doc, locator.Target{OperationID: "createPet"})

	require.NotNil(t, b.RequestBody)
	assert.True(t, b.RequestBody.Required)
	assert.Equal(t, "application/json", b.RequestBody.ContentType)
	pet, ok := parser.AsObject(b.RequestBody.Schema)
	require.True(t, ok)
	assert.Equal(t, "object", pet.String("type"))
	assert.False(t, pet.Has("$ref"))
	assert.Equal(t, "201", b.Response.Status)
	assert.True(t, b.Report.OK())

	// the source document is untouched
	raw := doc.Raw.Object("paths").Object("/pets").Object("post").Object("requestBody").
		Object("content").Object("application/json").Object("schema")
	assert.Equal(t, "#/components/schemas/Pet", raw.String("$ref"))
}

func TestBuildBundleMultipartAndText(t *testing.T) {
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	b := bundleFor(t, doc, locator.Target{OperationID: "uploadPhoto"})

	require.NotNil(t, b.RequestBody)
	assert.Equal(t, httputil.MediaMultipart, b.RequestBody.Kind)
	assert.False(t, b.RequestBody.Required)
	assert.Equal(t, httputil.MediaText, b.Response.Kind)
	assert.Nil(t, b.Response.Schema, "only JSON content carries a typed schema")
}

const overrideYAML = `openapi: 3.0.3
info: {title: Override, version: "1"}
paths:
  /items/{id}:
    parameters:
      - name: id
        in: path
        required: true
        description: path-level
        schema: {type: string}
      - name: verbose
        in: query
        schema: {type: boolean}
      - $ref: '#/components/parameters/Missing'
    get:
      operationId: getItem
      parameters:
        - name: id
          in: path
          required: true
          description: operation-level
          schema: {type: integer}
        - name: id
          in: query
          schema: {type: string}
      responses:
        default:
          description: anything
components:
  parameters: {}
`

func TestBuildBundleParameterMerge(t *testing.T) {
	doc := testutil.ParseYAML(t, overrideYAML)
	b := bundleFor(t, doc, locator.Target{OperationID: "getItem"})

	assert.Equal(t, []string{"path:id", "query:verbose", "query:id"}, paramNames(b.Parameters))
	assert.Equal(t, "operation-level", b.Parameters[0].Description)
	assert.Equal(t, []string{"#/components/parameters/Missing"}, b.SkippedParameters)

	require.NotNil(t, b.Response)
	assert.Equal(t, "default", b.Response.Status)
	assert.Empty(t, b.Response.ContentType)
}

const swaggerBodyYAML = `swagger: "2.0"
info: {title: Legacy, version: "1"}
consumes: [application/json]
paths:
  /things:
    post:
      operationId: createThing
      parameters:
        - name: payload
          in: body
          required: true
          schema:
            type: object
            properties:
              name: {type: string}
      responses:
        "200":
          description: ok
          schema:
            type: object
            properties:
              id: {type: integer}
  /upload:
    post:
      operationId: upload
      parameters:
        - name: file
          in: formData
          type: file
          required: true
        - name: note
          in: formData
          type: string
      responses:
        "204":
          description: done
`

func TestBuildBundleSwaggerParameters(t *testing.T) {
	doc := testutil.ParseYAML(t, swaggerBodyYAML)

	b := bundleFor(t, doc, locator.Target{OperationID: "createThing"})
	require.NotNil(t, b.RequestBody)
	assert.Equal(t, "application/json", b.RequestBody.ContentType)
	assert.True(t, b.RequestBody.Required)
	require.NotNil(t, b.Response)
	assert.Equal(t, httputil.MediaJSON, b.Response.Kind)
	assert.NotNil(t, b.Response.Schema)

	up := bundleFor(t, doc, locator.Target{OperationID: "upload"})
	require.NotNil(t, up.RequestBody)
	assert.Equal(t, "multipart/form-data", up.RequestBody.ContentType)
	form, ok := parser.AsObject(up.RequestBody.Schema)
	require.True(t, ok)
	assert.Equal(t, []string{"file", "note"}, form.Object("properties").Keys())
	assert.Equal(t, []any{"file"}, form.Slice("required"))
}

func TestBuildBundleErrors(t *testing.T) {
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	ctx := context.Background()

	_, err := BuildBundle(ctx, nil, &locator.Result{}, "", nil)
	assert.ErrorIs(t, err, oaserrors.ErrGeneration)

	_, err = BuildBundle(ctx, doc, nil, "", nil)
	assert.ErrorIs(t, err, oaserrors.ErrGeneration)

	located, err := locator.Locate(doc, locator.Target{OperationID: "getUser"})
	require.NoError(t, err)
	_, err = BuildBundle(ctx, doc, located, "", resolver.New(resolver.WithPolicy(resolver.PolicyFailFast)))
	assert.ErrorIs(t, err, oaserrors.ErrGeneration)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}
