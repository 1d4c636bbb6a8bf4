// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/parser"
)

// PetstoreYAML is an OAS 3.0 document covering path and header parameters,
// local $refs (including a self-referencing schema), enums, a JSON request
// body, an operation without a body and a multipart upload.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://api.example.com/v1/
paths:
  /users/{id}:
    parameters:
      - $ref: '#/components/parameters/TraceID'
    get:
      operationId: getUser
      summary: Get a user
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
        - name: expand
          in: query
          schema:
            type: array
            items:
              type: string
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
    delete:
      operationId: deleteUser
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        '204':
          description: deleted
  /pets:
    get:
      operationId: listPets
      summary: List pets
      parameters:
        - name: status
          in: query
          schema:
            type: string
            enum: [a, b]
        - name: limit
          in: query
          schema:
            type: integer
            format: int32
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        '201':
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
  /pets/{petId}/photo:
    put:
      operationId: uploadPhoto
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: integer
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              properties:
                file:
                  type: string
                  format: binary
      responses:
        '200':
          description: ok
          content:
            text/plain:
              schema:
                type: string
components:
  parameters:
    TraceID:
      name: X-Trace-Id
      in: header
      schema:
        type: string
  schemas:
    User:
      type: object
      required: [id, name]
      properties:
        id:
          type: string
        name:
          type: string
        email:
          type: string
          format: email
        manager:
          $ref: '#/components/schemas/User'
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          type: string
        status:
          type: string
          enum: [available, sold]
`

// CyclicYAML holds two schemas that reference each other.
const CyclicYAML = `openapi: 3.0.3
info:
  title: Cycle
  version: "1"
paths: {}
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: '#/components/schemas/B'
    B:
      type: object
      properties:
        a:
          $ref: '#/components/schemas/A'
`

// SwaggerYAML is a minimal Swagger 2.0 document.
const SwaggerYAML = `swagger: "2.0"
info:
  title: Legacy
  version: "1.0"
host: legacy.example.com
basePath: /api
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200":
          description: pong
`

// ParseYAML parses src and fails the test on error.
func ParseYAML(t *testing.T, src string) *parser.Document {
	t.Helper()
	doc, err := parser.ParseBytes([]byte(src))
	require.NoError(t, err, "fixture must parse")
	return doc
}

// WriteTempFile writes content to name inside a per-test temporary directory.
// Returns the path to the file.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}

// DocServer serves fixed documents over HTTP and counts requests per path.
type DocServer struct {
	*httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

// NewDocServer starts a server answering each key of files (a URL path such
// as "/common.yaml") with its content. Unknown paths return 404. The server is
// closed when the test completes.
func NewDocServer(t *testing.T, files map[string]string) *DocServer {
	t.Helper()
	ds := &DocServer{hits: make(map[string]int)}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.mu.Lock()
		ds.hits[r.URL.Path]++
		ds.mu.Unlock()

		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ds.Close)
	return ds
}

// Hits returns how many requests were made for path.
func (ds *DocServer) Hits(path string) int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.hits[path]
}
