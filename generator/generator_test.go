package generator

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/internal/testutil"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/resolver"
)

func generate(t *testing.T, src string, opts ...Option) *GenerateResult {
	t.Helper()
	doc := testutil.ParseYAML(t, src)
	result, err := Generate(context.Background(), append([]Option{WithDocument(doc)}, opts...)...)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	return result
}

func TestGenerateTypeScriptGetUser(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, WithTarget(locator.Target{OperationID: "getUser"}))
	out := result.Source()

	assert.Equal(t, "getUser.ts", result.Files[0].Name)
	assert.Equal(t, "getUser", result.FunctionName)
	assert.Equal(t, "https://api.example.com/v1", result.BaseURL)
	assert.True(t, result.Success)

	for _, want := range []string{
		"export type RequestType = {",
		"  headers?: {\n    \"X-Trace-Id\"?: string;\n    [key: string]: unknown;\n  };",
		"  query?: {\n    expand?: Array<string>;\n  };",
		"  path: {\n    id: string;\n  };",
		"  body?: never;",
		"export type ResponseType = {",
		"    email?: string /* email */;\n    manager?: unknown;\n  };",
		`const BASE_URL = "https://api.example.com/v1";`,
		"/** Get a user */",
		"export default async function getUser(request: RequestType): Promise<ResponseType> {",
		`method: "GET",`,
		`const headers: Record<string, string> = { Accept: "application/json" };`,
		"JSON.parse(text)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "let body")
	assert.NotContains(t, out, "cookieNames")

	// User.manager refers back to User and is emitted untyped
	assert.Equal(t, 1, result.WarningCount)
	require.True(t, result.HasWarnings())
	var paths []string
	for _, issue := range result.Issues {
		if issue.Severity == SeverityWarning {
			paths = append(paths, issue.Path)
			require.NotNil(t, issue.Operation)
			assert.Equal(t, "getUser", issue.Operation.OperationID)
		}
	}
	assert.Equal(t, []string{"response.body.manager"}, paths)
}

func TestGenerateTypeScriptRequestBody(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, WithTarget(locator.Target{Path: "/pets", Method: "post"}))
	out := result.Source()

	assert.Contains(t, out, "  body: {\n    name: string;\n    tag?: string;\n    status?: \"available\" | \"sold\";\n  };")
	assert.Contains(t, out, "  path?: Record<string, never>;")
	assert.Contains(t, out, "  query?: Record<string, never>;")
	assert.Contains(t, out, `headers["Content-Type"] = "application/json";`)
	assert.Contains(t, out, "body = JSON.stringify(request.body);")
	assert.Contains(t, out, "export default async function createPet(")
	assert.Zero(t, result.WarningCount)
}

func TestGenerateTypeScriptEnumQuery(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, WithTarget(locator.Target{OperationID: "listPets"}))
	out := result.Source()

	assert.Contains(t, out, "    status?: \"a\" | \"b\";\n")
	assert.Contains(t, out, "    limit?: number /* int32 */;\n")
	assert.Contains(t, out, "/** List pets */")
}

func TestGenerateJavaScript(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML,
		WithTarget(locator.Target{OperationID: "getUser"}),
		WithLanguage(LanguageJavaScript),
	)
	out := result.Source()

	assert.Equal(t, "getUser.js", result.Files[0].Name)
	assert.Contains(t, out, "export default async function getUser(request) {")
	assert.Contains(t, out, "const headers = { Accept: \"application/json\" };")
	for _, typed := range []string{"export type", "RequestType", ": Record<string", "Promise<"} {
		assert.NotContains(t, out, typed)
	}
	assert.Zero(t, result.WarningCount, "untyped output carries no type degradation")
}

func TestGenerateCookieParameters(t *testing.T) {
	const src = `openapi: 3.0.3
info: {title: Cookies, version: "1"}
servers: [{url: "https://c.example.com"}]
paths:
  /session:
    get:
      operationId: getSession
      deprecated: true
      parameters:
        - {name: sid, in: cookie, required: true, schema: {type: string}}
      responses:
        "204": {description: none}
`
	ts := generate(t, src, WithOriginalPath("/session"))
	assert.Empty(t, ts.Issues)
	out := ts.Source()
	assert.Contains(t, out, "  headers: {\n    sid: string;\n    [key: string]: unknown;\n  };")
	assert.Contains(t, out, `const cookieNames = ["sid"];`)
	assert.Contains(t, out, `headers["Cookie"] = cookies.join("; ");`)
	assert.Contains(t, out, "/** @deprecated */")

	goResult := generate(t, src, WithOriginalPath("/session"), WithLanguage(LanguageGo))
	goOut := goResult.Source()
	assert.Contains(t, goOut, `httpReq.AddCookie(&http.Cookie{Name: "sid", Value: v})`)
	assert.Contains(t, goOut, "// Deprecated: the operation is marked deprecated.")
}

func TestGenerateGoMultipart(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML,
		WithTarget(locator.Target{OperationID: "uploadPhoto"}),
		WithLanguage(LanguageGo),
	)
	file := result.GetFile("upload_photo.go")
	require.NotNil(t, file)
	out := string(file.Content)

	assert.Contains(t, out, "package client")
	assert.Contains(t, out, "func UploadPhoto(ctx context.Context, req UploadPhotoRequest) (*UploadPhotoResponse, error) {")
	assert.Contains(t, out, "type UploadPhotoBody map[string]any")
	assert.Contains(t, out, `UploadPhotoBaseURL = "https://api.example.com/v1"`)
	assert.Contains(t, out, "mw.FormDataContentType()")
	assert.Contains(t, out, "out.Body = string(raw)")

	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, file.Name, file.Content, parser.AllErrors)
	require.NoError(t, err, out)

	assert.Zero(t, result.WarningCount)
	require.Equal(t, 1, result.InfoCount)
	assert.Equal(t, "request.body", result.Issues[0].Path)
}

func TestGenerateGoJSON(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML,
		WithTarget(locator.Target{OperationID: "createPet"}),
		WithLanguage(LanguageGo),
		WithPackageName("pets"),
		WithFunctionName("add pet"),
	)
	out := result.Source()

	assert.Equal(t, "AddPet", result.FunctionName)
	assert.Equal(t, "add_pet.go", result.Files[0].Name)
	assert.Contains(t, out, "package pets")
	assert.Contains(t, out, "json.Marshal(req.Body)")
	assert.Contains(t, out, "json.Unmarshal(raw, &out.Body)")
	assert.NotContains(t, out, `"mime/multipart"`)

	_, err := parser.ParseFile(token.NewFileSet(), "add_pet.go", out, parser.AllErrors)
	require.NoError(t, err, out)
}

func TestGenerateUnresolvedParameter(t *testing.T) {
	result := generate(t, overrideYAML, WithTarget(locator.Target{OperationID: "getItem"}))

	var skipped []GenerateIssue
	for _, issue := range result.Issues {
		if issue.Context == "#/components/parameters/Missing" {
			skipped = append(skipped, issue)
		}
	}
	require.Len(t, skipped, 1)
	assert.Equal(t, SeverityWarning, skipped[0].Severity)
	assert.Equal(t, "request", skipped[0].Path)
	// no server and no absolute spec location
	assert.Empty(t, result.BaseURL)
	assert.Equal(t, 2, result.WarningCount)
}

func TestGenerateErrors(t *testing.T) {
	ctx := context.Background()
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)

	_, err := Generate(ctx)
	assert.ErrorIs(t, err, oaserrors.ErrGeneration)

	_, err = Generate(ctx, WithDocument(nil))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "generator: invalid options"))

	_, err = Generate(ctx, WithDocument(doc), WithPackageName(""))
	require.Error(t, err)

	_, err = Generate(ctx, WithDocument(doc), WithTarget(locator.Target{OperationID: "nope"}))
	assert.ErrorIs(t, err, oaserrors.ErrOperationNotFound)

	_, err = Generate(ctx,
		WithDocument(doc),
		WithTarget(locator.Target{OperationID: "getUser"}),
		WithResolver(resolver.New(resolver.WithPolicy(resolver.PolicyFailFast))),
	)
	assert.ErrorIs(t, err, oaserrors.ErrGeneration)
	assert.ErrorIs(t, err, oaserrors.ErrCircularReference)
}

func TestGenerateWithLocatedOperation(t *testing.T) {
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	located, err := locator.Locate(doc, locator.Target{Path: "/users/42", Method: "DELETE"})
	require.NoError(t, err)

	result, err := Generate(context.Background(), WithDocument(doc), WithOperation(located))
	require.NoError(t, err)
	assert.Equal(t, "deleteUser", result.FunctionName)
	assert.Equal(t, "DELETE /users/{id}", result.Bundle.String())
	assert.Contains(t, result.Source(), `method: "DELETE",`)
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{
		"":           LanguageTypeScript,
		"TS":         LanguageTypeScript,
		"javascript": LanguageJavaScript,
		"golang":     LanguageGo,
	} {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLanguage("rust")
	assert.Error(t, err)
	assert.Equal(t, ".go", LanguageGo.Extension())
}

func TestWriteFiles(t *testing.T) {
	result := generate(t, testutil.PetstoreYAML, WithTarget(locator.Target{OperationID: "getUser"}))
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, result.WriteFiles(dir))
	data, err := os.ReadFile(filepath.Join(dir, "getUser.ts"))
	require.NoError(t, err)
	assert.Equal(t, result.Source(), string(data))
}

func TestWriteFilesRejectsNestedNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := &GenerateResult{Files: []GeneratedFile{
		{Name: "ok.ts", Content: []byte("x")},
		{Name: "../escape.ts", Content: []byte("x")},
	}}

	err := result.WriteFiles(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "../escape.ts")
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when a name is invalid")
}
