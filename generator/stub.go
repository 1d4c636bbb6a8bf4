package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oapistub"
	"github.com/erraggy/oapistub/internal/httputil"
	"github.com/erraggy/oapistub/internal/issues"
	"github.com/erraggy/oapistub/internal/naming"
	"github.com/erraggy/oapistub/schema"
	"github.com/erraggy/oapistub/translator"
)

// paramField binds a parameter to the struct field holding it (Go only).
type paramField struct {
	Name        string
	Field       string
	Placeholder string
}

// stubData is the input of the typescript and go templates.
type stubData struct {
	Version     string
	Source      string
	Method      string
	Path        string
	OperationID string
	Summary     string
	Deprecated  bool
	Name        string
	Helper      string
	Package     string
	BaseURL     string
	Accept      string
	Typed       bool

	HeadersType  string
	QueryType    string
	PathType     string
	BodyType     string
	ResponseType string
	HeadersOpt   string
	QueryOpt     string
	PathOpt      string
	BodyOpt      string
	CookieNames  []string

	PathParams   []paramField
	QueryParams  []paramField
	HeaderParams []paramField
	CookieParams []paramField

	HasBody             bool
	BodyKind            string
	BodyContentType     string
	ResponseKind        string
	ResponseContentType string
}

// T returns annotation text only when types are emitted.
func (d *stubData) T(annotation string) string {
	if d.Typed {
		return annotation
	}
	return ""
}

type stubGenerator struct {
	cfg      *generateConfig
	bundle   *Bundle
	baseURL  string
	opCtx    issues.OperationContext
	renderer *translator.Renderer
	issues   []GenerateIssue
}

func (g *stubGenerator) addIssue(sev Severity, path, message, context string) {
	ctx := g.opCtx
	g.issues = append(g.issues, GenerateIssue{
		Path:      path,
		Message:   message,
		Severity:  sev,
		Context:   context,
		Operation: &ctx,
	})
}

func (g *stubGenerator) functionName() string {
	base := g.cfg.functionName
	if base == "" {
		base = g.bundle.Operation.OperationID
	}
	if base == "" {
		base = strings.ToLower(g.bundle.Method) + " " + g.bundle.OriginalPath
	}
	if g.cfg.language == LanguageGo {
		return naming.GoExported(base, "Call")
	}
	return naming.JSIdentifier(base, "call")
}

func (g *stubGenerator) fileName(name string) string {
	if g.cfg.language == LanguageGo {
		return naming.ToSnakeCase(name) + ".go"
	}
	return name + g.cfg.language.Extension()
}

func (g *stubGenerator) generate() (GeneratedFile, error) {
	b := g.bundle
	dialect := translator.DialectTypeScript
	if g.cfg.language == LanguageGo {
		dialect = translator.DialectGo
	}
	g.renderer = translator.New(dialect)

	for _, ref := range b.SkippedParameters {
		g.addIssue(SeverityWarning, "request", "parameter dropped: reference could not be resolved", ref)
	}
	if g.baseURL == "" {
		g.addIssue(SeverityWarning, "", "no server URL could be determined; requests use the bare path", "")
	}

	source := g.cfg.specLocation
	if source == "" {
		source = g.cfg.doc.SourcePath
	}
	name := g.functionName()
	data := &stubData{
		Version:     oapistub.Version(),
		Source:      source,
		Method:      b.Method,
		Path:        b.OriginalPath,
		OperationID: b.Operation.OperationID,
		Summary:     b.Operation.Summary,
		Deprecated:  b.Operation.Deprecated,
		Name:        name,
		Helper:      naming.GoUnexported(name, "call"),
		Package:     g.cfg.packageName,
		BaseURL:     g.baseURL,
		Accept:      "*/*",
		Typed:       g.cfg.language != LanguageJavaScript,
		BodyKind:    "none",
	}
	g.fillBody(data)
	g.fillResponse(data)

	tmpl := "typescript"
	if g.cfg.language == LanguageGo {
		tmpl = "go"
		g.fillGoParams(data)
	} else {
		g.fillTSParams(data)
	}
	if data.Typed {
		g.issues = append(g.issues, issues.WithOperation(g.renderer.Issues(), g.opCtx)...)
	}

	src, err := executeTemplate(tmpl, data)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("rendering %s template: %w", tmpl, err)
	}
	file := GeneratedFile{Name: g.fileName(name), Content: src}
	if g.cfg.language == LanguageGo {
		formatted, err := formatAndFixImports(file.Name, src)
		if err != nil {
			g.addIssue(SeverityWarning, "", "emitted Go source could not be formatted", err.Error())
		} else {
			file.Content = formatted
		}
	}
	return file, nil
}

// paramNode converts a parameter schema; a missing or typeless schema is a string.
func paramNode(p Parameter) schema.Node {
	n := schema.FromValue(p.Schema)
	if u, ok := n.(*schema.Unknown); ok && (p.Schema == nil || u.Reason == "") {
		n = &schema.Primitive{Meta: u.Meta, Type: "string"}
	}
	if m := schema.MetaOf(n); m != nil && m.Description == "" {
		m.Description = p.Description
	}
	return n
}

// group builds the object type for parameters in the given locations.
func (g *stubGenerator) group(locations ...string) (*schema.Object, []Parameter) {
	obj := &schema.Object{}
	var params []Parameter
	for _, p := range g.bundle.Parameters {
		for _, loc := range locations {
			if p.In != loc {
				continue
			}
			params = append(params, p)
			obj.Properties = append(obj.Properties, schema.Property{
				Name:     p.Name,
				Node:     paramNode(p),
				Required: p.Required,
			})
		}
	}
	return obj, params
}

func anyRequired(params []Parameter) bool {
	for _, p := range params {
		if p.Required {
			return true
		}
	}
	return false
}

func optionalMark(required bool) string {
	if required {
		return ""
	}
	return "?"
}

func (g *stubGenerator) fillTSParams(d *stubData) {
	headers, hp := g.group("header", "cookie")
	d.HeadersOpt = optionalMark(anyRequired(hp))
	if len(hp) == 0 {
		d.HeadersType = "{ [name: string]: string }"
	} else {
		headers.AdditionalProperties = &schema.Primitive{Type: "string"}
		d.HeadersType = g.renderer.RenderAt("request.headers", headers, 1)
	}
	for _, p := range hp {
		if p.In == "cookie" {
			d.CookieNames = append(d.CookieNames, p.Name)
		}
	}

	query, qp := g.group("query")
	d.QueryOpt = optionalMark(anyRequired(qp))
	d.QueryType = "Record<string, never>"
	if len(qp) > 0 {
		d.QueryType = g.renderer.RenderAt("request.query", query, 1)
	}

	path, pp := g.group("path")
	d.PathOpt = optionalMark(len(pp) > 0)
	d.PathType = "Record<string, never>"
	if len(pp) > 0 {
		d.PathType = g.renderer.RenderAt("request.path", path, 1)
	}
}

func (g *stubGenerator) fillGoParams(d *stubData) {
	render := func(label string, obj *schema.Object) string {
		if len(obj.Properties) == 0 {
			return "struct{}"
		}
		return g.renderer.RenderAt(label, obj, 0)
	}
	fields := func(params []Parameter) []string {
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		return translator.GoFieldNames(names)
	}

	headers, hp := g.group("header", "cookie")
	d.HeadersType = render("request.headers", headers)
	for i, field := range fields(hp) {
		pf := paramField{Name: hp[i].Name, Field: field}
		if hp[i].In == "cookie" {
			d.CookieParams = append(d.CookieParams, pf)
		} else {
			d.HeaderParams = append(d.HeaderParams, pf)
		}
	}

	query, qp := g.group("query")
	d.QueryType = render("request.query", query)
	for i, field := range fields(qp) {
		d.QueryParams = append(d.QueryParams, paramField{Name: qp[i].Name, Field: field})
	}

	path, pp := g.group("path")
	d.PathType = render("request.path", path)
	for i, field := range fields(pp) {
		d.PathParams = append(d.PathParams, paramField{
			Name:        pp[i].Name,
			Field:       field,
			Placeholder: "{" + pp[i].Name + "}",
		})
	}
}

func bodyNode(s any) schema.Node {
	if s == nil {
		return &schema.Unknown{}
	}
	return schema.FromValue(s)
}

func (g *stubGenerator) fillBody(d *stubData) {
	body := g.bundle.RequestBody
	goLang := g.cfg.language == LanguageGo
	if body == nil {
		d.BodyOpt = "?"
		d.BodyType = "never"
		if goLang {
			d.BodyType = "struct{}"
		}
		return
	}

	d.HasBody = true
	d.BodyKind = body.Kind.String()
	d.BodyContentType = body.ContentType
	if d.BodyContentType == "" {
		d.BodyContentType = "application/octet-stream"
	}
	d.BodyOpt = optionalMark(body.Required)
	if !d.Typed {
		return
	}

	switch body.Kind {
	case httputil.MediaJSON, httputil.MediaForm:
		indent := 1
		if goLang {
			indent = 0
		}
		d.BodyType = g.renderer.RenderAt("request.body", bodyNode(body.Schema), indent)
	case httputil.MediaMultipart:
		if goLang {
			d.BodyType = "map[string]any"
			g.addIssue(SeverityInfo, "request.body", "multipart body is typed as map[string]any; []byte and io.Reader values become file parts", "")
		} else {
			d.BodyType = g.renderer.RenderAt("request.body", bodyNode(body.Schema), 1)
		}
	case httputil.MediaText:
		d.BodyType = "string"
	default:
		d.BodyType = "BodyInit"
		if goLang {
			d.BodyType = "[]byte"
		}
	}
}

func (g *stubGenerator) fillResponse(d *stubData) {
	resp := g.bundle.Response
	goLang := g.cfg.language == LanguageGo
	d.ResponseKind = "none"
	d.ResponseType = "unknown"
	if goLang {
		d.ResponseType = "[]byte"
	}
	if resp == nil {
		g.addIssue(SeverityInfo, "response", "no success or default response declared", "")
		return
	}

	d.ResponseContentType = resp.ContentType
	if resp.ContentType != "" {
		d.ResponseKind = resp.Kind.String()
		d.Accept = resp.ContentType
	}
	if !d.Typed {
		return
	}
	switch resp.Kind {
	case httputil.MediaJSON:
		indent := 1
		if goLang {
			indent = 0
		}
		d.ResponseType = g.renderer.RenderAt("response.body", bodyNode(resp.Schema), indent)
	case httputil.MediaText:
		d.ResponseType = "string"
	}
}
