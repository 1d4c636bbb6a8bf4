package parser

import (
	"iter"
	"strconv"
	"strings"

	"github.com/erraggy/oapistub/internal/httputil"
	"github.com/erraggy/oapistub/oaserrors"
)

// Document is a typed view over a decoded OpenAPI or Swagger document.
//
// Raw holds the complete decoded tree and is the source of truth; the typed
// fields point into it and are never written back. Components stay raw and are
// reached through $ref pointers by the resolver.
type Document struct {
	// OpenAPI is the "openapi" version string (3.x documents)
	OpenAPI string
	// Swagger is the "swagger" version string (2.0 documents)
	Swagger string
	// Info carries the title, version and description
	Info *Info
	// Servers is the root server list in declaration order
	Servers []*Server
	// Paths maps path templates to path items in declaration order.
	// Nil when the document has no paths object.
	Paths *Paths
	// Raw is the decoded document tree
	Raw *Object
	// SourcePath is the file path or URL the document was loaded from
	SourcePath string
	// SourceFormat is the format of the source bytes
	SourceFormat SourceFormat
	// SourceSize is the size of the source bytes
	SourceSize int64
}

// Info is the document info object.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Server is a server entry with its URL template and variables.
type Server struct {
	URL         string
	Description string
	// Variables are kept in declaration order
	Variables []*ServerVariable
}

// ServerVariable is a substitution variable in a server URL template.
type ServerVariable struct {
	Name    string
	Default string
	Enum    []string
}

// Paths is the ordered paths object.
type Paths struct {
	templates []string
	items     map[string]*PathItem
}

// Get returns the path item declared under the exact template.
func (p *Paths) Get(template string) (*PathItem, bool) {
	if p == nil {
		return nil, false
	}
	item, ok := p.items[template]
	return item, ok
}

// Len returns the number of path templates.
func (p *Paths) Len() int {
	if p == nil {
		return 0
	}
	return len(p.templates)
}

// Templates returns the path templates in declaration order.
func (p *Paths) Templates() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.templates))
	copy(out, p.templates)
	return out
}

// All iterates templates and path items in declaration order.
func (p *Paths) All() iter.Seq2[string, *PathItem] {
	return func(yield func(string, *PathItem) bool) {
		if p == nil {
			return
		}
		for _, t := range p.templates {
			if !yield(t, p.items[t]) {
				return
			}
		}
	}
}

// PathItem holds the operations declared under one path template.
type PathItem struct {
	// Template is the path template, e.g. /users/{id}
	Template string
	// Parameters are path-level parameters, raw (may contain $ref)
	Parameters []any
	// Servers overrides the root servers for this path
	Servers []*Server
	// Raw is the decoded path item
	Raw *Object

	operations map[string]*Operation
}

// Operation returns the operation for method (case-insensitive), or nil.
func (pi *PathItem) Operation(method string) *Operation {
	if pi == nil {
		return nil
	}
	return pi.operations[strings.ToLower(method)]
}

// Methods returns the declared methods in httputil.Methods order.
func (pi *PathItem) Methods() []string {
	if pi == nil {
		return nil
	}
	var out []string
	for _, m := range httputil.Methods {
		if _, ok := pi.operations[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Operation is a single method handler under a path.
type Operation struct {
	// Method is the lower-case HTTP method
	Method string
	// Path is the template the operation is declared under
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	// Parameters are operation-level parameters, raw (may contain $ref)
	Parameters []any
	// RequestBody is the raw request body (may be a $ref)
	RequestBody any
	// Responses maps status codes to raw responses
	Responses *Object
	// Servers overrides path and root servers
	Servers []*Server
	// Raw is the decoded operation object
	Raw *Object
}

// NewDocument builds the typed view over a decoded root value.
// It fails only when root is not a mapping; missing fields are reported by Validate.
func NewDocument(root any, source string) (*Document, error) {
	raw, ok := AsObject(root)
	if !ok {
		return nil, &oaserrors.DocumentError{
			Source:  source,
			Message: "document root must be a mapping",
		}
	}

	doc := &Document{
		OpenAPI:    stringify(raw, "openapi"),
		Swagger:    stringify(raw, "swagger"),
		Servers:    buildServers(raw.Slice("servers")),
		Raw:        raw,
		SourcePath: source,
	}

	if info := raw.Object("info"); info != nil {
		doc.Info = &Info{
			Title:       info.String("title"),
			Version:     stringify(info, "version"),
			Description: info.String("description"),
		}
	}

	if paths := raw.Object("paths"); paths != nil {
		doc.Paths = buildPaths(paths)
	}

	return doc, nil
}

// stringify reads a field that authors sometimes write unquoted (version: 3.0).
func stringify(o *Object, key string) string {
	v, ok := o.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatFloat(t, 'f', 1, 64)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(formatScalar(t))
	}
}

func buildPaths(raw *Object) *Paths {
	p := &Paths{items: make(map[string]*PathItem, raw.Len())}
	for template, v := range raw.All() {
		itemRaw, ok := AsObject(v)
		if !ok {
			continue
		}
		item := &PathItem{
			Template:   template,
			Parameters: itemRaw.Slice("parameters"),
			Servers:    buildServers(itemRaw.Slice("servers")),
			Raw:        itemRaw,
			operations: make(map[string]*Operation),
		}
		for _, method := range httputil.Methods {
			opRaw := itemRaw.Object(method)
			if opRaw == nil {
				continue
			}
			item.operations[method] = buildOperation(method, template, opRaw)
		}
		p.templates = append(p.templates, template)
		p.items[template] = item
	}
	return p
}

func buildOperation(method, template string, raw *Object) *Operation {
	op := &Operation{
		Method:      method,
		Path:        template,
		OperationID: raw.String("operationId"),
		Summary:     raw.String("summary"),
		Description: raw.String("description"),
		Deprecated:  raw.Bool("deprecated"),
		Parameters:  raw.Slice("parameters"),
		Responses:   raw.Object("responses"),
		Servers:     buildServers(raw.Slice("servers")),
		Raw:         raw,
	}
	if body, ok := raw.Get("requestBody"); ok {
		op.RequestBody = body
	}
	for _, tag := range raw.Slice("tags") {
		if s, ok := tag.(string); ok {
			op.Tags = append(op.Tags, s)
		}
	}
	return op
}

func buildServers(list []any) []*Server {
	var out []*Server
	for _, v := range list {
		raw, ok := AsObject(v)
		if !ok {
			continue
		}
		srv := &Server{
			URL:         raw.String("url"),
			Description: raw.String("description"),
		}
		for name, vv := range raw.Object("variables").All() {
			varRaw, ok := AsObject(vv)
			if !ok {
				continue
			}
			sv := &ServerVariable{Name: name, Default: stringify(varRaw, "default")}
			for _, e := range varRaw.Slice("enum") {
				sv.Enum = append(sv.Enum, formatScalar(e))
			}
			srv.Variables = append(srv.Variables, sv)
		}
		out = append(out, srv)
	}
	return out
}

// IsOAS3 reports whether the document declares an OpenAPI 3.x version.
func (d *Document) IsOAS3() bool {
	return d != nil && strings.HasPrefix(d.OpenAPI, "3.")
}

// IsSwagger reports whether the document is a Swagger 2.0 document.
func (d *Document) IsSwagger() bool {
	return d != nil && d.Swagger != ""
}

// Version returns the declared document version.
func (d *Document) Version() string {
	if d.OpenAPI != "" {
		return d.OpenAPI
	}
	return d.Swagger
}

// Validate checks the root fields the locator and generator depend on.
func (d *Document) Validate() error {
	if d == nil || d.Raw == nil {
		return &oaserrors.DocumentError{Message: "document is empty"}
	}
	if d.OpenAPI == "" && d.Swagger == "" {
		return &oaserrors.DocumentError{
			Source:  d.SourcePath,
			Field:   "openapi",
			Message: "missing version field (openapi or swagger)",
		}
	}
	if d.Paths == nil {
		return &oaserrors.DocumentError{
			Source:  d.SourcePath,
			Field:   "paths",
			Message: "missing paths object",
		}
	}
	return nil
}
