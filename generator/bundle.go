package generator

import (
	"context"
	"fmt"

	"github.com/erraggy/oapistub/internal/httputil"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

// Parameter is a resolved operation parameter.
type Parameter struct {
	Name        string
	In          string
	Required    bool
	Description string
	// Schema is the resolved parameter schema; nil when none is declared
	Schema any
	// Raw is the resolved parameter object
	Raw *parser.Object
}

// Body is the request body selected for generation.
type Body struct {
	// ContentType is the chosen media type (see httputil.PreferredMediaType)
	ContentType string
	Kind        httputil.MediaKind
	Required    bool
	// Schema is the resolved body schema; nil when the media type declares none
	Schema any
}

// Response is the success response selected for generation.
type Response struct {
	// Status is the response code key, e.g. "200", "2XX" or "default"
	Status      string
	Description string
	// ContentType is the chosen media type; empty when no content is declared
	ContentType string
	Kind        httputil.MediaKind
	// Schema is the resolved schema of the JSON content; nil otherwise
	Schema any
}

// Bundle is an operation with every reference inside its parameters, request
// body and responses expanded. It is built per generation call and never
// shares mutable state with the source document.
type Bundle struct {
	OriginalPath string
	// Method is the upper-case HTTP method
	Method    string
	Operation *parser.Operation
	// SkippedParameters lists $ref values of parameters that could not be
	// resolved and were left out
	SkippedParameters []string
	// Parameters are the merged path-level and operation-level parameters.
	// Operation-level entries replace path-level ones with the same name and
	// location; order is path-level first, then new operation-level entries.
	Parameters []Parameter
	// RequestBody is nil when the operation declares no body
	RequestBody *Body
	// Response is nil when no success or default response is declared
	Response *Response
	// Responses is the resolved responses object
	Responses *parser.Object
	// Report collects soft failures across all resolve calls
	Report *resolver.Report
}

// ParametersIn returns the parameters declared in location, in order.
func (b *Bundle) ParametersIn(location string) []Parameter {
	var out []Parameter
	for _, p := range b.Parameters {
		if p.In == location {
			out = append(out, p)
		}
	}
	return out
}

// BuildBundle resolves everything the generator needs for a located operation.
// specLocation is the URL or path relative references resolve against; when
// empty, doc.SourcePath is used. A nil resolver uses resolver.New().
func BuildBundle(ctx context.Context, doc *parser.Document, result *locator.Result, specLocation string, r *resolver.Resolver) (*Bundle, error) {
	if doc == nil || doc.Raw == nil {
		return nil, &oaserrors.GenerationError{Message: "no document"}
	}
	if result == nil || result.Operation == nil {
		return nil, &oaserrors.GenerationError{Message: "no operation"}
	}
	if r == nil {
		r = resolver.New()
	}
	if specLocation == "" {
		specLocation = doc.SourcePath
	}
	base := resolver.Location{Document: doc.Raw, URL: specLocation}
	op := result.Operation
	label := result.Method + " " + result.OriginalPath

	b := &Bundle{
		OriginalPath: result.OriginalPath,
		Method:       result.Method,
		Operation:    op,
		Report:       &resolver.Report{},
	}

	var raw []any
	if result.PathItem != nil {
		raw = append(raw, result.PathItem.Parameters...)
	}
	raw = append(raw, op.Parameters...)
	resolved, report, err := r.ResolveList(ctx, raw, base)
	if err != nil {
		return nil, &oaserrors.GenerationError{Operation: label, Message: "resolving parameters", Cause: err}
	}
	b.Report.Merge(report)
	b.Parameters, b.SkippedParameters = mergeParameters(resolved)

	if op.RequestBody != nil {
		v, report, err := r.Resolve(ctx, op.RequestBody, base)
		if err != nil {
			return nil, &oaserrors.GenerationError{Operation: label, Message: "resolving request body", Cause: err}
		}
		b.Report.Merge(report)
		b.RequestBody = requestBody(v)
	} else if body := swaggerBody(b.Parameters, doc, op); body != nil {
		b.RequestBody = body
	}

	if op.Responses != nil {
		v, report, err := r.Resolve(ctx, op.Responses, base)
		if err != nil {
			return nil, &oaserrors.GenerationError{Operation: label, Message: "resolving responses", Cause: err}
		}
		b.Report.Merge(report)
		b.Responses, _ = parser.AsObject(v)
		b.Response = successResponse(b.Responses, doc, op)
	}
	return b, nil
}

func mergeParameters(items []any) ([]Parameter, []string) {
	var (
		out     []Parameter
		skipped []string
	)
	index := make(map[string]int)
	for _, item := range items {
		if u, ok := item.(*resolver.Unresolved); ok {
			skipped = append(skipped, u.Ref)
			continue
		}
		obj, ok := parser.AsObject(item)
		if !ok {
			continue
		}
		p := Parameter{
			Name:        obj.String("name"),
			In:          obj.String("in"),
			Required:    obj.Bool("required") || obj.String("in") == "path",
			Description: obj.String("description"),
			Schema:      parameterSchema(obj),
			Raw:         obj,
		}
		if p.Name == "" || p.In == "" {
			continue
		}
		key := p.In + ":" + p.Name
		if i, seen := index[key]; seen {
			out[i] = p
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}
	return out, skipped
}

// parameterSchema returns schema, else the schema of the first content entry,
// else the parameter itself for Swagger 2.0 style inline types.
func parameterSchema(param *parser.Object) any {
	if s, ok := param.Get("schema"); ok {
		return s
	}
	for _, media := range param.Object("content").All() {
		if m, ok := parser.AsObject(media); ok {
			s, _ := m.Get("schema")
			return s
		}
	}
	if param.Has("type") {
		return param
	}
	return nil
}

func requestBody(v any) *Body {
	if resolver.IsUnresolved(v) {
		return &Body{ContentType: "application/json", Kind: httputil.MediaJSON, Schema: v}
	}
	obj, ok := parser.AsObject(v)
	if !ok {
		return nil
	}
	content := obj.Object("content")
	mt := httputil.PreferredMediaType(content.Keys())
	body := &Body{
		ContentType: mt,
		Kind:        httputil.ClassifyMediaType(mt),
		Required:    obj.Bool("required"),
	}
	if media := content.Object(mt); media != nil {
		body.Schema, _ = media.Get("schema")
	}
	return body
}

// swaggerBody builds a body from Swagger 2.0 "body" or "formData" parameters.
func swaggerBody(params []Parameter, doc *parser.Document, op *parser.Operation) *Body {
	var form *parser.Object
	var required []any
	multipart := false
	for _, p := range params {
		switch p.In {
		case "body":
			mt := firstMediaType(op.Raw.Slice("consumes"), doc.Raw.Slice("consumes"), "application/json")
			return &Body{
				ContentType: mt,
				Kind:        httputil.ClassifyMediaType(mt),
				Required:    p.Required,
				Schema:      p.Schema,
			}
		case "formData":
			if form == nil {
				form = parser.NewObject(4)
			}
			form.Set(p.Name, p.Schema)
			if p.Required {
				required = append(required, p.Name)
			}
			if p.Raw.String("type") == "file" {
				multipart = true
			}
		}
	}
	if form == nil {
		return nil
	}
	schemaObj := parser.NewObject(3)
	schemaObj.Set("type", "object")
	schemaObj.Set("properties", form)
	if len(required) > 0 {
		schemaObj.Set("required", required)
	}
	mt := "application/x-www-form-urlencoded"
	if multipart {
		mt = "multipart/form-data"
	}
	return &Body{
		ContentType: mt,
		Kind:        httputil.ClassifyMediaType(mt),
		Required:    len(required) > 0,
		Schema:      schemaObj,
	}
}

func successResponse(responses *parser.Object, doc *parser.Document, op *parser.Operation) *Response {
	status := httputil.SuccessResponseCode(responses.Keys())
	if status == "" {
		return nil
	}
	obj := responses.Object(status)
	resp := &Response{Status: status, Kind: httputil.MediaRaw}
	if obj == nil {
		return resp
	}
	resp.Description = obj.String("description")

	if content := obj.Object("content"); content != nil {
		resp.ContentType = httputil.PreferredMediaType(content.Keys())
		resp.Kind = httputil.ClassifyMediaType(resp.ContentType)
		if resp.Kind == httputil.MediaJSON {
			if media := content.Object(resp.ContentType); media != nil {
				resp.Schema, _ = media.Get("schema")
			}
		}
		return resp
	}

	// Swagger 2.0 puts the schema on the response and media types in produces
	if s, ok := obj.Get("schema"); ok {
		resp.ContentType = firstMediaType(op.Raw.Slice("produces"), doc.Raw.Slice("produces"), "application/json")
		resp.Kind = httputil.ClassifyMediaType(resp.ContentType)
		if resp.Kind == httputil.MediaJSON {
			resp.Schema = s
		}
	}
	return resp
}

func firstMediaType(opLevel, docLevel []any, fallback string) string {
	var list []string
	for _, src := range [][]any{opLevel, docLevel} {
		for _, v := range src {
			if s, ok := v.(string); ok {
				list = append(list, s)
			}
		}
		if len(list) > 0 {
			break
		}
	}
	if mt := httputil.PreferredMediaType(list); mt != "" {
		return mt
	}
	return fallback
}

func (b *Bundle) String() string {
	return fmt.Sprintf("%s %s", b.Method, b.OriginalPath)
}
