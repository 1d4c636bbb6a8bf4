package generator

import (
	"net/url"
	"strings"

	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/parser"
)

// BaseURL returns the server URL an operation is called against.
//
// The first server of the operation, else of the path item, else of the
// document is used, with variables replaced by their defaults. Relative
// server URLs are resolved against specLocation. Swagger 2.0 documents combine
// schemes, host and basePath. Without any server the origin of specLocation
// is used. The result never ends in "/"; it is "" when nothing applies.
func BaseURL(doc *parser.Document, result *locator.Result, specLocation string) string {
	if doc == nil {
		return ""
	}
	if specLocation == "" {
		specLocation = doc.SourcePath
	}

	var server *parser.Server
	switch {
	case result != nil && result.Operation != nil && len(result.Operation.Servers) > 0:
		server = result.Operation.Servers[0]
	case result != nil && result.PathItem != nil && len(result.PathItem.Servers) > 0:
		server = result.PathItem.Servers[0]
	case len(doc.Servers) > 0:
		server = doc.Servers[0]
	}

	var raw string
	switch {
	case server != nil:
		raw = expandServerURL(server)
	case doc.IsSwagger():
		raw = swaggerURL(doc)
	}
	if raw == "" {
		return origin(specLocation)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "/")
	}
	if !u.IsAbs() && u.Host == "" {
		if base, err := url.Parse(specLocation); err == nil && base.IsAbs() {
			u = base.ResolveReference(u)
		}
	} else if u.Scheme == "" {
		// protocol-relative //host/path
		if base, err := url.Parse(specLocation); err == nil && base.Scheme != "" {
			u.Scheme = base.Scheme
		} else {
			u.Scheme = "https"
		}
	}
	return strings.TrimRight(u.String(), "/")
}

func expandServerURL(s *parser.Server) string {
	out := s.URL
	for _, v := range s.Variables {
		value := v.Default
		if value == "" && len(v.Enum) > 0 {
			value = v.Enum[0]
		}
		out = strings.ReplaceAll(out, "{"+v.Name+"}", value)
	}
	return out
}

func swaggerURL(doc *parser.Document) string {
	host := doc.Raw.String("host")
	basePath := doc.Raw.String("basePath")
	if host == "" {
		return basePath
	}
	scheme := "https"
	if schemes := doc.Raw.Slice("schemes"); len(schemes) > 0 {
		if s, ok := schemes[0].(string); ok && s != "" {
			scheme = s
		}
	}
	return scheme + "://" + host + basePath
}

func origin(location string) string {
	u, err := url.Parse(location)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
