package locator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/erraggy/oapistub/internal/httputil"
	"github.com/erraggy/oapistub/parser"
)

// overviewCompactLimit is the rendered size above which Overview leaves out
// routes and lists operationIds only.
const overviewCompactLimit = 50000

// Overview renders a plain-text listing of the document: a line giving the
// endpoint count, a title line with the server origin, the description, then
// one bullet per get, post, put, patch or delete operation in the form
// "- operationId METHOD /path?name=type - summary".
func Overview(doc *parser.Document) string {
	if doc == nil {
		return ""
	}
	var lines []string
	if doc.Info != nil {
		head := doc.Info.Title
		if doc.Info.Version != "" {
			head += " v" + doc.Info.Version
		}
		if origin := serverOrigin(doc.Servers); origin != "" {
			head += " - " + origin
		}
		lines = append(lines, head)
		if doc.Info.Description != "" {
			lines = append(lines, doc.Info.Description)
		}
		lines = append(lines, "")
	}

	type entry struct{ id, route, summary string }
	var (
		entries []entry
		size    int
	)
	for template, item := range doc.Paths.All() {
		for _, m := range httputil.OperationIDScanOrder {
			op := item.Operation(m)
			if op == nil {
				continue
			}
			e := entry{id: op.OperationID, route: strings.ToUpper(m) + " " + template + queryHint(op)}
			if op.Summary != "" {
				e.summary = " - " + op.Summary
			}
			size += len(e.id) + len(e.route) + len(e.summary)
			entries = append(entries, e)
		}
	}

	compact := size > overviewCompactLimit
	for _, e := range entries {
		var b strings.Builder
		b.WriteString("- ")
		switch {
		case compact && e.id != "":
			b.WriteString(e.id)
		case e.id != "":
			b.WriteString(e.id)
			b.WriteByte(' ')
			b.WriteString(e.route)
		default:
			b.WriteString(e.route)
		}
		b.WriteString(e.summary)
		lines = append(lines, b.String())
	}

	name := "This API"
	if doc.Info != nil && doc.Info.Title != "" {
		name = doc.Info.Title
	}
	head := fmt.Sprintf("%s contains %d endpoints. Locate one by operationId or route for its details.", name, len(entries))
	return head + "\n\n" + strings.Join(lines, "\n")
}

// queryHint lists inline query parameters as name=type.
func queryHint(op *parser.Operation) string {
	var parts []string
	for _, v := range op.Parameters {
		p, ok := parser.AsObject(v)
		if !ok || p.String("in") != "query" {
			continue
		}
		typ := p.String("type")
		if s := p.Object("schema"); s != nil && s.String("type") != "" {
			typ = s.String("type")
		}
		if typ == "" {
			typ = p.String("name")
		}
		parts = append(parts, p.String("name")+"="+typ)
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

func serverOrigin(servers []*parser.Server) string {
	if len(servers) == 0 {
		return ""
	}
	raw := servers[0].URL
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.SplitN(raw, "/", 2)[0]
	}
	return u.Scheme + "://" + u.Host
}
