package generator

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/erraggy/oapistub/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(templateFuncs).
	ParseFS(templateFS, "templates/*.tmpl"))

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote":   strconv.Quote,
	"jsq":     naming.QuoteJS,
	"comment": commentText,
}

// executeTemplate executes a template by name
func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatAndFixImports formats Go source code and drops the imports the
// emitted code does not use.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

// commentText flattens text for use inside a line or block comment.
func commentText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "*/", "* /")
}
