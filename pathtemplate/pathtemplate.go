package pathtemplate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// segmentPattern matches one non-empty path segment.
const segmentPattern = "([^/]+)"

// Matcher matches concrete paths against a compiled path template.
type Matcher struct {
	template string
	regex    *regexp.Regexp
	params   []string
	// shape is the template with every placeholder name erased ("/users/{}")
	shape string
}

type part struct {
	literal string
	param   string
	isParam bool
}

// split breaks a template into literal and placeholder parts.
func split(template string) ([]part, error) {
	var parts []part
	i := 0
	for i < len(template) {
		open := strings.IndexByte(template[i:], '{')
		if open == -1 {
			parts = append(parts, part{literal: template[i:]})
			break
		}
		if open > 0 {
			parts = append(parts, part{literal: template[i : i+open]})
		}
		start := i + open
		end := strings.IndexByte(template[start:], '}')
		if end == -1 {
			return nil, fmt.Errorf("pathtemplate: unclosed path parameter at position %d in template %q", start, template)
		}
		name := template[start+1 : start+end]
		if name == "" {
			return nil, fmt.Errorf("pathtemplate: empty path parameter at position %d in template %q", start, template)
		}
		if strings.ContainsAny(name, "{/") {
			return nil, fmt.Errorf("pathtemplate: malformed path parameter %q in template %q", name, template)
		}
		parts = append(parts, part{param: name, isParam: true})
		i = start + end + 1
	}
	return parts, nil
}

// Compile converts a path template into a Matcher.
//
// It returns an error for an empty template or malformed braces. Duplicate
// placeholder names are accepted; Extract reports the first occurrence.
func Compile(template string) (*Matcher, error) {
	if template == "" {
		return nil, fmt.Errorf("pathtemplate: path template cannot be empty")
	}
	parts, err := split(template)
	if err != nil {
		return nil, err
	}

	var (
		pattern strings.Builder
		shape   strings.Builder
		params  []string
	)
	pattern.WriteString("^")
	for _, p := range parts {
		if p.isParam {
			pattern.WriteString(segmentPattern)
			shape.WriteString("{}")
			params = append(params, p.param)
			continue
		}
		pattern.WriteString(regexp.QuoteMeta(p.literal))
		shape.WriteString(p.literal)
	}
	pattern.WriteString("$")

	regex, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("pathtemplate: failed to compile pattern for template %q: %w", template, err)
	}

	return &Matcher{
		template: template,
		regex:    regex,
		params:   params,
		shape:    shape.String(),
	}, nil
}

// MustCompile is like Compile but panics if the template is malformed.
func MustCompile(template string) *Matcher {
	m, err := Compile(template)
	if err != nil {
		panic(err)
	}
	return m
}

// Template returns the original path template.
func (m *Matcher) Template() string {
	return m.template
}

// Pattern returns the anchored regular expression the template compiled to.
// Templates that differ only in placeholder names share the same pattern.
func (m *Matcher) Pattern() string {
	return m.regex.String()
}

// Params returns the placeholder names in order of appearance.
func (m *Matcher) Params() []string {
	out := make([]string, len(m.params))
	copy(out, m.params)
	return out
}

// Test reports whether path satisfies the template as a whole.
func (m *Matcher) Test(path string) bool {
	return m.regex.MatchString(path)
}

// Extract returns the placeholder values captured from path.
// The second result is false when path does not match.
func (m *Matcher) Extract(path string) (map[string]string, bool) {
	matches := m.regex.FindStringSubmatch(path)
	if matches == nil || len(matches) != len(m.params)+1 {
		return nil, false
	}
	values := make(map[string]string, len(m.params))
	for i, name := range m.params {
		if _, seen := values[name]; seen {
			continue
		}
		values[name] = matches[i+1]
	}
	return values, true
}

// Expand substitutes each {name} placeholder in template with the path-escaped
// value from values. A placeholder without a value is an error.
func Expand(template string, values map[string]string) (string, error) {
	parts, err := split(template)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range parts {
		if !p.isParam {
			b.WriteString(p.literal)
			continue
		}
		v, ok := values[p.param]
		if !ok {
			return "", fmt.Errorf("pathtemplate: missing value for path parameter %q", p.param)
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), nil
}

// Equivalent reports whether two templates differ at most in placeholder
// names, in which case they match exactly the same set of paths.
func Equivalent(a, b string) bool {
	ma, err := Compile(a)
	if err != nil {
		return false
	}
	mb, err := Compile(b)
	if err != nil {
		return false
	}
	return ma.shape == mb.shape
}
