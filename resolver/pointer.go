package resolver

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/erraggy/oapistub/parser"
)

// Lookup evaluates a JSON pointer (RFC 6901) such as "/components/schemas/Pet"
// against root. An empty pointer or "/" designates root itself. Percent-encoded
// fragments are decoded first.
func Lookup(root any, pointer string) (any, error) {
	if decoded, err := url.PathUnescape(pointer); err == nil {
		pointer = decoded
	}
	if pointer == "" || pointer == "/" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid JSON pointer %q: must start with /", pointer)
	}

	parts := strings.Split(pointer[1:], "/")
	current := root
	for i, part := range parts {
		part = unescapeJSONPointer(part)
		at := "/" + strings.Join(parts[:i+1], "/")

		switch v := current.(type) {
		case *parser.Object:
			next, ok := v.Get(part)
			if !ok {
				return nil, fmt.Errorf("reference not found: #%s (missing key: %s)", at, part)
			}
			current = next
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 {
				return nil, fmt.Errorf("invalid array index %q in reference: #%s", part, at)
			}
			if index >= len(v) {
				return nil, fmt.Errorf("array index %d out of bounds (length %d) in reference: #%s", index, len(v), at)
			}
			current = v[index]
		default:
			return nil, fmt.Errorf("cannot traverse into %T at #%s", v, at)
		}
	}
	return current, nil
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// splitRef separates a $ref into its document part and fragment.
func splitRef(ref string) (doc, fragment string) {
	doc, fragment, _ = strings.Cut(ref, "#")
	return doc, fragment
}

// resolveDocument returns the absolute location of docRef as seen from base.
// URLs resolve per RFC 3986; file paths resolve against base's directory.
func resolveDocument(base, docRef string) (string, error) {
	if parser.IsURL(docRef) {
		return docRef, nil
	}
	if parser.IsURL(base) {
		b, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("invalid base URL %q: %w", base, err)
		}
		rel, err := url.Parse(docRef)
		if err != nil {
			return "", fmt.Errorf("invalid reference %q: %w", docRef, err)
		}
		return b.ResolveReference(rel).String(), nil
	}
	path := strings.TrimPrefix(docRef, "file://")
	if base == "" || filepath.IsAbs(path) {
		return path, nil
	}
	dir := filepath.Dir(strings.TrimPrefix(base, "file://"))
	return filepath.Join(dir, path), nil
}

func refType(docRef string) string {
	if docRef == "" {
		return "local"
	}
	return "remote"
}
