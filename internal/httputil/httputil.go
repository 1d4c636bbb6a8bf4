// Package httputil provides HTTP method orderings, status code and media type helpers.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength     = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode        = 100 // Minimum valid HTTP status code
	MaxStatusCode        = 599 // Maximum valid HTTP status code
	WildcardChar         = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
	MinWildcardFirstChar = '1' // Minimum first digit for wildcard patterns
	MaxWildcardFirstChar = '5' // Maximum first digit for wildcard patterns
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists every method a path item may declare, in the order
// operations are decoded and listed.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// OperationIDScanOrder is the method order used when matching an operationId.
var OperationIDScanOrder = []string{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}

// PatternMatchOrder is the method precedence used when a concrete path is
// matched against templates: the first defined method wins for each template.
var PatternMatchOrder = []string{MethodGet, MethodPost, MethodDelete, MethodPatch, MethodPut}

// IsMethod reports whether m (any case) is a path item method.
func IsMethod(m string) bool {
	m = strings.ToLower(m)
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// ValidateStatusCode checks if a status code string is valid according to OpenAPI spec.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) == StatusCodeLength {
		// Check for wildcard patterns (e.g., "2XX", "4XX")
		if code[1] == WildcardChar && code[2] == WildcardChar {
			firstChar := code[0]
			if firstChar >= MinWildcardFirstChar && firstChar <= MaxWildcardFirstChar {
				return true
			}
		}

		// Check for numeric codes
		if code[0] >= '0' && code[0] <= '9' &&
			code[1] >= '0' && code[1] <= '9' &&
			code[2] >= '0' && code[2] <= '9' {
			statusCode, err := strconv.Atoi(code)
			if err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode {
				return true
			}
		}
	}

	return false
}

// IsSuccessCode reports whether code is a 2xx code or the 2XX wildcard.
func IsSuccessCode(code string) bool {
	return len(code) == StatusCodeLength && code[0] == '2' && ValidateStatusCode(code)
}

// SuccessResponseCode picks the response whose body describes a successful call:
// "200" when declared, else the first 2xx code or 2XX in declaration order,
// else "default". It returns "" when none apply.
func SuccessResponseCode(codes []string) string {
	for _, c := range codes {
		if c == "200" {
			return c
		}
	}
	for _, c := range codes {
		if IsSuccessCode(c) {
			return c
		}
	}
	for _, c := range codes {
		if c == "default" {
			return c
		}
	}
	return ""
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

// MediaKind classifies a media type by how a body of that type is encoded.
type MediaKind int

const (
	// MediaRaw is any media type sent and received as opaque bytes
	MediaRaw MediaKind = iota
	// MediaJSON covers application/json and +json suffixes
	MediaJSON
	// MediaForm is application/x-www-form-urlencoded
	MediaForm
	// MediaMultipart is multipart/form-data
	MediaMultipart
	// MediaText covers text/* types
	MediaText
)

// String returns the kind name.
func (k MediaKind) String() string {
	switch k {
	case MediaJSON:
		return "json"
	case MediaForm:
		return "form"
	case MediaMultipart:
		return "multipart"
	case MediaText:
		return "text"
	default:
		return "raw"
	}
}

// ClassifyMediaType returns the MediaKind for a media type, ignoring parameters.
func ClassifyMediaType(mediaType string) MediaKind {
	base := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	switch {
	case base == "application/json", strings.HasSuffix(base, "+json"):
		return MediaJSON
	case base == "application/x-www-form-urlencoded":
		return MediaForm
	case base == "multipart/form-data":
		return MediaMultipart
	case strings.HasPrefix(base, "text/"):
		return MediaText
	default:
		return MediaRaw
	}
}

// PreferredMediaType picks the media type a generated client should use from
// the declared content keys: JSON first, then form, multipart, text, then the
// first declared. It returns "" for an empty list.
func PreferredMediaType(mediaTypes []string) string {
	valid := make([]string, 0, len(mediaTypes))
	for _, mt := range mediaTypes {
		if IsValidMediaType(mt) {
			valid = append(valid, mt)
		}
	}
	for _, want := range []MediaKind{MediaJSON, MediaForm, MediaMultipart, MediaText} {
		for _, mt := range valid {
			if ClassifyMediaType(mt) == want {
				return mt
			}
		}
	}
	if len(valid) > 0 {
		return valid[0]
	}
	return ""
}
