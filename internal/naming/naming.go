package naming

import (
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// words splits s at every rune that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ToPascalCase converts a string to PascalCase.
// Any run of non-alphanumeric runes separates words; the first letter of each
// word is title-cased and the rest is kept as written.
// Example: "user_profile" -> "UserProfile"
// Example: "/users/{id}" -> "UsersId"
func ToPascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, w := range words(s) {
		runes := []rune(w)
		b.WriteString(titleCaser.String(string(runes[0])))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "user_profile" -> "userProfile"
// Example: "GetUser" -> "getUser"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToSnakeCase converts a string to snake_case.
// Uppercase letters start a new word; other separators become underscores.
// Example: "getUserById" -> "get_user_by_id"
func ToSnakeCase(s string) string {
	var b strings.Builder
	prevSep := true
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if !prevSep {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevSep = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevSep = false
		default:
			if !prevSep {
				b.WriteRune('_')
			}
			prevSep = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// goKeywords are the Go keywords; predeclared identifiers may be shadowed and are not listed.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// jsReserved are words that cannot name a JavaScript binding.
var jsReserved = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"implements": true, "import": true, "in": true, "instanceof": true, "interface": true,
	"let": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true, "yield": true,
}

// GoExported returns an exported Go identifier for s.
// Example: "user-id" -> "UserId", "2fa" -> "X2fa", "" -> fallback
func GoExported(s, fallback string) string {
	name := ToPascalCase(s)
	if name == "" {
		return fallback
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "X" + name
	}
	return name
}

// GoUnexported returns an unexported Go identifier for s, escaping keywords.
// Example: "Type" -> "type_"
func GoUnexported(s, fallback string) string {
	name := ToCamelCase(s)
	if name == "" {
		return fallback
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "x" + name
	}
	if goKeywords[name] {
		name += "_"
	}
	return name
}

// JSIdentifier returns a camelCase JavaScript binding name for s.
// Example: "list-pets" -> "listPets", "delete" -> "delete_"
func JSIdentifier(s, fallback string) string {
	name := ToCamelCase(s)
	if name == "" {
		return fallback
	}
	if unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	if jsReserved[name] {
		name += "_"
	}
	return name
}

// IsJSIdentifier reports whether s can be written as an unquoted JavaScript
// property name.
func IsJSIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// QuoteJS returns s as a double-quoted JavaScript string literal.
func QuoteJS(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		return `""`
	}
	return string(data)
}

// JSPropertyKey returns s unquoted when it is a valid identifier, quoted otherwise.
// Example: "name" -> name, "X-Trace-Id" -> "X-Trace-Id"
func JSPropertyKey(s string) string {
	if IsJSIdentifier(s) {
		return s
	}
	return QuoteJS(s)
}
