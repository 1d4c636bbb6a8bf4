package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single lowercase letter", input: "a", want: "A"},
		{name: "snake_case", input: "get_user_by_id", want: "GetUserById"},
		{name: "kebab-case", input: "api-client", want: "ApiClient"},
		{name: "dots", input: "com.example.api", want: "ComExampleApi"},
		{name: "path template", input: "/users/{id}/posts", want: "UsersIdPosts"},
		{name: "spaces", input: "list all pets", want: "ListAllPets"},
		{name: "already PascalCase", input: "UserProfile", want: "UserProfile"},
		{name: "camelCase", input: "userProfile", want: "UserProfile"},
		{name: "all caps kept", input: "API", want: "API"},
		{name: "unicode", input: "über_name", want: "ÜberName"},
		{name: "only separators", input: "--__", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "userProfile", ToCamelCase("user_profile"))
	assert.Equal(t, "getUser", ToCamelCase("GetUser"))
	assert.Equal(t, "", ToCamelCase(""))
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		snake string
	}{
		{"getUserById", "get_user_by_id"},
		{"UserProfile", "user_profile"},
		{"list pets", "list_pets"},
		{"a--b", "a_b"},
		{"trailing-", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.snake, ToSnakeCase(tt.input))
		})
	}
}

func TestGoIdentifiers(t *testing.T) {
	assert.Equal(t, "UserId", GoExported("user-id", "Field"))
	assert.Equal(t, "X2fa", GoExported("2fa", "Field"))
	assert.Equal(t, "Field", GoExported("!!", "Field"))
	assert.Equal(t, "XTraceId", GoExported("X-Trace-Id", "Field"))

	assert.Equal(t, "type_", GoUnexported("Type", "v"))
	assert.Equal(t, "userId", GoUnexported("user_id", "v"))
	assert.Equal(t, "x2fa", GoUnexported("2fa", "v"))
	assert.Equal(t, "v", GoUnexported("", "v"))
}

func TestJSIdentifiers(t *testing.T) {
	assert.Equal(t, "listPets", JSIdentifier("list-pets", "operation"))
	assert.Equal(t, "delete_", JSIdentifier("delete", "operation"))
	assert.Equal(t, "_404Handler", JSIdentifier("404 handler", "operation"))
	assert.Equal(t, "operation", JSIdentifier("", "operation"))

	assert.True(t, IsJSIdentifier("name"))
	assert.True(t, IsJSIdentifier("$ref"))
	assert.True(t, IsJSIdentifier("_x1"))
	assert.False(t, IsJSIdentifier("1x"))
	assert.False(t, IsJSIdentifier("X-Trace-Id"))
	assert.False(t, IsJSIdentifier(""))

	assert.Equal(t, "name", JSPropertyKey("name"))
	assert.Equal(t, `"X-Trace-Id"`, JSPropertyKey("X-Trace-Id"))
	assert.Equal(t, `"say \"hi\""`, QuoteJS(`say "hi"`))
}
