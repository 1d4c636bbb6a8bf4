// Package pathtemplate compiles OpenAPI path templates such as
// "/users/{id}/posts/{postId}" into matchers for concrete request paths.
//
// Each {name} placeholder stands for exactly one non-empty path segment. Literal
// text is matched verbatim and the match is anchored at both ends, so
// "/users/{id}" matches "/users/42" but neither "/users/42/posts" nor
// "/api/users/42".
//
//	m, err := pathtemplate.Compile("/users/{id}")
//	if err != nil {
//	    return err
//	}
//	m.Test("/users/42")              // true
//	params, _ := m.Extract("/users/42") // map[id:42]
//
// Expand performs the inverse substitution with segment escaping:
//
//	p, _ := pathtemplate.Expand("/files/{name}", map[string]string{"name": "a b"})
//	// p == "/files/a%20b"
package pathtemplate
