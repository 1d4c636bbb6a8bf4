// Package translator renders schema nodes as type descriptions.
//
// Three dialects are supported:
//
//   - DialectOutline: a compact structural outline, e.g. array<object> of { ... },
//     used for human-readable operation summaries
//   - DialectTypeScript: TypeScript type expressions, used for generated clients
//   - DialectGo: Go type expressions (struct, slice, map and scalar types)
//
// Rendering never fails. Fragments a dialect cannot express are rendered as
// that dialect's top type (unknown, any) and recorded as issues:
//
//	r := translator.New(translator.DialectTypeScript)
//	out := r.Render(schema.FromValue(resolved), 0)
//	for _, issue := range r.Issues() {
//	    fmt.Println(issue)
//	}
//
// Output is deterministic: properties keep their declaration order and
// indentation depends only on the indent argument.
package translator
