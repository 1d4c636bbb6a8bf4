// Package resolver replaces $ref pointers inside decoded OpenAPI values with
// the content they point at.
//
// References may be local fragments ("#/components/schemas/Pet") or point at
// another document ("common.yaml#/Pet", "https://example.com/api.yaml#/X").
// Relative document references are resolved against the URL or file path of
// the document that contains them. Within one Resolve or ResolveList call each
// distinct document is fetched at most once; nothing is cached between calls.
//
// Resolution is depth-first and keeps an explicit stack of the locations being
// resolved. A reference back onto the stack is a cycle: instead of expanding it
// the resolver leaves an *Unresolved marker in its place. With the default
// PolicyIsolate, any other failure (missing target, fetch error, unparsable
// document, nesting beyond the depth limit) is handled the same way, so one bad
// branch never blanks out its siblings. PolicyFailFast turns the first failure
// into an *oaserrors.ReferenceError instead.
//
// Input values are never modified; every object and array on the way to a
// resolved value is copied.
//
//	r := resolver.New(resolver.WithConcurrency(4))
//	params, report, err := r.ResolveList(ctx, op.Parameters, resolver.Location{
//	    Document: doc.Raw,
//	    URL:      doc.SourcePath,
//	})
package resolver
