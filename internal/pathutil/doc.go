// Package pathutil builds the dotted locations reported with translation and
// generation issues, and validates output paths before files are written.
//
// [PathBuilder] uses push/pop semantics so recursive renderers only pay for
// the joined string when an issue is actually recorded:
//
//	var p pathutil.PathBuilder
//	p.Push("response.body")
//	p.Push("oneOf")
//	p.PushIndex(1)
//	p.Push("name")
//	p.String() // "response.body.oneOf[1].name"
//
// [SanitizeOutputPath] and [SanitizeOutputDir] clean a user-supplied path and
// reject symlinks.
package pathutil
