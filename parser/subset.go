package parser

// Subset returns a copy of doc whose paths hold only the entry matching route,
// either by exact template or by the operationId of its GET operation. The
// first match in declaration order wins. An empty route returns doc unchanged.
//
// The raw tree is shallow-copied at the root and at paths; path items and
// components are shared with doc, which is never modified.
func Subset(doc *Document, route string) *Document {
	if doc == nil || route == "" || doc.Paths == nil {
		return doc
	}

	matched := ""
	for template, item := range doc.Paths.All() {
		if template == route {
			matched = template
			break
		}
		if get := item.Operation("get"); get != nil && get.OperationID == route {
			matched = template
			break
		}
	}

	paths := NewObject(1)
	if matched != "" {
		if item, ok := doc.Paths.Get(matched); ok {
			paths.Set(matched, item.Raw)
		}
	}

	raw := doc.Raw.Clone()
	raw.Set("paths", paths)

	out := *doc
	out.Raw = raw
	out.Paths = buildPaths(paths)
	return &out
}
