// Package options validates option combinations shared by the document loaders.
package options

import (
	"strings"

	"github.com/erraggy/oapistub/oaserrors"
)

// Source is one way of supplying a document, e.g. a file, a URL or inline content.
type Source struct {
	Name string
	Set  bool
}

// Named pairs a source name with whether the caller supplied it.
func Named(name string, set bool) Source {
	return Source{Name: name, Set: set}
}

// ExactlyOne returns an *oaserrors.ConfigError for option "source" unless
// exactly one of sources is set.
func ExactlyOne(sources ...Source) error {
	var names, given []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			given = append(given, s.Name)
		}
	}
	switch len(given) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "source",
			Message: "one of " + alternatives(names) + " is required",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "source",
			Message: "only one of " + alternatives(names) + " may be given, got " + strings.Join(given, " and "),
		}
	}
}

// alternatives renders "a", "a or b", "a, b or c".
func alternatives(names []string) string {
	switch len(names) {
	case 0:
		return "an input"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
