package resolver

import (
	"encoding/json"
	"slices"

	"github.com/erraggy/oapistub/parser"
)

// Reasons recorded for soft-failed references.
const (
	ReasonCircular = "circular"
	ReasonMaxDepth = "max-depth"
	ReasonNotFound = "not-found"
	ReasonFetch    = "fetch-failed"
	ReasonParse    = "parse-failed"
	ReasonInvalid  = "invalid-ref"
	ReasonTooLarge = "too-large"
)

// Unresolved stands in for a reference that could not be expanded.
type Unresolved struct {
	// Ref is the $ref value as written
	Ref string
	// Reason is one of the Reason* constants
	Reason string
}

func (u *Unresolved) object() *parser.Object {
	o := parser.NewObject(2)
	o.Set("x-unresolved", u.Ref)
	o.Set("x-reason", u.Reason)
	return o
}

// MarshalJSON renders the marker as {"x-unresolved": ref, "x-reason": reason}.
func (u *Unresolved) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.object())
}

// MarshalYAML renders the marker like MarshalJSON.
func (u *Unresolved) MarshalYAML() (any, error) {
	return u.object(), nil
}

// IsUnresolved reports whether v is an unresolved marker.
func IsUnresolved(v any) bool {
	_, ok := v.(*Unresolved)
	return ok
}

// Failure describes one reference that could not be resolved.
type Failure struct {
	// Ref is the $ref value as written
	Ref string
	// Location is the absolute document#pointer the ref designates
	Location string
	// Reason is one of the Reason* constants
	Reason string
	// Err is the underlying error, if any
	Err error
}

// Report summarizes one resolve call.
type Report struct {
	// Failures lists soft-failed references, in walk order per input item
	Failures []Failure
	// Fetched lists the remote documents that were loaded, sorted
	Fetched []string
}

// OK reports whether every reference resolved.
func (r *Report) OK() bool {
	return r == nil || len(r.Failures) == 0
}

// HasCircular reports whether any reference was left unresolved because of a cycle.
func (r *Report) HasCircular() bool {
	if r == nil {
		return false
	}
	return slices.ContainsFunc(r.Failures, func(f Failure) bool {
		return f.Reason == ReasonCircular
	})
}

// Merge appends other's failures and fetched documents to r.
func (r *Report) Merge(other *Report) {
	if r == nil || other == nil {
		return
	}
	r.Failures = append(r.Failures, other.Failures...)
	for _, u := range other.Fetched {
		if !slices.Contains(r.Fetched, u) {
			r.Fetched = append(r.Fetched, u)
		}
	}
	slices.Sort(r.Fetched)
}
