// Package severity provides the severity levels attached to translator and
// generator issues.
//
// Levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates how much an issue degrades the produced output.
type Severity int

const (
	// SeverityInfo is a notice about a choice the tool made on the caller's behalf.
	SeverityInfo Severity = iota

	// SeverityWarning marks output that was produced but is less precise than
	// the source, e.g. a schema rendered as an unknown type.
	SeverityWarning

	// SeverityError marks a part of the input that could not be used at all.
	SeverityError

	// SeverityCritical marks a failure that prevented output from being produced.
	SeverityCritical
)

// String returns the lowercase name of the level, or "unknown".
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}

// Parse maps a level name back to its Severity.
func Parse(name string) (Severity, bool) {
	for _, s := range []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical} {
		if s.String() == name {
			return s, true
		}
	}
	return SeverityInfo, false
}
