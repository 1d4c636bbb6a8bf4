package locator

import (
	"strings"

	"github.com/erraggy/oapistub/internal/httputil"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/pathtemplate"
)

// Target identifies the requested operation.
type Target struct {
	// Path is a path template or a concrete request path. When OperationID is
	// empty it doubles as the operationId candidate.
	Path string
	// OperationID names the operation directly.
	OperationID string
	// Method restricts matching to one HTTP method (any case).
	Method string
}

// String returns a label for logs and errors.
func (t Target) String() string {
	if t.OperationID != "" {
		return t.OperationID
	}
	return t.Path
}

// normalizedID is the operationId candidate for tier 2.
func (t Target) normalizedID() string {
	if t.OperationID != "" {
		return t.OperationID
	}
	return strings.TrimPrefix(t.Path, "/")
}

// Tier records which resolution step produced a match.
type Tier int

const (
	// TierExactPath matched a paths key literally
	TierExactPath Tier = iota + 1
	// TierOperationID matched an operationId
	TierOperationID
	// TierPattern matched a path template against a concrete path
	TierPattern
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierExactPath:
		return "exact-path"
	case TierOperationID:
		return "operation-id"
	case TierPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Result is a located operation.
type Result struct {
	// Operation is the matched operation
	Operation *parser.Operation
	// PathItem is the path item declaring the operation
	PathItem *parser.PathItem
	// OriginalPath is the path template the operation is declared under
	OriginalPath string
	// Method is the upper-case HTTP method
	Method string
	// Tier is the resolution step that matched
	Tier Tier
	// PathParams holds the values captured from a concrete path by the
	// pattern tier; nil for the other tiers
	PathParams map[string]string
}

type compiledTemplate struct {
	template string
	matcher  *pathtemplate.Matcher
}

// Locator resolves targets against one document. Path templates are compiled
// once, in declaration order.
type Locator struct {
	doc      *parser.Document
	matchers []compiledTemplate
	logger   parser.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithLogger sets the logger used to report skipped templates and matches.
func WithLogger(l parser.Logger) Option {
	return func(loc *Locator) {
		loc.logger = l
	}
}

// New creates a Locator for doc.
func New(doc *parser.Document, opts ...Option) *Locator {
	loc := &Locator{doc: doc, logger: parser.NopLogger{}}
	for _, opt := range opts {
		opt(loc)
	}
	loc.logger = parser.Component(loc.logger, "locator")

	if doc == nil {
		return loc
	}
	for template := range doc.Paths.All() {
		m, err := pathtemplate.Compile(template)
		if err != nil {
			loc.logger.Debug("skipping malformed path template", "template", template, "error", err)
			continue
		}
		loc.matchers = append(loc.matchers, compiledTemplate{template: template, matcher: m})
	}
	return loc
}

// Locate finds the operation for target in doc.
func Locate(doc *parser.Document, target Target) (*Result, error) {
	return New(doc).Locate(target)
}

// Locate finds the operation for target.
func (loc *Locator) Locate(target Target) (*Result, error) {
	if loc.doc == nil {
		return nil, &oaserrors.DocumentError{Message: "document is nil"}
	}
	method := strings.ToLower(target.Method)
	if method != "" && !httputil.IsMethod(method) {
		return nil, &oaserrors.ConfigError{Option: "method", Value: target.Method, Message: "not an HTTP method an operation can declare"}
	}

	res := loc.byExactPath(target.Path, method)
	if res == nil {
		res = loc.byOperationID(target.normalizedID(), method)
	}
	if res == nil {
		res = loc.byPattern(target.Path, method)
	}
	if res == nil {
		return nil, &oaserrors.OperationNotFoundError{
			Target:       target.String(),
			Method:       method,
			OperationIDs: OperationIDs(loc.doc),
			Paths:        Paths(loc.doc),
		}
	}

	loc.logger.Debug("located operation",
		"target", target.String(),
		"tier", res.Tier.String(),
		"path", res.OriginalPath,
		"method", res.Method,
	)
	return res, nil
}

func (loc *Locator) byExactPath(path, method string) *Result {
	if path == "" {
		return nil
	}
	item, ok := loc.doc.Paths.Get(path)
	if !ok {
		return nil
	}
	if method == "" {
		method = httputil.MethodGet
	}
	op := item.Operation(method)
	if op == nil {
		return nil
	}
	return newResult(item, op, TierExactPath)
}

func (loc *Locator) byOperationID(id, method string) *Result {
	if id == "" {
		return nil
	}
	methods := httputil.OperationIDScanOrder
	if method != "" {
		methods = []string{method}
	}
	for _, item := range loc.doc.Paths.All() {
		for _, m := range methods {
			op := item.Operation(m)
			if op != nil && op.OperationID == id {
				return newResult(item, op, TierOperationID)
			}
		}
	}
	return nil
}

func (loc *Locator) byPattern(path, method string) *Result {
	if path == "" {
		return nil
	}
	for _, ct := range loc.matchers {
		item, _ := loc.doc.Paths.Get(ct.template)
		op := patternOperation(item, method)
		if op == nil {
			continue
		}
		values, ok := ct.matcher.Extract(path)
		if !ok {
			continue
		}
		res := newResult(item, op, TierPattern)
		res.PathParams = values
		return res
	}
	return nil
}

// patternOperation picks the one operation a template is tested with.
func patternOperation(item *parser.PathItem, method string) *parser.Operation {
	if method != "" {
		return item.Operation(method)
	}
	for _, m := range httputil.PatternMatchOrder {
		if op := item.Operation(m); op != nil {
			return op
		}
	}
	return nil
}

func newResult(item *parser.PathItem, op *parser.Operation, tier Tier) *Result {
	return &Result{
		Operation:    op,
		PathItem:     item,
		OriginalPath: item.Template,
		Method:       strings.ToUpper(op.Method),
		Tier:         tier,
	}
}
