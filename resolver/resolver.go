package resolver

import (
	"context"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/erraggy/oapistub/parser"
)

const (
	// DefaultMaxDepth bounds how many references may be followed in one chain.
	DefaultMaxDepth = 100

	// DefaultMaxNodes bounds the objects and arrays one call may produce,
	// counting shared expansions once per place they appear.
	DefaultMaxNodes = 100_000

	// DefaultFetchTimeout bounds each remote document fetch.
	DefaultFetchTimeout = parser.DefaultFetchTimeout
)

// Policy decides what a failed reference does to the call.
type Policy int

const (
	// PolicyIsolate replaces a failed reference with an *Unresolved marker and
	// keeps going. This is the default.
	PolicyIsolate Policy = iota
	// PolicyFailFast aborts the call on the first failed reference.
	PolicyFailFast
)

// String returns the policy name.
func (p Policy) String() string {
	if p == PolicyFailFast {
		return "fail-fast"
	}
	return "isolate"
}

// Location identifies the document that local fragments are evaluated against.
type Location struct {
	// Document is the decoded root. When nil and URL is set, the document is
	// fetched on first use.
	Document *parser.Object
	// URL is where Document came from (URL or file path); relative document
	// references are resolved against it.
	URL string
}

// Resolver resolves $ref pointers. It holds configuration only and is safe for
// concurrent use; all per-call state lives in the call.
type Resolver struct {
	policy       Policy
	concurrency  int
	fetchTimeout time.Duration
	maxDepth     int
	maxNodes     int64
	fetcher      parser.Fetcher
	logger       parser.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy sets the failure policy.
func WithPolicy(p Policy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

// WithConcurrency sets how many list items ResolveList resolves at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

// WithFetchTimeout bounds each remote fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.fetchTimeout = d
	}
}

// WithMaxDepth bounds reference chains.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		r.maxDepth = n
	}
}

// WithMaxNodes bounds the size of one call's output. A reference whose
// expansion would exceed it is soft-failed with ReasonTooLarge.
func WithMaxNodes(n int) Option {
	return func(r *Resolver) {
		r.maxNodes = int64(n)
	}
}

// WithFetcher sets the fetcher for remote documents.
func WithFetcher(f parser.Fetcher) Option {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithLogger sets the logger.
func WithLogger(l parser.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		policy:       PolicyIsolate,
		concurrency:  1,
		fetchTimeout: DefaultFetchTimeout,
		maxDepth:     DefaultMaxDepth,
		maxNodes:     DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	if r.fetchTimeout <= 0 {
		r.fetchTimeout = DefaultFetchTimeout
	}
	if r.maxDepth <= 0 {
		r.maxDepth = DefaultMaxDepth
	}
	if r.maxNodes <= 0 {
		r.maxNodes = DefaultMaxNodes
	}
	if r.fetcher == nil {
		r.fetcher = parser.NewDefaultFetcher()
	}
	r.logger = parser.Component(r.logger, "resolver")
	return r
}

// Policy returns the configured failure policy.
func (r *Resolver) Policy() Policy {
	return r.policy
}

// Resolve returns a copy of value with every reachable $ref expanded.
//
// Under PolicyIsolate the error is non-nil only when ctx is done before the
// walk starts; failed references are reported in the Report. Under
// PolicyFailFast the first failure is returned as an *oaserrors.ReferenceError.
func (r *Resolver) Resolve(ctx context.Context, value any, base Location) (any, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	c := r.newCall(base)
	b := newBranch()
	out, err := c.walk(ctx, value, c.root, nil, b)
	if err != nil {
		return nil, nil, err
	}
	return out, c.report(b), nil
}

// ResolveList resolves each item independently and returns the results in
// input order. Items may be resolved concurrently (WithConcurrency); a failing
// item never affects the others under PolicyIsolate.
func (r *Resolver) ResolveList(ctx context.Context, items []any, base Location) ([]any, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	c := r.newCall(base)
	out := make([]any, len(items))
	branches := make([]*branch, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, item := range items {
		branches[i] = newBranch()
		g.Go(func() error {
			v, err := c.walk(gctx, item, c.root, nil, branches[i])
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return out, c.report(branches...), nil
}

// call is the state of one Resolve or ResolveList invocation.
type call struct {
	r    *Resolver
	root scope

	group singleflight.Group
	mu    sync.Mutex
	docs  map[string]*document
	order []string
	// done holds finished expansions that can be reused anywhere in the call
	done  map[string]*expansion
	nodes atomic.Int64
}

// scope is the document a value was found in.
type scope struct {
	doc any
	url string
	// lazy is set when doc must be loaded from url on first use
	lazy bool
}

// branch is the walk state of one input item. It is only touched by the
// goroutine resolving that item.
type branch struct {
	failures []Failure
	// low is the shallowest stack index a cut in the current expansion
	// depended on; -1 when the expansion depended on its depth or the budget.
	low int
	// peak is the deepest stack length reached in the current expansion.
	peak int
	// nodes counts what this branch produced.
	nodes int64
}

func newBranch() *branch {
	return &branch{low: math.MaxInt}
}

// cut records that the current expansion depends on stack index i.
func (b *branch) cut(i int) {
	b.low = min(b.low, i)
}

// expansion is a finished reference expansion that holds no cut to a
// reference outside itself.
type expansion struct {
	value    any
	nodes    int64
	depth    int
	failures []Failure
}

type document struct {
	root   any
	reason string
	err    error
}

func (r *Resolver) newCall(base Location) *call {
	c := &call{r: r, docs: make(map[string]*document), done: make(map[string]*expansion)}
	c.root = scope{url: base.URL}
	if base.Document != nil {
		c.root.doc = base.Document
		if base.URL != "" {
			// refs naming the base document by URL reuse it
			c.docs[base.URL] = &document{root: base.Document}
		}
	} else if base.URL != "" {
		c.root.lazy = true
	}
	return c
}

func (c *call) report(branches ...*branch) *Report {
	rep := &Report{}
	for _, b := range branches {
		rep.Failures = append(rep.Failures, b.failures...)
	}
	c.mu.Lock()
	rep.Fetched = slices.Clone(c.order)
	c.mu.Unlock()
	slices.Sort(rep.Fetched)
	return rep
}

// spend adds n produced nodes to the call and b. It reports false once the
// call's budget is exhausted.
func (c *call) spend(b *branch, n int64) bool {
	b.nodes += n
	return c.nodes.Add(n) <= c.r.maxNodes
}

func (c *call) reusable(key string) *expansion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done[key]
}

func (c *call) remember(key string, e *expansion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.done[key]; !ok {
		c.done[key] = e
	}
}

// load fetches and decodes a document once per call.
func (c *call) load(ctx context.Context, location string) *document {
	c.mu.Lock()
	if d, ok := c.docs[location]; ok {
		c.mu.Unlock()
		return d
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(location, func() (any, error) {
		c.mu.Lock()
		if d, ok := c.docs[location]; ok {
			c.mu.Unlock()
			return d, nil
		}
		c.mu.Unlock()

		d := c.fetch(ctx, location)

		c.mu.Lock()
		c.docs[location] = d
		if d.err == nil {
			c.order = append(c.order, location)
		}
		c.mu.Unlock()
		return d, nil
	})
	return v.(*document)
}

func (c *call) fetch(ctx context.Context, location string) *document {
	fctx, cancel := context.WithTimeout(ctx, c.r.fetchTimeout)
	defer cancel()

	start := time.Now()
	data, _, err := c.r.fetcher.Fetch(fctx, location)
	if err != nil {
		return &document{reason: ReasonFetch, err: err}
	}
	root, err := parser.DecodeValue(data)
	if err != nil {
		return &document{reason: ReasonParse, err: err}
	}
	c.r.logger.Debug("fetched referenced document",
		"url", location,
		"bytes", len(data),
		"elapsed", time.Since(start),
	)
	return &document{root: root}
}
