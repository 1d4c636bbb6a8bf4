package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oapistub/internal/testutil"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
)

func decode(t *testing.T, src string) any {
	t.Helper()
	v, err := parser.DecodeValue([]byte(src))
	require.NoError(t, err)
	return v
}

func obj(t *testing.T, v any) *parser.Object {
	t.Helper()
	o, ok := parser.AsObject(v)
	require.True(t, ok, "expected *parser.Object, got %T", v)
	return o
}

func petstore(t *testing.T) (*parser.Document, Location) {
	t.Helper()
	doc := testutil.ParseYAML(t, testutil.PetstoreYAML)
	return doc, Location{Document: doc.Raw}
}

func TestResolveLocalRef(t *testing.T) {
	doc, base := petstore(t)
	item, _ := doc.Paths.Get("/pets")
	body := item.Operation("post").RequestBody

	out, rep, err := New().Resolve(context.Background(), body, base)
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Empty(t, rep.Fetched)

	schema := obj(t, out).Object("content").Object("application/json").Object("schema")
	require.NotNil(t, schema)
	assert.False(t, schema.Has("$ref"))
	assert.Equal(t, "object", schema.String("type"))
	assert.Equal(t, []string{"name", "tag", "status"}, schema.Object("properties").Keys())
	assert.Equal(t, []any{"available", "sold"}, schema.Object("properties").Object("status").Slice("enum"))
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	doc, base := petstore(t)
	before, err := json.Marshal(doc.Raw)
	require.NoError(t, err)

	_, _, err = New().Resolve(context.Background(), doc.Raw, base)
	require.NoError(t, err)

	after, err := json.Marshal(doc.Raw)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSelfReferenceTerminates(t *testing.T) {
	_, base := petstore(t)
	in := decode(t, `$ref: '#/components/schemas/User'`)

	out, rep, err := New().Resolve(context.Background(), in, base)
	require.NoError(t, err)

	props := obj(t, out).Object("properties")
	assert.Equal(t, []string{"id", "name", "email", "manager"}, props.Keys())
	manager, _ := props.Get("manager")
	assert.Equal(t, &Unresolved{Ref: "#/components/schemas/User", Reason: ReasonCircular}, manager)

	require.Len(t, rep.Failures, 1)
	assert.True(t, rep.HasCircular())
	assert.Equal(t, "#/components/schemas/User", rep.Failures[0].Location)
}

func TestMutualCycleTerminates(t *testing.T) {
	doc := testutil.ParseYAML(t, testutil.CyclicYAML)
	in := decode(t, `$ref: '#/components/schemas/A'`)

	out, rep, err := New().Resolve(context.Background(), in, Location{Document: doc.Raw})
	require.NoError(t, err)

	b := obj(t, out).Object("properties").Object("b")
	require.NotNil(t, b)
	a, _ := b.Object("properties").Get("a")
	assert.True(t, IsUnresolved(a))
	assert.True(t, rep.HasCircular())

	// fail-fast turns the cycle into an error
	_, _, err = New(WithPolicy(PolicyFailFast)).Resolve(context.Background(), in, Location{Document: doc.Raw})
	require.Error(t, err)
	var re *oaserrors.ReferenceError
	require.True(t, errors.As(err, &re))
	assert.True(t, re.IsCircular)
	assert.Equal(t, "local", re.RefType)
	assert.True(t, errors.Is(err, oaserrors.ErrCircularReference))
}

func TestResolveIsIdempotent(t *testing.T) {
	doc, base := petstore(t)
	r := New()

	once, _, err := r.Resolve(context.Background(), doc.Raw.Object("paths"), base)
	require.NoError(t, err)
	twice, rep, err := r.Resolve(context.Background(), once, base)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
	assert.True(t, rep.OK())

	plain := decode(t, "type: object\nproperties:\n  a: {type: string}\n")
	out, _, err := r.Resolve(context.Background(), plain, base)
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestSiblingKeysOverrideTarget(t *testing.T) {
	_, base := petstore(t)
	in := decode(t, `
$ref: '#/components/schemas/Pet'
description: A pet with overrides
required: [name, tag]
`)
	out, _, err := New().Resolve(context.Background(), in, base)
	require.NoError(t, err)
	o := obj(t, out)
	assert.Equal(t, []string{"type", "required", "properties", "description"}, o.Keys())
	assert.Equal(t, []any{"name", "tag"}, o.Slice("required"))
	assert.Equal(t, "A pet with overrides", o.String("description"))
}

func TestResolveListIsolatesFailures(t *testing.T) {
	_, base := petstore(t)
	items := decode(t, `
- $ref: '#/components/parameters/TraceID'
- $ref: '#/components/parameters/Missing'
- name: inline
  in: query
`).([]any)

	out, rep, err := New(WithConcurrency(3)).ResolveList(context.Background(), items, base)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "X-Trace-Id", obj(t, out[0]).String("name"))
	assert.Equal(t, &Unresolved{Ref: "#/components/parameters/Missing", Reason: ReasonNotFound}, out[1])
	assert.Equal(t, "inline", obj(t, out[2]).String("name"))

	require.Len(t, rep.Failures, 1)
	assert.Equal(t, ReasonNotFound, rep.Failures[0].Reason)
	assert.Error(t, rep.Failures[0].Err)
	assert.False(t, rep.OK())

	_, _, err = New(WithPolicy(PolicyFailFast)).ResolveList(context.Background(), items, base)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrReference))
}

func TestResolveListPreservesOrder(t *testing.T) {
	_, base := petstore(t)
	var items []any
	for i := range 20 {
		o := parser.NewObject(1)
		o.Set("name", fmt.Sprintf("p%02d", i))
		items = append(items, o)
	}
	out, _, err := New(WithConcurrency(8)).ResolveList(context.Background(), items, base)
	require.NoError(t, err)
	for i, v := range out {
		assert.Equal(t, fmt.Sprintf("p%02d", i), obj(t, v).String("name"))
	}
}

const commonYAML = `Thing:
  type: object
  properties:
    id:
      type: string
    owner:
      $ref: 'people.yaml#/Person'
`

const peopleYAML = `Person:
  type: object
  properties:
    name:
      type: string
`

func TestRemoteRefsFetchedOncePerCall(t *testing.T) {
	ds := testutil.NewDocServer(t, map[string]string{
		"/common.yaml": commonYAML,
		"/people.yaml": peopleYAML,
	})
	base := Location{Document: parser.NewObject(0), URL: ds.URL + "/openapi.yaml"}

	var items []any
	for range 10 {
		items = append(items, decode(t, `$ref: 'common.yaml#/Thing'`))
	}
	items = append(items, decode(t, `$ref: '`+ds.URL+`/people.yaml#/Person'`))

	out, rep, err := New(WithConcurrency(4)).ResolveList(context.Background(), items, base)
	require.NoError(t, err)
	require.True(t, rep.OK())

	for _, v := range out[:10] {
		owner := obj(t, v).Object("properties").Object("owner")
		require.NotNil(t, owner)
		assert.Equal(t, "object", owner.String("type"))
	}
	assert.Equal(t, 1, ds.Hits("/common.yaml"))
	assert.Equal(t, 1, ds.Hits("/people.yaml"))
	assert.Equal(t, []string{ds.URL + "/common.yaml", ds.URL + "/people.yaml"}, rep.Fetched)

	// a second call fetches again: nothing is cached across calls
	_, _, err = New().Resolve(context.Background(), items[0], base)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Hits("/common.yaml"))
}

func TestRemoteFailuresAreSoft(t *testing.T) {
	ds := testutil.NewDocServer(t, map[string]string{
		"/broken.yaml": "a: [unclosed",
	})
	base := Location{URL: ds.URL + "/openapi.yaml"}
	items := decode(t, `
- $ref: 'missing.yaml#/X'
- $ref: 'broken.yaml#/a'
- type: string
`).([]any)

	out, rep, err := New().ResolveList(context.Background(), items, base)
	require.NoError(t, err)
	assert.Equal(t, ReasonFetch, out[0].(*Unresolved).Reason)
	assert.Equal(t, ReasonParse, out[1].(*Unresolved).Reason)
	assert.Equal(t, "string", obj(t, out[2]).String("type"))
	assert.Len(t, rep.Failures, 2)
	assert.Empty(t, rep.Fetched)
}

func TestFetchTimeoutFoldsIntoSoftFailure(t *testing.T) {
	var calls atomic.Int32
	slow := parser.FetcherFunc(func(ctx context.Context, _ string) ([]byte, string, error) {
		calls.Add(1)
		<-ctx.Done()
		return nil, "", ctx.Err()
	})
	r := New(WithFetcher(slow), WithFetchTimeout(20*time.Millisecond))

	out, rep, err := r.Resolve(context.Background(), decode(t, `$ref: 'https://slow.example.com/a.yaml#/A'`), Location{})
	require.NoError(t, err)
	assert.Equal(t, ReasonFetch, out.(*Unresolved).Reason)
	require.Len(t, rep.Failures, 1)
	assert.ErrorIs(t, rep.Failures[0].Err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLazyBaseDocument(t *testing.T) {
	ds := testutil.NewDocServer(t, map[string]string{
		"/openapi.yaml": testutil.PetstoreYAML,
	})
	out, rep, err := New().Resolve(context.Background(),
		decode(t, `$ref: '#/components/parameters/TraceID'`),
		Location{URL: ds.URL + "/openapi.yaml"})
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Equal(t, "header", obj(t, out).String("in"))
	assert.Equal(t, 1, ds.Hits("/openapi.yaml"))
}

func TestFileRelativeRefs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.yaml"), []byte(commonYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "people.yaml"), []byte(peopleYAML), 0o600))

	out, rep, err := New().Resolve(context.Background(),
		decode(t, `$ref: './common.yaml#/Thing'`),
		Location{URL: filepath.Join(dir, "openapi.yaml")})
	require.NoError(t, err)
	require.True(t, rep.OK(), "%+v", rep.Failures)
	owner := obj(t, out).Object("properties").Object("owner")
	assert.Equal(t, []string{"name"}, owner.Object("properties").Keys())
}

func TestMaxDepth(t *testing.T) {
	root := decode(t, `
a: {$ref: '#/b'}
b: {$ref: '#/c'}
c: {$ref: '#/d'}
d: {type: string}
`)
	base := Location{Document: obj(t, root)}

	out, rep, err := New(WithMaxDepth(2)).Resolve(context.Background(), decode(t, `$ref: '#/a'`), base)
	require.NoError(t, err)
	assert.Equal(t, ReasonMaxDepth, out.(*Unresolved).Reason)
	assert.Len(t, rep.Failures, 1)

	out, _, err = New().Resolve(context.Background(), decode(t, `$ref: '#/a'`), base)
	require.NoError(t, err)
	assert.Equal(t, "string", obj(t, out).String("type"))
}

// sharedChain builds n schemas where S<i> points at S<i+1> from two
// properties, so the fully expanded tree doubles at every level.
func sharedChain(t *testing.T, n int) Location {
	t.Helper()
	var b strings.Builder
	b.WriteString("components:\n  schemas:\n")
	for i := range n {
		fmt.Fprintf(&b, "    S%d:\n      type: object\n      properties:\n", i)
		fmt.Fprintf(&b, "        left: {$ref: '#/components/schemas/S%d'}\n", i+1)
		fmt.Fprintf(&b, "        right: {$ref: '#/components/schemas/S%d'}\n", i+1)
	}
	fmt.Fprintf(&b, "    S%d: {type: string}\n", n)
	return Location{Document: obj(t, decode(t, b.String()))}
}

func TestSharedReferencesExpandOnce(t *testing.T) {
	base := sharedChain(t, 40)

	out, rep, err := New(WithMaxNodes(math.MaxInt)).Resolve(context.Background(),
		decode(t, `$ref: '#/components/schemas/S0'`), base)
	require.NoError(t, err)
	assert.True(t, rep.OK())

	node := obj(t, out)
	for range 40 {
		props := node.Object("properties")
		require.NotNil(t, props)
		left, right := props.Object("left"), props.Object("right")
		require.NotNil(t, left)
		assert.Same(t, left, right)
		node = left
	}
	assert.Equal(t, "string", node.String("type"))
}

func TestSharedExpansionKeepsCycleCuts(t *testing.T) {
	root := decode(t, `
A:
  properties:
    b: {$ref: '#/B'}
    again: {$ref: '#/B'}
B:
  properties:
    a: {$ref: '#/A'}
`)
	base := Location{Document: obj(t, root)}

	out, rep, err := New().Resolve(context.Background(), decode(t, `$ref: '#/A'`), base)
	require.NoError(t, err)
	props := obj(t, out).Object("properties")
	for _, name := range []string{"b", "again"} {
		v, _ := props.Object(name).Object("properties").Get("a")
		require.IsType(t, &Unresolved{}, v, name)
		assert.Equal(t, ReasonCircular, v.(*Unresolved).Reason)
	}
	assert.Len(t, rep.Failures, 2)

	// B's cuts all point back at B, so its expansion is shared and its
	// failures are reported for each use
	out, rep, err = New().Resolve(context.Background(), decode(t, `[{$ref: '#/B'}, {$ref: '#/B'}]`), base)
	require.NoError(t, err)
	list := out.([]any)
	assert.Same(t, list[0], list[1])
	assert.Len(t, rep.Failures, 4)
}

func TestNodeBudget(t *testing.T) {
	base := sharedChain(t, 64)

	start := time.Now()
	out, rep, err := New(WithMaxNodes(5000)).Resolve(context.Background(),
		decode(t, `$ref: '#/components/schemas/S0'`), base)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)

	assert.Equal(t, "object", obj(t, out).String("type"))
	require.NotEmpty(t, rep.Failures)
	for _, f := range rep.Failures {
		assert.Equal(t, ReasonTooLarge, f.Reason)
	}

	_, _, err = New(WithMaxNodes(5000), WithPolicy(PolicyFailFast)).Resolve(context.Background(),
		decode(t, `$ref: '#/components/schemas/S0'`), base)
	var refErr *oaserrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, ReasonTooLarge, refErr.Message)
}

func TestBaseDocumentIsNotRefetched(t *testing.T) {
	ds := testutil.NewDocServer(t, map[string]string{
		"/openapi.yaml": "components: {}\n",
		"/pets.yaml": `
Pet:
  type: object
  properties:
    owner: {$ref: 'openapi.yaml#/components/schemas/Owner'}
`,
	})
	root := decode(t, `
components:
  schemas:
    Owner: {type: object, properties: {name: {type: string}}}
`)
	base := Location{Document: obj(t, root), URL: ds.URL + "/openapi.yaml"}

	out, rep, err := New().Resolve(context.Background(), decode(t, `$ref: 'pets.yaml#/Pet'`), base)
	require.NoError(t, err)
	require.True(t, rep.OK(), "%v", rep.Failures)

	owner := obj(t, out).Object("properties").Object("owner")
	assert.Equal(t, []string{"name"}, owner.Object("properties").Keys())
	assert.Equal(t, 0, ds.Hits("/openapi.yaml"))
	assert.Equal(t, []string{ds.URL + "/pets.yaml"}, rep.Fetched)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New().Resolve(ctx, "x", Location{})
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = New().ResolveList(ctx, []any{"x"}, Location{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnresolvedMarshal(t *testing.T) {
	u := &Unresolved{Ref: "#/x", Reason: ReasonNotFound}
	data, err := json.Marshal(map[string]any{"schema": u})
	require.NoError(t, err)
	assert.Equal(t, `{"schema":{"x-unresolved":"#/x","x-reason":"not-found"}}`, string(data))
}

func TestReportMerge(t *testing.T) {
	a := &Report{Fetched: []string{"b"}}
	a.Merge(&Report{Failures: []Failure{{Ref: "#/x"}}, Fetched: []string{"a", "b"}})
	assert.Equal(t, []string{"a", "b"}, a.Fetched)
	assert.Len(t, a.Failures, 1)
	var nilReport *Report
	assert.True(t, nilReport.OK())
	assert.Equal(t, "isolate", PolicyIsolate.String())
	assert.Equal(t, "fail-fast", PolicyFailFast.String())
}
