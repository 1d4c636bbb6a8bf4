package resolver

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
)

// walk copies v, expanding references. stack holds the document#pointer keys
// of the references currently being expanded on this path.
func (c *call) walk(ctx context.Context, v any, sc scope, stack []string, b *branch) (any, error) {
	switch t := v.(type) {
	case *parser.Object:
		if t == nil {
			return t, nil
		}
		if ref, ok := t.Get("$ref"); ok {
			if s, ok := ref.(string); ok {
				return c.expand(ctx, t, s, sc, stack, b)
			}
		}
		c.spend(b, 1)
		out := parser.NewObject(t.Len())
		for k, val := range t.All() {
			rv, err := c.walk(ctx, val, sc, stack, b)
			if err != nil {
				return nil, err
			}
			out.Set(k, rv)
		}
		return out, nil

	case []any:
		c.spend(b, 1)
		out := make([]any, len(t))
		for i, val := range t {
			rv, err := c.walk(ctx, val, sc, stack, b)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil

	default:
		return v, nil
	}
}

// expand resolves the reference held by obj. Keys next to $ref are resolved in
// the referring scope and laid over an object target.
func (c *call) expand(ctx context.Context, obj *parser.Object, ref string, sc scope, stack []string, b *branch) (any, error) {
	docRef, fragment := splitRef(ref)

	target := sc
	if docRef != "" {
		location, err := resolveDocument(sc.url, docRef)
		if err != nil {
			return c.fail(ref, ref, ReasonInvalid, err, b)
		}
		target = scope{url: location, lazy: true}
	}
	key := target.url + "#" + fragment

	if i := slices.Index(stack, key); i >= 0 {
		b.cut(i)
		return c.fail(ref, key, ReasonCircular, nil, b)
	}
	if len(stack) >= c.r.maxDepth {
		b.cut(-1)
		return c.fail(ref, key, ReasonMaxDepth, fmt.Errorf("reference chain exceeds %d", c.r.maxDepth), b)
	}

	var resolved any
	if e := c.reusable(key); e != nil && len(stack)+e.depth <= c.r.maxDepth {
		if !c.spend(b, e.nodes) {
			return c.tooLarge(ref, key, b)
		}
		b.failures = append(b.failures, e.failures...)
		b.peak = max(b.peak, len(stack)+e.depth)
		resolved = e.value
	} else {
		if c.nodes.Load() >= c.r.maxNodes {
			return c.tooLarge(ref, key, b)
		}
		if target.lazy {
			if err := ctx.Err(); err != nil {
				return c.fail(ref, key, ReasonFetch, err, b)
			}
			d := c.load(ctx, target.url)
			if d.err != nil {
				return c.fail(ref, key, d.reason, d.err, b)
			}
			target = scope{doc: d.root, url: target.url}
		}

		value, err := Lookup(target.doc, fragment)
		if err != nil {
			return c.fail(ref, key, ReasonNotFound, err, b)
		}

		outerLow, outerPeak := b.low, b.peak
		startNodes, startFailures := b.nodes, len(b.failures)
		b.low, b.peak = math.MaxInt, len(stack)+1

		// full slice expression so concurrent siblings never share a backing array
		next := append(stack[:len(stack):len(stack)], key)
		resolved, err = c.walk(ctx, value, target, next, b)
		if err != nil {
			return nil, err
		}
		// cuts at or below this reference hold wherever it is expanded
		if b.low >= len(stack) {
			c.remember(key, &expansion{
				value:    resolved,
				nodes:    b.nodes - startNodes,
				depth:    b.peak - len(stack),
				failures: slices.Clone(b.failures[startFailures:]),
			})
		}
		b.low, b.peak = min(outerLow, b.low), max(outerPeak, b.peak)
	}

	if obj.Len() == 1 {
		return resolved, nil
	}
	merged, ok := resolved.(*parser.Object)
	if !ok {
		return resolved, nil
	}
	merged = merged.Clone()
	for k, val := range obj.All() {
		if k == "$ref" {
			continue
		}
		rv, err := c.walk(ctx, val, sc, stack, b)
		if err != nil {
			return nil, err
		}
		merged.Set(k, rv)
	}
	return merged, nil
}

// tooLarge fails a reference once the call's node budget is spent.
func (c *call) tooLarge(ref, key string, b *branch) (any, error) {
	b.cut(-1)
	return c.fail(ref, key, ReasonTooLarge, fmt.Errorf("resolved output exceeds %d nodes", c.r.maxNodes), b)
}

// fail applies the failure policy to one reference.
func (c *call) fail(ref, key, reason string, cause error, b *branch) (any, error) {
	docRef, _ := splitRef(ref)
	if c.r.policy == PolicyFailFast {
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			RefType:    refType(docRef),
			IsCircular: reason == ReasonCircular,
			Message:    reason,
			Cause:      cause,
		}
	}

	b.failures = append(b.failures, Failure{Ref: ref, Location: key, Reason: reason, Err: cause})
	attrs := []any{"ref", ref, "reason", reason}
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	c.r.logger.Warn("unresolved reference", attrs...)
	return &Unresolved{Ref: ref, Reason: reason}, nil
}
