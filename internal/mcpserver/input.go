package mcpserver

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oapistub/internal/options"
	"github.com/erraggy/oapistub/internal/specload"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or Swagger file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from; Swagger 2.0 documents are converted to OpenAPI 3"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// docCache keeps loaded documents for the lifetime of the server process.
// Entries expire after a per-input TTL; once full, the least recently used
// entry is dropped. The list front is the most recently used entry.
type docCache struct {
	mu       sync.Mutex
	limit    int
	order    *list.List
	byKey    map[string]*list.Element
	sweeping atomic.Bool
}

type cached struct {
	key     string
	spec    *specload.Spec
	expires time.Time
}

var specCache = newDocCache(cfg.CacheMaxSize)

func newDocCache(limit int) *docCache {
	return &docCache{limit: limit, order: list.New(), byKey: make(map[string]*list.Element)}
}

func (c *docCache) get(key string) *specload.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	entry := el.Value.(*cached)
	if time.Now().After(entry.expires) {
		c.remove(el)
		return nil
	}
	c.order.MoveToFront(el)
	return entry.spec
}

func (c *docCache) putWithTTL(key string, spec *specload.Spec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := &cached{key: key, spec: spec, expires: time.Now().Add(ttl)}
	if el, ok := c.byKey[key]; ok {
		el.Value = entry
		c.order.MoveToFront(el)
		return
	}
	for c.limit > 0 && c.order.Len() >= c.limit {
		c.remove(c.order.Back())
	}
	c.byKey[key] = c.order.PushFront(entry)
}

// remove must be called with mu held.
func (c *docCache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.byKey, el.Value.(*cached).key)
}

func (c *docCache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*cached).expires) {
			c.remove(el)
		}
		el = next
	}
}

// startSweeper drops expired entries every interval until ctx is done.
// At most one sweeper runs at a time.
func (c *docCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer c.sweeping.Store(false)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.sweep(now)
			}
		}
	}()
}

func (c *docCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.byKey)
}

func (c *docCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// cacheKey returns the cache key and TTL for the input; "" disables caching.
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]), cfg.CacheContentTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	default:
		return "", 0
	}
}

// load returns the document for the input, using the cache when enabled.
// URL inputs are fetched through the SSRF-safe client unless private
// addresses are allowed, and Swagger 2.0 URLs are converted.
func (s specInput) load(ctx context.Context) (*specload.Spec, error) {
	if err := options.ExactlyOne(
		options.Named("file", s.File != ""),
		options.Named("url", s.URL != ""),
		options.Named("content", s.Content != ""),
	); err != nil {
		return nil, err
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OAPISTUB_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := specload.Options{Config: cfg.Config, Convert: true, Logger: logger}
	var src specload.Source
	switch {
	case s.File != "":
		src.Location = s.File
	case s.URL != "":
		src.Location = s.URL
		if !cfg.AllowPrivateIPs {
			opts.HTTPClient = newSafeHTTPClient(cfg.FetchTimeout)
		}
	default:
		src.Content = []byte(s.Content)
	}

	spec, err := specload.Load(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.putWithTTL(key, spec, ttl)
	}
	return spec, nil
}
