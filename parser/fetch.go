package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erraggy/oapistub"
)

const (
	// MaxDocumentSize is the maximum size (in bytes) accepted for a document,
	// whether primary or fetched for a remote $ref.
	MaxDocumentSize = 10 * 1024 * 1024 // 10MB

	// DefaultFetchTimeout bounds a single remote fetch.
	DefaultFetchTimeout = 10 * time.Second
)

// Fetcher retrieves the bytes of a document identified by a URL or path.
// It returns the body and the Content-Type (empty when unknown).
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, location string) ([]byte, string, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, location string) ([]byte, string, error) {
	return f(ctx, location)
}

// DefaultFetcher fetches http(s) URLs with net/http and reads everything else
// (plain paths and file:// URLs) from the local filesystem.
type DefaultFetcher struct {
	// Client is the HTTP client; nil uses a client with Timeout
	Client *http.Client
	// Timeout bounds each fetch; zero uses DefaultFetchTimeout
	Timeout time.Duration
	// UserAgent overrides the default oapistub User-Agent
	UserAgent string
	// MaxSize overrides MaxDocumentSize when positive
	MaxSize int64
	// AllowFiles enables local file reads; false restricts fetching to http(s)
	AllowFiles bool
}

// NewDefaultFetcher returns a fetcher with default limits that can read local files.
func NewDefaultFetcher() *DefaultFetcher {
	return &DefaultFetcher{AllowFiles: true}
}

// Ensure DefaultFetcher implements Fetcher at compile time.
var _ Fetcher = (*DefaultFetcher)(nil)

// Fetch implements Fetcher.
func (f *DefaultFetcher) Fetch(ctx context.Context, location string) ([]byte, string, error) {
	if IsURL(location) {
		return f.fetchHTTP(ctx, location)
	}
	if !f.AllowFiles {
		return nil, "", fmt.Errorf("parser: local file references are disabled: %s", location)
	}
	path := strings.TrimPrefix(location, "file://")
	data, err := readFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read %s: %w", path, err)
	}
	return data, "", nil
}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, urlStr string) ([]byte, string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}
	userAgent := f.UserAgent
	if userAgent == "" {
		userAgent = oapistub.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, text/yaml;q=0.9, */*;q=0.5")

	resp, err := client.Do(req) //nolint:gosec // G107: URL is caller-provided input
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limit := f.MaxSize
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("parser: response from %s exceeds %d bytes", urlStr, limit)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// IsURL determines if the given location is an http:// or https:// URL
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
