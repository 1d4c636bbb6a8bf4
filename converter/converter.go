package converter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erraggy/oapistub"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
)

const (
	// DefaultEndpoint is the public Swagger converter service.
	DefaultEndpoint = "https://converter.swagger.io/api/convert"

	// DefaultTimeout bounds one conversion request.
	DefaultTimeout = 10 * time.Second
)

// Client calls a conversion service.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     parser.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the conversion endpoint. The document URL is passed in
// the "url" query parameter.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for conversion requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each conversion; zero or negative keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the oapistub User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(l parser.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.userAgent == "" {
		c.userAgent = oapistub.UserAgent()
	}
	c.logger = parser.Component(c.logger, "converter")
	return c
}

// NeedsConversion reports whether doc is not an OpenAPI 3.x document: it
// declares "swagger", or its "openapi" field is missing or not 3.x.
func NeedsConversion(doc *parser.Document) bool {
	if doc == nil {
		return false
	}
	return doc.IsSwagger() || !doc.IsOAS3()
}

// Convert asks the service to convert the document published at swaggerURL
// and parses the result. Any failure, including a timeout, is returned as a
// *oaserrors.ConversionError.
func (c *Client) Convert(ctx context.Context, swaggerURL string) (*parser.Document, error) {
	fail := func(message string, cause error) error {
		c.logger.Warn("conversion failed", "source", swaggerURL, "error", message)
		return &oaserrors.ConversionError{
			Source:        swaggerURL,
			SourceVersion: "2.0",
			Message:       message,
			Cause:         cause,
		}
	}
	if !parser.IsURL(swaggerURL) {
		return nil, fail("conversion requires an http(s) document URL", nil)
	}

	endpoint, err := c.requestURL(swaggerURL)
	if err != nil {
		return nil, fail("invalid converter endpoint", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fail("building request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:gosec // G107: endpoint is configured by the caller
	if err != nil {
		return nil, fail("request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fail(fmt.Sprintf("converter returned HTTP %d", resp.StatusCode), nil)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, parser.MaxDocumentSize+1))
	if err != nil {
		return nil, fail("reading response", err)
	}
	if int64(len(data)) > parser.MaxDocumentSize {
		return nil, fail(fmt.Sprintf("converted document exceeds %d bytes", parser.MaxDocumentSize), nil)
	}

	doc, err := parser.ParseWithOptions(ctx,
		parser.WithBytes(data),
		parser.WithSourceName(swaggerURL),
	)
	if err != nil {
		return nil, fail("converter returned an unreadable document", err)
	}
	if !doc.IsOAS3() {
		return nil, fail("converter did not return an OpenAPI 3.x document", nil)
	}

	c.logger.Debug("converted document",
		"source", swaggerURL,
		"version", doc.Version(),
		"elapsed", time.Since(start),
	)
	return doc, nil
}

// Ensure returns doc unchanged when it is already OpenAPI 3.x, otherwise the
// converted document. The bool reports whether conversion happened.
func (c *Client) Ensure(ctx context.Context, doc *parser.Document, location string) (*parser.Document, bool, error) {
	if !NeedsConversion(doc) {
		return doc, false, nil
	}
	converted, err := c.Convert(ctx, location)
	if err != nil {
		return doc, false, err
	}
	return converted, true, nil
}

func (c *Client) requestURL(swaggerURL string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("endpoint %q is not absolute", c.endpoint)
	}
	q := u.Query()
	q.Set("url", swaggerURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Endpoint returns the configured conversion endpoint.
func (c *Client) Endpoint() string {
	return strings.TrimSpace(c.endpoint)
}
