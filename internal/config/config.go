// Package config loads process-wide defaults from OAPISTUB_* environment
// variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oapistub/converter"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

// Config holds the defaults shared by the CLI and the MCP server.
type Config struct {
	// Fetching and resolution.
	FetchTimeout       time.Duration
	MaxRefDepth        int
	MaxNodes           int
	ResolveConcurrency int
	FailFast           bool
	MaxDocumentSize    int64

	// Legacy conversion.
	ConvertTimeout time.Duration
	ConverterURL   string

	// AllowPrivateIPs lets the MCP server fetch from private and loopback hosts.
	AllowPrivateIPs bool
}

// Load reads configuration from OAPISTUB_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func Load() *Config {
	return &Config{
		FetchTimeout:       EnvDuration("OAPISTUB_FETCH_TIMEOUT", parser.DefaultFetchTimeout),
		MaxRefDepth:        EnvInt("OAPISTUB_MAX_REF_DEPTH", resolver.DefaultMaxDepth),
		MaxNodes:           EnvInt("OAPISTUB_MAX_NODES", resolver.DefaultMaxNodes),
		ResolveConcurrency: EnvInt("OAPISTUB_RESOLVE_CONCURRENCY", 4),
		FailFast:           EnvBool("OAPISTUB_FAIL_FAST", false),
		MaxDocumentSize:    int64(EnvInt("OAPISTUB_MAX_DOCUMENT_SIZE", parser.MaxDocumentSize)),
		ConvertTimeout:     EnvDuration("OAPISTUB_CONVERT_TIMEOUT", converter.DefaultTimeout),
		ConverterURL:       EnvString("OAPISTUB_CONVERTER_URL", converter.DefaultEndpoint),
		AllowPrivateIPs:    EnvBool("OAPISTUB_ALLOW_PRIVATE_IPS", false),
	}
}

// Fetcher returns a fetcher honoring the fetch timeout and size limit.
func (c *Config) Fetcher() *parser.DefaultFetcher {
	f := parser.NewDefaultFetcher()
	f.Timeout = c.FetchTimeout
	f.MaxSize = c.MaxDocumentSize
	return f
}

// Resolver returns a resolver configured from c. A nil fetcher uses c.Fetcher().
func (c *Config) Resolver(fetcher parser.Fetcher, logger parser.Logger) *resolver.Resolver {
	if fetcher == nil {
		fetcher = c.Fetcher()
	}
	policy := resolver.PolicyIsolate
	if c.FailFast {
		policy = resolver.PolicyFailFast
	}
	return resolver.New(
		resolver.WithPolicy(policy),
		resolver.WithConcurrency(c.ResolveConcurrency),
		resolver.WithFetchTimeout(c.FetchTimeout),
		resolver.WithMaxDepth(c.MaxRefDepth),
		resolver.WithMaxNodes(c.MaxNodes),
		resolver.WithFetcher(fetcher),
		resolver.WithLogger(logger),
	)
}

// Converter returns a conversion client configured from c.
func (c *Config) Converter(logger parser.Logger, opts ...converter.Option) *converter.Client {
	base := []converter.Option{
		converter.WithEndpoint(c.ConverterURL),
		converter.WithTimeout(c.ConvertTimeout),
		converter.WithLogger(logger),
	}
	return converter.New(append(base, opts...)...)
}

// EnvString returns the variable, or fallback when unset.
func EnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvBool parses a boolean variable.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

// EnvInt parses a positive integer variable.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// EnvDuration parses a positive duration variable.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
