package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oapistub/internal/options"
	"github.com/erraggy/oapistub/oaserrors"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	url      *string
	reader   io.Reader
	bytes    []byte

	fetcher    Fetcher
	logger     Logger
	sourceName string
	validate   bool
}

// ParseWithOptions parses an OpenAPI document using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(ctx,
//	    parser.WithURL("https://example.com/openapi.json"),
//	    parser.WithValidation(true),
//	)
func ParseWithOptions(ctx context.Context, opts ...Option) (*Document, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("parser: invalid options: %w", err)
		}
	}

	if err := options.ExactlyOne(
		options.Named("file path", cfg.filePath != nil),
		options.Named("URL", cfg.url != nil),
		options.Named("reader", cfg.reader != nil),
		options.Named("bytes", cfg.bytes != nil),
	); err != nil {
		return nil, err
	}

	log := LoggerOrNop(cfg.logger)
	start := time.Now()

	var (
		data   []byte
		source = cfg.sourceName
		err    error
	)
	switch {
	case cfg.filePath != nil:
		if source == "" {
			source = *cfg.filePath
		}
		data, err = readFile(*cfg.filePath)
	case cfg.url != nil:
		if source == "" {
			source = *cfg.url
		}
		fetcher := cfg.fetcher
		if fetcher == nil {
			fetcher = NewDefaultFetcher()
		}
		data, _, err = fetcher.Fetch(ctx, *cfg.url)
	case cfg.reader != nil:
		data, err = io.ReadAll(io.LimitReader(cfg.reader, MaxDocumentSize+1))
		if err == nil && int64(len(data)) > MaxDocumentSize {
			err = sizeError(int64(len(data)))
		}
	default:
		data = cfg.bytes
	}
	if err != nil {
		return nil, fmt.Errorf("parser: reading %s: %w", sourceLabel(source), err)
	}

	doc, err := parse(data, source)
	if err != nil {
		return nil, err
	}
	if cfg.validate {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}

	log.Debug("parsed document",
		"source", sourceLabel(source),
		"format", string(doc.SourceFormat),
		"version", doc.Version(),
		"paths", doc.Paths.Len(),
		"elapsed", time.Since(start),
	)
	return doc, nil
}

// WithFilePath reads the document from a local file.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithURL fetches the document from an http(s) URL.
func WithURL(u string) Option {
	return func(cfg *parseConfig) error {
		cfg.url = &u
		return nil
	}
}

// WithReader reads the document from r.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("reader is nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes parses the given bytes.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.bytes = data
		return nil
	}
}

// WithFetcher sets the fetcher used for WithURL.
func WithFetcher(f Fetcher) Option {
	return func(cfg *parseConfig) error {
		cfg.fetcher = f
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides Document.SourcePath, e.g. for stdin input.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithValidation runs Document.Validate after parsing.
func WithValidation(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validate = enabled
		return nil
	}
}

// ParseBytes parses a document from YAML or JSON bytes.
func ParseBytes(data []byte) (*Document, error) {
	return parse(data, "")
}

// ParseFile parses a document from a local file.
func ParseFile(path string) (*Document, error) {
	return ParseWithOptions(context.Background(), WithFilePath(path))
}

// ParseURL fetches and parses a document. A nil fetcher uses the default.
func ParseURL(ctx context.Context, u string, fetcher Fetcher) (*Document, error) {
	return ParseWithOptions(ctx, WithURL(u), WithFetcher(fetcher))
}

func parse(data []byte, source string) (*Document, error) {
	root, err := DecodeValue(data)
	if err != nil {
		if pe, ok := err.(*oaserrors.ParseError); ok && pe.Path == "" {
			pe.Path = source
		}
		return nil, err
	}
	doc, err := NewDocument(root, source)
	if err != nil {
		return nil, err
	}
	doc.SourceFormat = DetectFormat(data)
	doc.SourceSize = int64(len(data))
	return doc, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxDocumentSize {
		return nil, sizeError(info.Size())
	}
	return os.ReadFile(path) //nolint:gosec // G304: path is caller-provided input
}

func sizeError(actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "document_size",
		Limit:        MaxDocumentSize,
		Actual:       actual,
	}
}

func sourceLabel(source string) string {
	if source == "" {
		return "<bytes>"
	}
	return source
}

// formatScalar renders a decoded scalar the way it appeared in the source.
func formatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// FormatScalar renders a decoded scalar (string, number, bool) as text.
func FormatScalar(v any) string {
	return formatScalar(v)
}
