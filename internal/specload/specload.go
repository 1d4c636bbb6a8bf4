// Package specload loads the document a command or tool works on: from a
// file, a URL, stdin or inline content, converting Swagger 2.0 input to
// OpenAPI 3.x when the document has a URL the converter can fetch.
package specload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oapistub/converter"
	"github.com/erraggy/oapistub/internal/config"
	"github.com/erraggy/oapistub/internal/options"
	"github.com/erraggy/oapistub/oaserrors"
	"github.com/erraggy/oapistub/parser"
)

// Stdin is the location that reads the document from Options.Stdin.
const Stdin = "-"

// Source identifies a document. Exactly one of Location or Content is set.
type Source struct {
	// Location is a file path, an http(s) URL or Stdin
	Location string
	// Content is an inline YAML or JSON document
	Content []byte
}

// Options controls loading.
type Options struct {
	// Config supplies fetch and conversion defaults; nil uses config.Load()
	Config *config.Config
	// HTTPClient overrides the client used for document fetches
	HTTPClient *http.Client
	// Convert enables Swagger 2.0 conversion
	Convert bool
	// ConverterOptions are appended to the options derived from Config
	ConverterOptions []converter.Option
	// Stdin is read when Location is Stdin
	Stdin  io.Reader
	Logger parser.Logger
}

// Spec is a loaded document.
type Spec struct {
	Doc *parser.Document
	// Location is where the document came from; "" for inline content
	Location string
	// Converted reports that Doc is the converter's output
	Converted bool
	// Fetcher is the fetcher used for the document, reusable for its references
	Fetcher parser.Fetcher
}

// Load reads, parses and, when needed and enabled, converts a document.
// A failed conversion keeps the original document and logs a warning.
func Load(ctx context.Context, src Source, opts Options) (*Spec, error) {
	if err := options.ExactlyOne(
		options.Named("location", src.Location != ""),
		options.Named("content", src.Content != nil),
	); err != nil {
		return nil, err
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Load()
	}
	log := parser.LoggerOrNop(opts.Logger)

	fetcher := cfg.Fetcher()
	if opts.HTTPClient != nil {
		fetcher.Client = opts.HTTPClient
	}

	parseOpts := []parser.Option{parser.WithLogger(log), parser.WithFetcher(fetcher)}
	switch {
	case src.Content != nil:
		parseOpts = append(parseOpts, parser.WithBytes(src.Content))
	case src.Location == Stdin:
		if opts.Stdin == nil {
			return nil, &oaserrors.ConfigError{Option: "stdin", Message: "no standard input available"}
		}
		parseOpts = append(parseOpts, parser.WithReader(opts.Stdin), parser.WithSourceName("<stdin>"))
	case parser.IsURL(src.Location):
		parseOpts = append(parseOpts, parser.WithURL(src.Location))
	default:
		parseOpts = append(parseOpts, parser.WithFilePath(src.Location))
	}

	doc, err := parser.ParseWithOptions(ctx, parseOpts...)
	if err != nil {
		return nil, err
	}
	spec := &Spec{Doc: doc, Location: doc.SourcePath, Fetcher: fetcher}

	if opts.Convert && converter.NeedsConversion(doc) && parser.IsURL(spec.Location) {
		convOpts := opts.ConverterOptions
		if opts.HTTPClient != nil {
			convOpts = append([]converter.Option{converter.WithHTTPClient(opts.HTTPClient)}, convOpts...)
		}
		converted, ok, err := cfg.Converter(log, convOpts...).Ensure(ctx, doc, spec.Location)
		switch {
		case err != nil:
			log.Warn("using unconverted document", "source", spec.Location, "error", err)
		case ok:
			spec.Doc = converted
			spec.Converted = true
		}
	}

	if err := spec.Doc.Validate(); err != nil {
		var de *oaserrors.DocumentError
		if errors.As(err, &de) && de.Source == "" {
			de.Source = spec.Location
		}
		return nil, fmt.Errorf("specload: %w", err)
	}
	return spec, nil
}
