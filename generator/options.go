package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

// Language selects the emitted source language.
type Language int

const (
	// LanguageTypeScript emits a TypeScript module with request and response types
	LanguageTypeScript Language = iota
	// LanguageJavaScript emits the same module without any type annotations
	LanguageJavaScript
	// LanguageGo emits a Go file using only the standard library
	LanguageGo
)

// String returns the language name.
func (l Language) String() string {
	switch l {
	case LanguageJavaScript:
		return "javascript"
	case LanguageGo:
		return "go"
	default:
		return "typescript"
	}
}

// Extension returns the file extension, including the dot.
func (l Language) Extension() string {
	switch l {
	case LanguageJavaScript:
		return ".js"
	case LanguageGo:
		return ".go"
	default:
		return ".ts"
	}
}

// ParseLanguage maps ts, typescript, js, javascript and go to a Language.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ts", "typescript":
		return LanguageTypeScript, nil
	case "js", "javascript":
		return LanguageJavaScript, nil
	case "go", "golang":
		return LanguageGo, nil
	default:
		return LanguageTypeScript, fmt.Errorf("unknown language %q (want ts, js or go)", name)
	}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	doc          *parser.Document
	located      *locator.Result
	target       locator.Target
	specLocation string
	language     Language
	packageName  string
	functionName string
	resolver     *resolver.Resolver
	logger       parser.Logger
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		language:    LanguageTypeScript,
		packageName: "client",
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = parser.LoggerOrNop(cfg.logger)
	if cfg.resolver == nil {
		cfg.resolver = resolver.New(resolver.WithLogger(cfg.logger))
	}
	return cfg, nil
}

// WithDocument sets the parsed document to generate from.
func WithDocument(doc *parser.Document) Option {
	return func(cfg *generateConfig) error {
		if doc == nil {
			return fmt.Errorf("document is nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithTarget sets the operation to locate (path, operationId and method).
func WithTarget(target locator.Target) Option {
	return func(cfg *generateConfig) error {
		cfg.target = target
		return nil
	}
}

// WithOriginalPath targets the operation declared under the path template p.
func WithOriginalPath(p string) Option {
	return func(cfg *generateConfig) error {
		cfg.target.Path = p
		return nil
	}
}

// WithMethod sets the HTTP method of the target operation.
func WithMethod(method string) Option {
	return func(cfg *generateConfig) error {
		cfg.target.Method = method
		return nil
	}
}

// WithOperation uses an operation that was already located, skipping lookup.
func WithOperation(result *locator.Result) Option {
	return func(cfg *generateConfig) error {
		if result == nil || result.Operation == nil {
			return fmt.Errorf("located operation is nil")
		}
		cfg.located = result
		return nil
	}
}

// WithSpecLocation sets the URL or path the document was loaded from. It is
// the base for relative references and relative server URLs.
func WithSpecLocation(location string) Option {
	return func(cfg *generateConfig) error {
		cfg.specLocation = location
		return nil
	}
}

// WithLanguage sets the output language (default LanguageTypeScript).
func WithLanguage(l Language) Option {
	return func(cfg *generateConfig) error {
		if l < LanguageTypeScript || l > LanguageGo {
			return fmt.Errorf("unsupported language %d", int(l))
		}
		cfg.language = l
		return nil
	}
}

// WithPackageName sets the Go package name (default "client").
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return fmt.Errorf("package name cannot be empty")
		}
		cfg.packageName = name
		return nil
	}
}

// WithFunctionName overrides the name derived from the operationId.
func WithFunctionName(name string) Option {
	return func(cfg *generateConfig) error {
		cfg.functionName = name
		return nil
	}
}

// WithResolver sets the resolver used to expand references.
func WithResolver(r *resolver.Resolver) Option {
	return func(cfg *generateConfig) error {
		cfg.resolver = r
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}
