package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/erraggy/oapistub/internal/issues"
	"github.com/erraggy/oapistub/internal/severity"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/oaserrors"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates output that is less precise than the source
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates input that could not be used
	SeverityError = severity.SeverityError
	// SeverityCritical indicates output could not be produced
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g. "getUser.ts", "get_user.go")
	Name string
	// Content is the generated source
	Content []byte
}

// GenerateResult contains the results of generating a stub
type GenerateResult struct {
	// Files contains the generated files
	Files []GeneratedFile
	// Language is the language that was emitted
	Language Language
	// FunctionName is the name of the emitted function
	FunctionName string
	// BaseURL is the server URL baked into the stub
	BaseURL string
	// Bundle is the resolved operation the stub was built from
	Bundle *Bundle
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the number of info messages
	InfoCount int
	// WarningCount is the number of warnings
	WarningCount int
	// CriticalCount is the number of critical issues
	CriticalCount int
	// Success is true when no critical issue was recorded
	Success bool
	// GenerateTime is the time taken to resolve and render
	GenerateTime time.Duration
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Source returns the content of the first generated file.
func (r *GenerateResult) Source() string {
	if len(r.Files) == 0 {
		return ""
	}
	return string(r.Files[0].Content)
}

// Generate emits a client stub for one operation.
//
// Example:
//
//	result, err := generator.Generate(ctx,
//	    generator.WithDocument(doc),
//	    generator.WithTarget(locator.Target{OperationID: "getUser"}),
//	    generator.WithLanguage(generator.LanguageTypeScript),
//	)
//
// Errors are returned only when no stub can be produced: invalid options, a
// missing document, an operation that cannot be located, or a reference
// failure under resolver.PolicyFailFast. Schemas that cannot be expressed are
// emitted as untyped values and reported in GenerateResult.Issues.
func Generate(ctx context.Context, opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	if cfg.doc == nil {
		return nil, &oaserrors.GenerationError{Message: "no document provided"}
	}
	start := time.Now()

	located := cfg.located
	if located == nil {
		located, err = locator.New(cfg.doc, locator.WithLogger(cfg.logger)).Locate(cfg.target)
		if err != nil {
			return nil, err
		}
	}

	bundle, err := BuildBundle(ctx, cfg.doc, located, cfg.specLocation, cfg.resolver)
	if err != nil {
		return nil, err
	}

	g := &stubGenerator{
		cfg:     cfg,
		bundle:  bundle,
		baseURL: BaseURL(cfg.doc, located, cfg.specLocation),
		opCtx: issues.OperationContext{
			Method:      bundle.Method,
			Path:        bundle.OriginalPath,
			OperationID: bundle.Operation.OperationID,
		},
	}
	file, err := g.generate()
	if err != nil {
		return nil, &oaserrors.GenerationError{Operation: bundle.String(), Cause: err}
	}

	result := &GenerateResult{
		Files:        []GeneratedFile{file},
		Language:     cfg.language,
		FunctionName: g.functionName(),
		BaseURL:      g.baseURL,
		Bundle:       bundle,
		Issues:       g.issues,
		GenerateTime: time.Since(start),
	}
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
		cfg.logger.Debug("generation issue", "issue", issue.String())
	}
	result.Success = result.CriticalCount == 0

	cfg.logger.Debug("generated stub",
		"operation", bundle.String(),
		"language", cfg.language.String(),
		"file", file.Name,
		"warnings", result.WarningCount,
		"unresolved", len(bundle.Report.Failures),
		"elapsed", result.GenerateTime,
	)
	return result, nil
}
