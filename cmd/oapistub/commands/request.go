package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub/generator"
	"github.com/erraggy/oapistub/internal/specload"
	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/schema"
	"github.com/erraggy/oapistub/translator"
)

type parameterOutput struct {
	Name        string `json:"name" yaml:"name"`
	In          string `json:"in" yaml:"in"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type bodyOutput struct {
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

type unresolvedOutput struct {
	Ref    string `json:"ref" yaml:"ref"`
	Reason string `json:"reason" yaml:"reason"`
}

type requestOutput struct {
	Method      string             `json:"method" yaml:"method"`
	Path        string             `json:"path" yaml:"path"`
	OperationID string             `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	BaseURL     string             `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Parameters  []parameterOutput  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Body        *bodyOutput        `json:"body,omitempty" yaml:"body,omitempty"`
	Skipped     []string           `json:"skippedParameters,omitempty" yaml:"skippedParameters,omitempty"`
	Unresolved  []unresolvedOutput `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

type responseOutput struct {
	Method      string             `json:"method" yaml:"method"`
	Path        string             `json:"path" yaml:"path"`
	Status      string             `json:"status,omitempty" yaml:"status,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	ContentType string             `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Schema      any                `json:"schema,omitempty" yaml:"schema,omitempty"`
	Unresolved  []unresolvedOutput `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// operationFlags are shared by commands that work on one located operation.
type operationFlags struct {
	method string
}

func (f *operationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.method, "method", "m", "", "HTTP method of the operation (any case)")
}

// bundle loads the document, locates the operation and resolves it.
func (f *operationFlags) bundle(cmd *cobra.Command, args []string) (*appState, *specload.Spec, *locator.Result, *generator.Bundle, error) {
	st, err := getAppState(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	spec, err := st.loadSpec(cmd, args[0])
	if err != nil {
		return nil, nil, nil, nil, err
	}
	located, err := locator.New(spec.Doc, locator.WithLogger(st.logger)).
		Locate(locator.Target{Path: args[1], Method: f.method})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	b, err := generator.BuildBundle(cmd.Context(), spec.Doc, located, spec.Location, st.resolver(spec))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return st, spec, located, b, nil
}

func unresolvedList(b *generator.Bundle) []unresolvedOutput {
	var out []unresolvedOutput
	for _, f := range b.Report.Failures {
		out = append(out, unresolvedOutput{Ref: f.Ref, Reason: f.Reason})
	}
	return out
}

// outline renders a resolved schema as indented text.
func outline(s any) string {
	if s == nil {
		return "unknown"
	}
	return translator.Render(schema.FromValue(s), 1)
}

func newRequestCmd() *cobra.Command {
	var flags operationFlags

	cmd := &cobra.Command{
		Use:   "request <spec> <operationId|path>",
		Short: "Show the resolved parameters and request body of an operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, spec, located, b, err := flags.bundle(cmd, args)
			if err != nil {
				return err
			}

			out := requestOutput{
				Method:      b.Method,
				Path:        b.OriginalPath,
				OperationID: b.Operation.OperationID,
				BaseURL:     generator.BaseURL(spec.Doc, located, spec.Location),
				Skipped:     b.SkippedParameters,
				Unresolved:  unresolvedList(b),
			}
			for _, p := range b.Parameters {
				out.Parameters = append(out.Parameters, parameterOutput{
					Name:        p.Name,
					In:          p.In,
					Required:    p.Required,
					Description: p.Description,
					Schema:      p.Schema,
				})
			}
			if body := b.RequestBody; body != nil {
				out.Body = &bodyOutput{ContentType: body.ContentType, Required: body.Required, Schema: body.Schema}
			}
			if st.opts.Format != FormatText {
				return OutputStructured(cmd.OutOrStdout(), out, st.opts.Format)
			}

			w := cmd.OutOrStdout()
			Writef(w, "%s %s\n", out.Method, out.Path)
			if out.BaseURL != "" {
				Writef(w, "Base URL: %s\n", out.BaseURL)
			}
			if len(out.Parameters) > 0 {
				Writef(w, "Parameters:\n")
				for _, p := range out.Parameters {
					req := ""
					if p.Required {
						req = " (required)"
					}
					Writef(w, "  %s %s%s: %s\n", p.In, p.Name, req, outline(p.Schema))
				}
			}
			if out.Body != nil {
				Writef(w, "Body (%s):\n  %s\n", out.Body.ContentType, outline(out.Body.Schema))
			}
			printUnresolved(cmd, out.Skipped, out.Unresolved)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newResponseCmd() *cobra.Command {
	var flags operationFlags

	cmd := &cobra.Command{
		Use:   "response <spec> <operationId|path>",
		Short: "Show the resolved success response of an operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, _, b, err := flags.bundle(cmd, args)
			if err != nil {
				return err
			}

			out := responseOutput{
				Method:     b.Method,
				Path:       b.OriginalPath,
				Unresolved: unresolvedList(b),
			}
			if resp := b.Response; resp != nil {
				out.Status = resp.Status
				out.Description = resp.Description
				out.ContentType = resp.ContentType
				out.Schema = resp.Schema
			}
			if st.opts.Format != FormatText {
				return OutputStructured(cmd.OutOrStdout(), out, st.opts.Format)
			}

			w := cmd.OutOrStdout()
			Writef(w, "%s %s\n", out.Method, out.Path)
			if out.Status == "" {
				Writef(w, "No success response declared\n")
				return nil
			}
			Writef(w, "Status: %s\n", out.Status)
			if out.ContentType != "" {
				Writef(w, "Content-Type: %s\n", out.ContentType)
			}
			if out.Schema != nil {
				Writef(w, "Body:\n  %s\n", outline(out.Schema))
			}
			printUnresolved(cmd, nil, out.Unresolved)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printUnresolved(cmd *cobra.Command, skipped []string, unresolved []unresolvedOutput) {
	w := cmd.ErrOrStderr()
	for _, ref := range skipped {
		Writef(w, "Warning: skipped parameter %s\n", ref)
	}
	for _, u := range unresolved {
		Writef(w, "Warning: unresolved %s (%s)\n", u.Ref, u.Reason)
	}
}
