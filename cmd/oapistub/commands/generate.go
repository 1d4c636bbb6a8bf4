package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub/generator"
	"github.com/erraggy/oapistub/internal/pathutil"
	"github.com/erraggy/oapistub/locator"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Method       string
	Language     string
	PackageName  string
	FunctionName string
	Output       string
}

type generateOutput struct {
	Success      bool     `json:"success" yaml:"success"`
	FileName     string   `json:"fileName" yaml:"fileName"`
	Language     string   `json:"language" yaml:"language"`
	FunctionName string   `json:"functionName" yaml:"functionName"`
	BaseURL      string   `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	OutputDir    string   `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	Source       string   `json:"source,omitempty" yaml:"source,omitempty"`
	Issues       []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newGenerateCmd() *cobra.Command {
	var flags GenerateFlags

	cmd := &cobra.Command{
		Use:     "generate <spec> <operationId|path>",
		Aliases: []string{"gen"},
		Short:   "Generate a client stub for one operation",
		Long: `Generate emits a self-contained client stub for one operation: a request
type, a response type and a single function performing the call.

Without --output the stub is printed to stdout. Issues such as schemas that
could not be typed are reported on stderr.`,
		Example: `  oapistub generate openapi.yaml getUser
  oapistub generate openapi.yaml /pets --method post -l go --package pets -o ./client
  cat openapi.yaml | oapistub generate - listPets -l js`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getAppState(cmd)
			if err != nil {
				return err
			}
			lang, err := generator.ParseLanguage(flags.Language)
			if err != nil {
				return err
			}
			spec, err := st.loadSpec(cmd, args[0])
			if err != nil {
				return err
			}

			opts := []generator.Option{
				generator.WithDocument(spec.Doc),
				generator.WithTarget(locator.Target{Path: args[1], Method: flags.Method}),
				generator.WithSpecLocation(spec.Location),
				generator.WithLanguage(lang),
				generator.WithFunctionName(flags.FunctionName),
				generator.WithResolver(st.resolver(spec)),
				generator.WithLogger(st.logger),
			}
			if flags.PackageName != "" {
				opts = append(opts, generator.WithPackageName(flags.PackageName))
			}

			result, err := generator.Generate(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			if flags.Output != "" {
				dir, err := pathutil.SanitizeOutputDir(flags.Output)
				if err != nil {
					return err
				}
				flags.Output = dir
				if err := result.WriteFiles(dir); err != nil {
					return fmt.Errorf("failed to write generated files: %w", err)
				}
			}

			if st.opts.Format != FormatText {
				out := generateOutput{
					Success:      result.Success,
					FileName:     result.Files[0].Name,
					Language:     result.Language.String(),
					FunctionName: result.FunctionName,
					BaseURL:      result.BaseURL,
					OutputDir:    flags.Output,
				}
				if flags.Output == "" {
					out.Source = result.Source()
				}
				for _, issue := range result.Issues {
					out.Issues = append(out.Issues, issue.String())
				}
				return OutputStructured(cmd.OutOrStdout(), out, st.opts.Format)
			}

			for _, issue := range result.Issues {
				Writef(cmd.ErrOrStderr(), "%s\n", issue.String())
			}
			if flags.Output == "" {
				Writef(cmd.OutOrStdout(), "%s", result.Source())
				return nil
			}
			Writef(cmd.OutOrStdout(), "Wrote %s/%s (%s, %d warning(s))\n",
				flags.Output, result.Files[0].Name, result.FunctionName, result.WarningCount)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.Method, "method", "m", "", "HTTP method of the operation (any case)")
	fs.StringVarP(&flags.Language, "language", "l", "typescript", "Stub language: typescript (ts), javascript (js), or go")
	fs.StringVar(&flags.PackageName, "package", "", "Package name for Go stubs (default \"client\")")
	fs.StringVar(&flags.FunctionName, "function", "", "Name of the generated function (default derived from the operationId or route)")
	fs.StringVarP(&flags.Output, "output", "o", "", "Directory to write the stub into instead of stdout")
	return cmd
}
