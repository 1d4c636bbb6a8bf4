package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub"
	"github.com/erraggy/oapistub/internal/config"
	"github.com/erraggy/oapistub/internal/specload"
	"github.com/erraggy/oapistub/parser"
	"github.com/erraggy/oapistub/resolver"
)

type rootOptions struct {
	Verbose   bool
	FailFast  bool
	NoConvert bool
	Timeout   time.Duration
	Format    string
}

type appState struct {
	opts    rootOptions
	cfg     *config.Config
	logger  parser.Logger
	slogger *slog.Logger
}

type appStateKey struct{}

func (a *appState) initFromFlags(cmd *cobra.Command) error {
	if err := ValidateOutputFormat(a.opts.Format); err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.opts.Verbose {
		level = slog.LevelDebug
	}
	a.slogger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger = parser.NewSlogAdapter(a.slogger)

	a.cfg = config.Load()
	if cmd.Flags().Changed("fail-fast") {
		a.cfg.FailFast = a.opts.FailFast
	}
	if a.opts.Timeout > 0 {
		a.cfg.FetchTimeout = a.opts.Timeout
	}
	return nil
}

func getAppState(cmd *cobra.Command) (*appState, error) {
	v := cmd.Context().Value(appStateKey{})
	st, ok := v.(*appState)
	if !ok || st == nil {
		return nil, errors.New("internal error: app state not initialized")
	}
	return st, nil
}

// loadSpec loads the document named by location; "-" reads the command's stdin.
func (a *appState) loadSpec(cmd *cobra.Command, location string) (*specload.Spec, error) {
	return specload.Load(cmd.Context(), specload.Source{Location: location}, specload.Options{
		Config:  a.cfg,
		Convert: !a.opts.NoConvert,
		Stdin:   cmd.InOrStdin(),
		Logger:  a.logger,
	})
}

func (a *appState) resolver(spec *specload.Spec) *resolver.Resolver {
	return a.cfg.Resolver(spec.Fetcher, a.logger)
}

// NewRootCmd builds the oapistub command tree.
func NewRootCmd() *cobra.Command {
	st := &appState{}

	root := &cobra.Command{
		Use:   "oapistub",
		Short: "Locate OpenAPI operations and generate typed client stubs",
		Long: `oapistub finds one operation in an OpenAPI 3.x or Swagger 2.0 document,
by path template, operationId or concrete request path, dereferences every
$ref reachable from it and emits a self-contained client stub.

Documents are read from a file, an http(s) URL, or stdin ("-").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := st.initFromFlags(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appStateKey{}, st))
			return nil
		},
	}
	root.Version = oapistub.Version()

	pf := root.PersistentFlags()
	pf.BoolVarP(&st.opts.Verbose, "verbose", "v", false, "Log debug output to stderr")
	pf.BoolVar(&st.opts.FailFast, "fail-fast", false, "Abort on the first unresolvable $ref instead of typing it as unknown")
	pf.BoolVar(&st.opts.NoConvert, "no-convert", false, "Do not convert Swagger 2.0 documents through the conversion service")
	pf.DurationVar(&st.opts.Timeout, "timeout", 0, "Timeout for each document fetch (default from OAPISTUB_FETCH_TIMEOUT or 10s)")
	pf.StringVarP(&st.opts.Format, "format", "f", FormatText, "Output format: text, json, or yaml")

	root.AddCommand(newLocateCmd())
	root.AddCommand(newOperationsCmd())
	root.AddCommand(newRequestCmd())
	root.AddCommand(newResponseCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newSubsetCmd())
	root.AddCommand(newMCPCmd())
	root.AddCommand(newVersionCmd())

	return root
}
