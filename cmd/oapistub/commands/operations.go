package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub/locator"
)

type operationsOutput struct {
	Title      string            `json:"title,omitempty" yaml:"title,omitempty"`
	Version    string            `json:"version,omitempty" yaml:"version,omitempty"`
	Converted  bool              `json:"converted,omitempty" yaml:"converted,omitempty"`
	Operations []locator.Summary `json:"operations" yaml:"operations"`
}

func newOperationsCmd() *cobra.Command {
	var overview bool

	cmd := &cobra.Command{
		Use:     "operations <spec>",
		Aliases: []string{"ops"},
		Short:   "List every operation in a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getAppState(cmd)
			if err != nil {
				return err
			}
			spec, err := st.loadSpec(cmd, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if overview {
				Writef(w, "%s\n", locator.Overview(spec.Doc))
				return nil
			}

			ops := locator.Operations(spec.Doc)
			if st.opts.Format != FormatText {
				out := operationsOutput{Converted: spec.Converted, Operations: ops}
				if info := spec.Doc.Info; info != nil {
					out.Title = info.Title
					out.Version = info.Version
				}
				return OutputStructured(w, out, st.opts.Format)
			}

			for _, op := range ops {
				line := op.Method + " " + op.Path
				if op.OperationID != "" {
					line += "  " + op.OperationID
				}
				if op.Deprecated {
					line += "  [deprecated]"
				}
				Writef(w, "%s\n", line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&overview, "overview", false, "Print a compact overview with query parameters and summaries")
	return cmd
}
