package commands

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub/locator"
	"github.com/erraggy/oapistub/oaserrors"
)

type locateOutput struct {
	Method      string            `json:"method" yaml:"method"`
	Path        string            `json:"path" yaml:"path"`
	OperationID string            `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tier        string            `json:"tier" yaml:"tier"`
	PathParams  map[string]string `json:"pathParams,omitempty" yaml:"pathParams,omitempty"`
}

func newLocateCmd() *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "locate <spec> <operationId|path>",
		Short: "Find the operation for an operationId, path template or request path",
		Example: `  oapistub locate openapi.yaml getUser
  oapistub locate openapi.yaml /users/42 --method delete`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getAppState(cmd)
			if err != nil {
				return err
			}
			spec, err := st.loadSpec(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := locator.New(spec.Doc, locator.WithLogger(st.logger)).
				Locate(locator.Target{Path: args[1], Method: method})
			if err != nil {
				return err
			}

			out := locateOutput{
				Method:      res.Method,
				Path:        res.OriginalPath,
				OperationID: res.Operation.OperationID,
				Summary:     res.Operation.Summary,
				Tier:        res.Tier.String(),
				PathParams:  res.PathParams,
			}
			if st.opts.Format != FormatText {
				return OutputStructured(cmd.OutOrStdout(), out, st.opts.Format)
			}

			w := cmd.OutOrStdout()
			line := out.Method + " " + out.Path
			if out.OperationID != "" {
				line += " (" + out.OperationID + ")"
			}
			Writef(w, "%s\n", line)
			if out.Summary != "" {
				Writef(w, "  %s\n", out.Summary)
			}
			Writef(w, "  matched by: %s\n", out.Tier)
			for _, name := range slices.Sorted(maps.Keys(out.PathParams)) {
				Writef(w, "  %s = %s\n", name, out.PathParams[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", "", "HTTP method of the operation (any case)")
	return cmd
}

// ErrorMessage renders an error for the terminal. An unmatched operation
// prints the list of known operationIds and routes.
func ErrorMessage(err error) string {
	var nf *oaserrors.OperationNotFoundError
	if errors.As(err, &nf) {
		return strings.TrimRight(nf.Diagnostic(), "\n")
	}
	return "Error: " + err.Error()
}
