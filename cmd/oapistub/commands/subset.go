package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oapistub/internal/fileutil"
	"github.com/erraggy/oapistub/internal/pathutil"
	"github.com/erraggy/oapistub/parser"
)

// MarshalDocument marshals a raw document tree in the given format.
func MarshalDocument(raw *parser.Object, format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatJSON {
		return json.MarshalIndent(raw, "", "  ")
	}
	return yaml.Marshal(raw)
}

func newSubsetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "subset <spec> [route]",
		Short: "Print the document reduced to the path matching route",
		Long: `Subset prints a copy of the document whose paths hold only the entry
whose template equals route, or whose GET operation has route as its
operationId. Components are kept. Without route the document is printed
unchanged.

The output keeps the source format unless --format json or yaml is given.
With --output the document is written to a file readable only by its owner.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := getAppState(cmd)
			if err != nil {
				return err
			}
			spec, err := st.loadSpec(cmd, args[0])
			if err != nil {
				return err
			}
			route := ""
			if len(args) == 2 {
				route = args[1]
			}
			sub := parser.Subset(spec.Doc, route)
			if route != "" && sub.Paths.Len() == 0 {
				Writef(cmd.ErrOrStderr(), "Warning: no path matches %q\n", route)
			}

			format := sub.SourceFormat
			switch st.opts.Format {
			case FormatJSON:
				format = parser.SourceFormatJSON
			case FormatYAML:
				format = parser.SourceFormatYAML
			}
			data, err := MarshalDocument(sub.Raw, format)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", FormatSpecPath(args[0]), err)
			}
			if output == "" {
				Writef(cmd.OutOrStdout(), "%s\n", data)
				return nil
			}
			path, err := pathutil.SanitizeOutputPath(output)
			if err != nil {
				return err
			}
			if err := fileutil.WriteFileAtomic(path, append(data, '\n'), fileutil.OwnerReadWrite); err != nil {
				return fmt.Errorf("writing subset: %w", err)
			}
			Writef(cmd.ErrOrStderr(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the document to instead of stdout")
	return cmd
}
