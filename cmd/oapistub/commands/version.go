package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			Writef(cmd.OutOrStdout(), "oapistub %s\n%s\n", oapistub.Version(), oapistub.BuildInfo())
			return nil
		},
	}
}
