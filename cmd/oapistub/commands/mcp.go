package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oapistub/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the locate, request, response and generate tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout. Configuration is
read from OAPISTUB_* environment variables; logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := getAppState(cmd)
			if err != nil {
				return err
			}
			return mcpserver.Run(cmd.Context(), st.slogger)
		},
	}
}
