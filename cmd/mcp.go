package cmd

import (
	"github.com/pamout/devlog/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [root-path]",
	Short: "Start the devlog MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents query dev-log statistics via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Headers are suppressed per request by the handlers; stdout
		// carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
