package cmd

import (
	"github.com/burstaudit/burstaudit/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the burstaudit MCP server",
	Long:  `Launch an MCP server that allows AI agents to run burst audits via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep setup quiet so stdio stays clean for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
