package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an AI assistant can read
and edit the CV.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead.

Tools that change the CV require an edit session, the same one started by
'cvboard login'.

Examples:
  # Stdio mode
  cvboard mcp serve

  # HTTP mode
  cvboard mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if services == nil || services.Editor == nil {
		return errors.New("editor not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Editor:  services.Editor,
		Session: services.Session,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
