package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server exposing transcript tools",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytm functionality as tools.

The MCP server provides four tools:
- fetch_transcript: fetch and store a video's captions, returning the text
- search_transcripts: keyword search with context over the local corpus
- transcript_stats: aggregate statistics for the local corpus
- combine_transcripts: merge the corpus into a single file

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  ytm mcp

  # Run MCP server with HTTP transport on port 8080
  ytm mcp --transport=http --port=8080`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so disable verbose logging
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app := internal.NewApp(config)
		mcpServer := internal.NewMCPServer(app)

		if transport == "http" {
			fmt.Printf("Starting ytm MCP server on HTTP port %d...\n", port)
		}

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport type: stdio or http")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport")
	rootCmd.AddCommand(mcpCmd)
}
