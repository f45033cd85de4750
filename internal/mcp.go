package internal

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytm-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("fetch_transcript",
		mcp.WithDescription("Fetch the transcript of a YouTube video from its existing captions and store it in the local transcript directory. Returns the plain transcript text. Fails if the video has no captions in the requested languages."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11-character video ID"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Preferred transcript language code (default: configured languages)"),
		),
	), s.handleFetchTranscript)

	s.mcpServer.AddTool(mcp.NewTool("search_transcripts",
		mcp.WithDescription("Search for a keyword across all stored transcripts. Returns matches with line numbers, timestamps and surrounding context, grouped by file."),
		mcp.WithString("keyword",
			mcp.Description("Keyword or phrase to search for"),
			mcp.Required(),
		),
		mcp.WithString("dir",
			mcp.Description("Transcript directory (default: configured directory)"),
		),
		mcp.WithNumber("context",
			mcp.Description("Number of surrounding context lines (default: 2)"),
		),
	), s.handleSearch)

	s.mcpServer.AddTool(mcp.NewTool("transcript_stats",
		mcp.WithDescription("Compute statistics over the stored transcripts: file count, word counts, entry counts and estimated total duration."),
		mcp.WithString("dir",
			mcp.Description("Transcript directory (default: configured directory)"),
		),
	), s.handleStats)

	s.mcpServer.AddTool(mcp.NewTool("combine_transcripts",
		mcp.WithDescription("Combine all stored transcripts into a single corpus file (md, json or txt) and return its path."),
		mcp.WithString("dir",
			mcp.Description("Transcript directory (default: configured directory)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: md, json or txt (default: md)"),
		),
	), s.handleCombine)
}

// handleFetchTranscript implements the fetch_transcript tool
func (s *MCPServer) handleFetchTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	opts := FetchOptions{SkipExisting: true}
	if language := request.GetString("language", ""); language != "" {
		opts.Languages = []string{language}
	}

	path, err := s.app.FetchVideo(ctx, url, opts)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("fetching transcript", err), nil
	}

	doc, err := ParseFile(path)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("reading stored transcript", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(doc.PlainText())},
	}, nil
}

// handleSearch implements the search_transcripts tool
func (s *MCPServer) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword, err := request.RequireString("keyword")
	if err != nil {
		return mcp.NewToolResultError("keyword parameter is required and must be a string"), nil
	}

	opts := SearchOptions{
		ContextLines: request.GetInt("context", 2),
		MaxResults:   50,
	}
	results, err := s.app.Search(request.GetString("dir", ""), keyword, opts)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("search error", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(FormatSearchResults(results, keyword, true))},
	}, nil
}

// handleStats implements the transcript_stats tool
func (s *MCPServer) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.app.Stats(request.GetString("dir", ""))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("stats error", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(FormatStats(stats))},
	}, nil
}

// handleCombine implements the combine_transcripts tool
func (s *MCPServer) handleCombine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.app.Combine(request.GetString("dir", ""), request.GetString("format", FormatMarkdown), "")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("combine error", err), nil
	}

	text := fmt.Sprintf("Combined %d transcripts into %s", result.Sources, result.Path)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}
