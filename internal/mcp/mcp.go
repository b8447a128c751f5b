// Package mcp implements the Model Context Protocol server for the plant.
//
// The MCP server is the structured contract between the reconciliation core
// and the external agent/narration layer: every tool returns a fixed JSON
// shape, so no downstream prose parsing is ever required. Reasoning text is
// the agent layer's job; nothing here narrates.
package mcp

import (
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kmanditereza/industrial-ai-agent/internal/service/assessment"
)

// Server wraps the MCP server around the assessment service.
type Server struct {
	mcpServer *mcpserver.MCPServer
	svc       *assessment.Service
	logger    *slog.Logger
}

// New creates and configures a new MCP server with the plant tools.
func New(svc *assessment.Service, version string, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	s.mcpServer = mcpserver.NewMCPServer(
		"plantd",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// MCPServer returns the underlying mcp-go server for transport setup.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}

func jsonResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{
			mcplib.TextContent{Type: "text", Text: text},
		},
	}
}
