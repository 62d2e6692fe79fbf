// Package mcp wires the analytical tools onto an MCP server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/logging"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/metrics"
)

// Tool defines the interface for the analytical tool implementations.
// Execute returns a rendered Markdown report.
type Tool interface {
	Execute(ctx context.Context, input json.RawMessage) (string, error)
}

// Server wraps the mcp-go server with tool registration and instrumentation
type Server struct {
	mcpServer *server.MCPServer
	tools     map[string]Tool
	metrics   *metrics.Metrics
	logger    *logging.Logger
	version   string
}

// ServerOptions configures the analysis server
type ServerOptions struct {
	Version string
	Tools   tools.Options
	Metrics *metrics.Metrics
}

// NewServer creates the MCP server and registers all analytical tools
func NewServer(opts ServerOptions) *Server {
	mcpServer := server.NewMCPServer(
		"SemiProcess MCP Server",
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	s := &Server{
		mcpServer: mcpServer,
		tools:     make(map[string]Tool),
		metrics:   opts.Metrics,
		logger:    logging.GetLogger("mcp"),
		version:   opts.Version,
	}

	s.registerDefectTools()
	s.registerRecipeTools()
	s.registerMonitoringTools(opts.Tools)
	s.registerReportingTools()

	return s
}

// GetMCPServer returns the underlying mcp-go server for transport setup
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ToolNames lists the registered tool names
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	return names
}

// CallTool executes a registered tool directly. Used by tests and the stdio
// smoke path; transport traffic goes through the mcp-go server.
func (s *Server) CallTool(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, ok := s.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	return tool.Execute(ctx, args)
}

func (s *Server) registerTool(name, description string, tool Tool, inputSchema map[string]interface{}) {
	s.tools[name] = tool

	schemaJSON, err := json.Marshal(inputSchema)
	if err != nil {
		// This should never happen with well-formed schemas
		panic(fmt.Sprintf("Failed to marshal schema for tool %s: %v", name, err))
	}

	mcpTool := mcp.NewToolWithRawSchema(name, description, schemaJSON)
	s.mcpServer.AddTool(mcpTool, s.createToolHandler(name, tool))
}

func (s *Server) createToolHandler(name string, tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		start := time.Now()
		markdown, err := tool.Execute(ctx, args)
		elapsed := time.Since(start).Seconds()
		if err != nil {
			s.metrics.ObserveCall(name, "error", elapsed)
			s.logger.Error("Tool %s failed: %v", name, err)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}

		s.metrics.ObserveCall(name, "ok", elapsed)
		s.logger.Debug("Tool %s completed in %.3fs", name, elapsed)
		return mcp.NewToolResultText(markdown), nil
	}
}

// stringProp builds a string property schema entry
func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// numberProp builds a numeric property schema entry. Tools also accept
// quoted numbers, so the schema admits both encodings.
func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"number", "string"},
		"description": description,
	}
}

// objectSchema assembles an object schema with required field names
func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
