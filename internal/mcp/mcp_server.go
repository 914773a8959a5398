// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the burst audit MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.RunStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Burst Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: process_learner_activity ---
	s.AddTool(mcp.NewTool("process_learner_activity",
		mcp.WithDescription("Process a learner activity export (.csv/.xlsx) and emit per-learner, per-day burst reports for groups above the row threshold."),
		mcp.WithString("input_file", mcp.Description("Path to the activity export file."), mcp.Required()),
		mcp.WithString("output_dir", mcp.Description("Directory to write the reports into (defaults to a 'results' directory beside the input).")),
	), h.handleProcessLearnerActivity)

	// --- 2. Tool: list_runs ---
	s.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List the most recent processing runs from the run history store."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleListRuns)

	return s
}

// StartMCPServer starts the burst audit MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.RunStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
