package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/burstaudit/burstaudit/core"
	"github.com/burstaudit/burstaudit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.RunStore
}

func (h *toolHandler) handleProcessLearnerActivity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputFile := request.GetString("input_file", "")
	if inputFile == "" {
		return mcp.NewToolResultError("input_file is required"), nil
	}
	outputDir := request.GetString("output_dir", "")
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(inputFile), "results")
	}

	start := time.Now()
	result, err := core.Process(inputFile, outputDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("processing failed: %v", err)), nil
	}
	result.StartedAt = start
	result.Duration = time.Since(start)

	if h.store != nil {
		if _, err := h.store.RecordRun(result); err != nil {
			contract.LogWarn("could not record run history", err)
		}
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("run history is disabled"), nil
	}

	limit := request.GetInt("limit", 0)
	if limit <= 0 {
		limit = h.baseCfg.RunLimit
	}

	records, err := h.store.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing runs failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
