package mcp_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/burstaudit/burstaudit/internal/contract"
	mcp_internal "github.com/burstaudit/burstaudit/internal/mcp"
	"github.com/burstaudit/burstaudit/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBurstCSV(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{
		"Learner - Name", "Learner - ID", "Completion Date",
		"Learning activity - Duration", "Learning activity - Title",
		"Learning activity - ID", "Transcript status",
	}))
	for i := 0; i < 51; i++ {
		require.NoError(t, w.Write([]string{
			"Learner One", "L1", "2024-01-05", "2",
			fmt.Sprintf("Course %d", i), fmt.Sprintf("ACT-%d", i), "Completed",
		}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())
}

func TestMCPServer_ProcessLearnerActivity(t *testing.T) {
	baseCfg := &contract.Config{RunLimit: contract.DefaultRunLimit}
	s := mcp_internal.NewMCPServer(baseCfg, nil)

	ctx := context.Background()

	t.Run("missing input_file", func(t *testing.T) {
		tool := s.GetTool("process_learner_activity")
		require.NotNil(t, tool, "Tool process_learner_activity should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "process_learner_activity",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "input_file is required")
	})

	t.Run("unsupported input", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "export.txt")
		require.NoError(t, os.WriteFile(input, []byte("nope"), 0o644))

		tool := s.GetTool("process_learner_activity")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "process_learner_activity",
				Arguments: map[string]any{
					"input_file": input,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unsupported file type")
	})

	t.Run("successful run", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "export.csv")
		outputDir := filepath.Join(dir, "reports")
		writeBurstCSV(t, input)

		tool := s.GetTool("process_learner_activity")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "process_learner_activity",
				Arguments: map[string]any{
					"input_file": input,
					"output_dir": outputDir,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var result schema.RunResult
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
		assert.Equal(t, 1, result.FilesWritten)
		assert.Equal(t, 51, result.RowsLoaded)

		assert.FileExists(t, filepath.Join(outputDir, "learner_L1_2024-01-05.xlsx"))
	})
}

func TestMCPServer_ListRuns(t *testing.T) {
	baseCfg := &contract.Config{RunLimit: contract.DefaultRunLimit}

	t.Run("history disabled", func(t *testing.T) {
		s := mcp_internal.NewMCPServer(baseCfg, nil)
		tool := s.GetTool("list_runs")
		require.NotNil(t, tool, "Tool list_runs should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "list_runs",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "run history is disabled")
	})
}
