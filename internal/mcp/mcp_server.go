// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pamout/devlog/internal/contract"
	"github.com/spf13/afero"
)

const rootPathDescription = "Project root holding the dev logs (defaults to the configured root)."

// NewMCPServer initializes and configures the devlog MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fs afero.Fs) *server.MCPServer {
	s := server.NewMCPServer(
		"Devlog Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fs:      fs,
	}

	// --- 1. Tool: get_statistics ---
	s.AddTool(mcp.NewTool("get_statistics",
		mcp.WithDescription("Summarize the development logs: totals, counts by type and category, and frequency."),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
	), h.handleGetStatistics)

	// --- 2. Tool: get_time_analysis ---
	s.AddTool(mcp.NewTool("get_time_analysis",
		mcp.WithDescription("Show when work happens: logs by hour and weekday, peak hour and work balance."),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
	), h.handleGetTimeAnalysis)

	// --- 3. Tool: get_streaks ---
	s.AddTool(mcp.NewTool("get_streaks",
		mcp.WithDescription("Report the current and longest runs of consecutive active days."),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
	), h.handleGetStreaks)

	// --- 4. Tool: get_commit_sizes ---
	s.AddTool(mcp.NewTool("get_commit_sizes",
		mcp.WithDescription("Group logs by commit size (small, medium, large, xlarge) and list the largest."),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
	), h.handleGetCommitSizes)

	// --- 5. Tool: get_file_history ---
	s.AddTool(mcp.NewTool("get_file_history",
		mcp.WithDescription("List the most frequently changed files with the logs that touched them."),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
		mcp.WithNumber("limit", mcp.Description("Limit the number of files returned.")),
	), h.handleGetFileHistory)

	// --- 6. Tool: get_deployments ---
	s.AddTool(mcp.NewTool("get_deployments",
		mcp.WithDescription("List deployment-related logs classified as release, hotfix, infrastructure or ci-config."),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
	), h.handleGetDeployments)

	// --- 7. Tool: get_log ---
	s.AddTool(mcp.NewTool("get_log",
		mcp.WithDescription("Return one development log with its full markdown content."),
		mcp.WithString("log_number", mcp.Description("Log number, e.g. '12'."), mcp.Required()),
		mcp.WithString("root_path", mcp.Description(rootPathDescription)),
	), h.handleGetLog)

	return s
}

// StartMCPServer starts the devlog MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg, afero.NewOsFs())
	return server.ServeStdio(s)
}
