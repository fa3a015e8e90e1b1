package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pamout/devlog/core"
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	"github.com/spf13/afero"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fs      afero.Fs
}

// overview is the result of get_statistics.
type overview struct {
	schema.Statistics
	Frequency  schema.Frequency `json:"frequency"`
	ActiveDays int              `json:"active_days"`
	FirstDate  string           `json:"first_date,omitempty"`
	LastDate   string           `json:"last_date,omitempty"`
}

// streaks is the result of get_streaks.
type streaks struct {
	schema.Streak
	ActiveDays int    `json:"active_days"`
	FirstDate  string `json:"first_date,omitempty"`
	LastDate   string `json:"last_date,omitempty"`
}

// toolConfig clones the base config and applies the root_path argument.
func (h *toolHandler) toolConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("root_path", ""); p != "" {
		if err := contract.RebaseRoot(cfg, h.fs, p); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runContext suppresses run headers and points core at the handler filesystem.
func (h *toolHandler) runContext(ctx context.Context) context.Context {
	return core.WithFs(core.WithSuppressHeader(ctx), h.fs)
}

// report runs the shared config and report steps for the aggregate tools.
func (h *toolHandler) report(ctx context.Context, request mcp.CallToolRequest) (schema.Report, *mcp.CallToolResult) {
	cfg, err := h.toolConfig(request)
	if err != nil {
		return schema.Report{}, mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err))
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.TopFiles = min(l, contract.MaxTopFiles)
	}
	report, _, err := core.GetReport(h.runContext(ctx), cfg)
	if err != nil {
		return schema.Report{}, mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err))
	}
	return report, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failed := h.report(ctx, request)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(overview{
		Statistics: report.Statistics,
		Frequency:  report.Frequency,
		ActiveDays: report.ActiveDays,
		FirstDate:  report.FirstDate,
		LastDate:   report.LastDate,
	}), nil
}

func (h *toolHandler) handleGetTimeAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failed := h.report(ctx, request)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(report.Time), nil
}

func (h *toolHandler) handleGetStreaks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failed := h.report(ctx, request)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(streaks{
		Streak:     report.Streak,
		ActiveDays: report.ActiveDays,
		FirstDate:  report.FirstDate,
		LastDate:   report.LastDate,
	}), nil
}

func (h *toolHandler) handleGetCommitSizes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failed := h.report(ctx, request)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(report.Sizes), nil
}

func (h *toolHandler) handleGetFileHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failed := h.report(ctx, request)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(report.Files), nil
}

func (h *toolHandler) handleGetDeployments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failed := h.report(ctx, request)
	if failed != nil {
		return failed, nil
	}
	return jsonResult(report.Deployments), nil
}

func (h *toolHandler) handleGetLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logNumber := request.GetString("log_number", "")
	if logNumber == "" {
		return mcp.NewToolResultError("log_number is required"), nil
	}
	cfg, err := h.toolConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	record, err := core.GetRecord(h.runContext(ctx), cfg, logNumber)
	if errors.Is(err, core.ErrRecordNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no log #%s", logNumber)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	return jsonResult(record), nil
}
