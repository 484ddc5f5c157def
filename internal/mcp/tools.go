package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sanglocn/us-daily/internal/config"
	"github.com/sanglocn/us-daily/internal/models"
	"github.com/sanglocn/us-daily/internal/render"
)

// Provider supplies the current snapshot rows.
type Provider interface {
	Snapshot(ctx context.Context) ([]models.SnapshotRow, error)
}

// SnapshotTool returns the tool definition for get_snapshot.
func SnapshotTool() mcp.Tool {
	return mcp.NewTool("get_snapshot",
		mcp.WithDescription("Get the current market snapshot: one row per ticker with RS trend, ranks, returns, extension, SMA flags, and stage, grouped and formatted like the dashboard."),
		mcp.WithString("group",
			mcp.Description("Restrict to one display group: Market, Sector, Commodity, Crypto, Country, Theme, or Leader."),
		),
		mcp.WithBoolean("strong_rs_1m", mcp.Description("Keep only tickers with a 21-day RS rank of 85% or above.")),
		mcp.WithBoolean("strong_rs_1y", mcp.Description("Keep only tickers with a 252-day RS rank of 85% or above.")),
		mcp.WithBoolean("low_extension", mcp.Description("Keep only tickers with an extension ratio of 4 or below.")),
		mcp.WithBoolean("stage2_only", mcp.Description("Keep only tickers in stage 2 of the core model.")),
	)
}

// SnapshotToolHandler returns the handler for get_snapshot.
func SnapshotToolHandler(provider Provider) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows, err := provider.Snapshot(ctx)
		if err != nil {
			return errorResult("failed to load snapshot: " + err.Error()), nil
		}

		filters := render.Filters{
			StrongRS1M:   r.GetBool("strong_rs_1m", false),
			StrongRS1Y:   r.GetBool("strong_rs_1y", false),
			LowExtension: r.GetBool("low_extension", false),
			Stage2Only:   r.GetBool("stage2_only", false),
		}

		groups := render.BuildGroups(rows, filters)

		if want := r.GetString("group", ""); want != "" {
			selected := groups[:0:0]
			for _, g := range groups {
				if g.Name == want || g.Anchor == want {
					selected = append(selected, g)
				}
			}
			groups = selected
		}

		out, err := json.Marshal(map[string]interface{}{"groups": groups})
		if err != nil {
			return errorResult("failed to marshal snapshot"), nil
		}
		return textResult(string(out)), nil
	}
}

// ListGroupsTool returns the tool definition for list_groups.
func ListGroupsTool() mcp.Tool {
	return mcp.NewTool("list_groups",
		mcp.WithDescription("List the snapshot display groups that currently have tickers, in display order."),
	)
}

// ListGroupsToolHandler returns the handler for list_groups.
func ListGroupsToolHandler(provider Provider) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows, err := provider.Snapshot(ctx)
		if err != nil {
			return errorResult("failed to load snapshot: " + err.Error()), nil
		}

		names := []string{}
		for _, g := range render.PartitionGroups(rows) {
			names = append(names, g.Name)
		}

		out, err := json.Marshal(map[string]interface{}{"groups": names})
		if err != nil {
			return errorResult("failed to marshal group list"), nil
		}
		return textResult(string(out)), nil
	}
}

// VersionTool returns the tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the snapshot portal version. Use this to verify connectivity."),
	)
}

// VersionToolHandler returns the handler for get_version.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(map[string]string{
			"version": config.GetVersion(),
			"build":   config.GetBuild(),
			"commit":  config.GetGitCommit(),
		})
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return textResult(string(out)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}
