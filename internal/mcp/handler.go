// Package mcp exposes the snapshot over the Model Context Protocol, so MCP
// clients can query the same data the dashboard renders.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sanglocn/us-daily/internal/common"
	"github.com/sanglocn/us-daily/internal/config"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler with the snapshot tools registered.
func NewHandler(provider Provider, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"snapshot-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(SnapshotTool(), SnapshotToolHandler(provider))
	mcpSrv.AddTool(ListGroupsTool(), ListGroupsToolHandler(provider))
	mcpSrv.AddTool(VersionTool(), VersionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	if logger != nil {
		logger.Info().Int("tools", 3).Msg("MCP handler initialized")
	}

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
