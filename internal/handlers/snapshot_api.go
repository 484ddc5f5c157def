package handlers

import (
	"net/http"

	"github.com/sanglocn/us-daily/internal/common"
	"github.com/sanglocn/us-daily/internal/render"
)

// SnapshotAPIHandler serves the formatted snapshot as JSON, for consumers
// that render their own UI. It applies the same filters as the dashboard.
type SnapshotAPIHandler struct {
	logger   *common.Logger
	provider SnapshotProvider
}

// NewSnapshotAPIHandler creates a new snapshot API handler.
func NewSnapshotAPIHandler(logger *common.Logger, provider SnapshotProvider) *SnapshotAPIHandler {
	return &SnapshotAPIHandler{logger: logger, provider: provider}
}

// ServeHTTP handles GET /api/snapshot. Filter toggles arrive as query
// parameters (rs1m, rs1y, lowext, stage2); an optional group parameter
// restricts the response to one group.
func (h *SnapshotAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	rows, err := h.provider.Snapshot(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to load snapshot for API")
		}
		WriteError(w, http.StatusBadGateway, "failed to load snapshot data")
		return
	}

	groups := render.BuildGroups(rows, FiltersFromRequest(r))

	if want := r.URL.Query().Get("group"); want != "" {
		selected := groups[:0:0]
		for _, g := range groups {
			if g.Name == want || g.Anchor == want {
				selected = append(selected, g)
			}
		}
		groups = selected
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   map[string]interface{}{"groups": groups},
	})
}
