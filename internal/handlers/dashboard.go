package handlers

import (
	"context"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/sanglocn/us-daily/internal/common"
	"github.com/sanglocn/us-daily/internal/config"
	"github.com/sanglocn/us-daily/internal/models"
	"github.com/sanglocn/us-daily/internal/render"
)

// SnapshotProvider supplies the current snapshot rows.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) ([]models.SnapshotRow, error)
}

// DashboardHandler serves the snapshot dashboard page: grouped tables with
// conditional styling, filter toggles, and a navigation index.
type DashboardHandler struct {
	logger    *common.Logger
	templates *template.Template
	provider  SnapshotProvider
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(logger *common.Logger, provider SnapshotProvider) *DashboardHandler {
	pagesDir := FindPagesDir()

	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))
	template.Must(templates.ParseGlob(filepath.Join(pagesDir, "partials", "*.html")))

	return &DashboardHandler{
		logger:    logger,
		templates: templates,
		provider:  provider,
	}
}

// navLink is one navigation index entry. The index always lists every group
// in display order, whether or not the group currently has rows.
type navLink struct {
	Name   string
	Anchor string
}

func navLinks() []navLink {
	links := make([]navLink, 0, len(models.GroupOrder))
	for _, name := range models.GroupOrder {
		links = append(links, navLink{Name: name, Anchor: render.GroupAnchor(name)})
	}
	return links
}

// FiltersFromRequest reads the four filter toggles from query parameters.
func FiltersFromRequest(r *http.Request) render.Filters {
	q := r.URL.Query()
	return render.Filters{
		StrongRS1M:   QueryToggle(q, "rs1m"),
		StrongRS1Y:   QueryToggle(q, "rs1y"),
		LowExtension: QueryToggle(q, "lowext"),
		Stage2Only:   QueryToggle(q, "stage2"),
	}
}

// ServeHTTP renders the dashboard page. A feed or build failure renders the
// error page; no partial tables are ever shown.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	filters := FiltersFromRequest(r)

	rows, err := h.provider.Snapshot(r.Context())
	if err != nil {
		if h.logger != nil {
			h.logger.Error().Str("error", err.Error()).Msg("failed to load snapshot")
		}
		h.renderError(w, "Failed to load snapshot data. The upstream feed may be unavailable.")
		return
	}

	groups := render.BuildGroups(rows, filters)

	data := map[string]interface{}{
		"Page":    "dashboard",
		"Title":   "Daily Snapshot",
		"Columns": models.DisplayOrder,
		"Filters": filters,
		"Groups":  groups,
		"Nav":     navLinks(),
		"Version": config.GetVersion(),
	}

	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "dashboard.html").Str("error", err.Error()).Msg("failed to render dashboard")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderError renders the error page with a 502, falling back to a plain
// error when the template itself fails.
func (h *DashboardHandler) renderError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadGateway)
	data := map[string]interface{}{
		"Page":    "error",
		"Title":   "Daily Snapshot",
		"Message": message,
	}
	if err := h.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		http.Error(w, message, http.StatusBadGateway)
	}
}
