package render

import (
	"github.com/sanglocn/us-daily/internal/models"
)

// Filters holds the user-toggled row filters. Active filters combine with
// logical AND; a row with a missing value fails any active comparison
// against it.
type Filters struct {
	StrongRS1M   bool `json:"strong_rs_1m"`
	StrongRS1Y   bool `json:"strong_rs_1y"`
	LowExtension bool `json:"low_extension"`
	Stage2Only   bool `json:"stage2_only"`
}

// Keep reports whether a row survives the active filter set.
func (f Filters) Keep(row models.SnapshotRow) bool {
	if f.StrongRS1M && (row.RSRank21D == nil || *row.RSRank21D < 0.85) {
		return false
	}
	if f.StrongRS1Y && (row.RSRank252D == nil || *row.RSRank252D < 0.85) {
		return false
	}
	if f.LowExtension && (row.Extension == nil || *row.Extension > 4) {
		return false
	}
	if f.Stage2Only && (row.Stage == nil || *row.Stage != 2) {
		return false
	}
	return true
}

// Apply returns the rows surviving the active filter set, preserving order.
func (f Filters) Apply(rows []models.SnapshotRow) []models.SnapshotRow {
	kept := make([]models.SnapshotRow, 0, len(rows))
	for _, row := range rows {
		if f.Keep(row) {
			kept = append(kept, row)
		}
	}
	return kept
}
