package render

import (
	"html/template"

	"github.com/sanglocn/us-daily/internal/models"
)

// Cell is one formatted table cell: display text plus an optional style
// category applied as a CSS class.
type Cell struct {
	Text  string `json:"text"`
	Class string `json:"class,omitempty"`
}

// Row is the fully formatted view of one SnapshotRow, in display-column
// order: Ticker, RS Trend, RS 1M, RS 1Y, Volume, Intraday, 1D Return,
// Extension, > SMA10, > SMA20, Stage.
type Row struct {
	Ticker    string        `json:"ticker"`
	Spark     template.HTML `json:"-"`
	Trend     []*float64    `json:"trend,omitempty"`
	RS1M      Cell          `json:"rs_1m"`
	RS1Y      Cell          `json:"rs_1y"`
	Volume    Cell          `json:"volume"`
	Intraday  Cell          `json:"intraday"`
	Ret1D     Cell          `json:"ret_1d"`
	Extension Cell          `json:"extension"`
	SMA10     Cell          `json:"above_sma10"`
	SMA20     Cell          `json:"above_sma20"`
	Stage     Cell          `json:"stage"`
}

// BuildRow applies the formatting and styling rules to one snapshot row.
func BuildRow(row models.SnapshotRow) Row {
	return Row{
		Ticker:    row.Ticker,
		Spark:     Sparkline(row.Trend),
		Trend:     row.Trend,
		RS1M:      Cell{Text: FormatPercent(row.RSRank21D, 0), Class: StyleRank(row.RSRank21D)},
		RS1Y:      Cell{Text: FormatPercent(row.RSRank252D, 0), Class: StyleRank(row.RSRank252D)},
		Volume:    Cell{Text: VolumeMarker(row.Volume)},
		Intraday:  Cell{Text: FormatPercent(row.RetIntraday, 1), Class: StyleReturn(row.RetIntraday)},
		Ret1D:     Cell{Text: FormatPercent(row.Ret1D, 1), Class: StyleReturn(row.Ret1D)},
		Extension: Cell{Text: FormatExtension(row.Extension), Class: StyleExtension(row.Extension)},
		SMA10:     Cell{Text: CheckMarker(row.AboveSMA10)},
		SMA20:     Cell{Text: CheckMarker(row.AboveSMA20)},
		Stage:     Cell{Text: StageMarker(row.Stage)},
	}
}

// GroupView is a displayed section with its rows formatted for rendering.
type GroupView struct {
	Name   string `json:"name"`
	Anchor string `json:"anchor"`
	Rows   []Row  `json:"rows"`
}

// BuildGroups filters rows, partitions them into the fixed group order, and
// formats every surviving row. Empty groups are omitted.
func BuildGroups(rows []models.SnapshotRow, filters Filters) []GroupView {
	groups := PartitionGroups(filters.Apply(rows))

	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		view := GroupView{Name: g.Name, Anchor: g.Anchor, Rows: make([]Row, 0, len(g.Rows))}
		for _, row := range g.Rows {
			view.Rows = append(view.Rows, BuildRow(row))
		}
		views = append(views, view)
	}

	return views
}
