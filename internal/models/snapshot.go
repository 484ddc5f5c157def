// Package models defines the snapshot data structures shared across the portal.
package models

import (
	"time"
)

// TickerRow is one daily observation for a ticker from the daily feed.
// Pointer fields are nil when the source cell is empty; an empty cell is
// valid data, not an error.
type TickerRow struct {
	Ticker      string
	Date        time.Time
	RSToSPY     *float64 // relative strength vs the benchmark, drives the trend series
	RetIntraday *float64
	Ret1D       *float64
	RSRank21D   *float64 // percentile rank in [0,1]
	RSRank252D  *float64 // percentile rank in [0,1]
	Volume      string   // "Pocket", "Normal", or other
	Extension   *float64 // distance to trend reference in ATR multiples
	AboveSMA10  string   // raw boolean-like text, interpreted at render time
	AboveSMA20  string
	Group       string
}

// StageRow is one weekly stage observation for a ticker.
type StageRow struct {
	Ticker string
	Date   time.Time
	Stage  *int // 1-4, nil when absent
}

// SnapshotRow is the combined latest-known state for one ticker: the full
// relative-strength trend from the daily feed plus the most recent value of
// every other field, and the most recent weekly stage. The trend carries one
// entry per daily observation; a nil entry is an observation with no
// relative-strength value, so the series length always equals the ticker's
// daily row count.
type SnapshotRow struct {
	Ticker      string     `json:"ticker"`
	Trend       []*float64 `json:"trend"`
	Date        time.Time  `json:"date"`
	RetIntraday *float64   `json:"ret_intraday,omitempty"`
	Ret1D       *float64   `json:"ret_1d,omitempty"`
	RSRank21D   *float64   `json:"rs_rank_21d,omitempty"`
	RSRank252D  *float64   `json:"rs_rank_252d,omitempty"`
	Volume      string     `json:"volume,omitempty"`
	Extension   *float64   `json:"extension,omitempty"`
	AboveSMA10  string     `json:"above_sma10,omitempty"`
	AboveSMA20  string     `json:"above_sma20,omitempty"`
	Stage       *int       `json:"stage,omitempty"`
	Group       string     `json:"group,omitempty"`
}

// GroupOrder is the fixed display order for snapshot groups. Groups with no
// surviving rows after filtering are omitted from output.
var GroupOrder = []string{"Market", "Sector", "Commodity", "Crypto", "Country", "Theme", "Leader"}

// DisplayOrder is the fixed column order of the rendered tables.
var DisplayOrder = []string{
	"Ticker", "RS Trend", "RS 1M", "RS 1Y", "Volume",
	"Intraday", "1D Return", "Extension",
	"> SMA10", "> SMA20", "Stage",
}

// ColumnRename maps feed column names to display labels. The derived trend
// series is labelled "RS Trend" and has no feed-side source column; "group"
// passes through unrenamed and is retained for filtering only.
var ColumnRename = map[string]string{
	"ticker":                    "Ticker",
	"ret_intraday":              "Intraday",
	"ret_1d":                    "1D Return",
	"rs_rank_21d":               "RS 1M",
	"rs_rank_252d":              "RS 1Y",
	"pp_volume":                 "Volume",
	"ratio_pct_dist_to_atr_pct": "Extension",
	"above_sma10":               "> SMA10",
	"above_sma20":               "> SMA20",
	"stage_label_core":          "Stage",
	"group":                     "group",
}

// Float returns a pointer to v. Convenience for building rows in tests and
// parsers.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
