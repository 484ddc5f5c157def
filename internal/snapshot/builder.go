// Package snapshot derives the per-ticker market snapshot from the daily
// and weekly feed tables.
package snapshot

import (
	"sort"

	"github.com/sanglocn/us-daily/internal/models"
)

// Build combines the two feed tables into one SnapshotRow per ticker that
// appears in the daily table:
//
//   - the relative-strength trend series, chronological, one point per
//     daily observation; observations with no relative-strength value carry
//     a nil placeholder, so the series length equals the ticker's daily row
//     count;
//   - the latest daily row's fields, "latest" meaning maximum date;
//   - the latest weekly stage, left-joined by ticker (tickers absent from
//     the weekly table get no stage).
//
// When two rows share the maximal date the one later in source order wins
// (stable sort by date, take last). Output is ordered by ticker.
func Build(daily []models.TickerRow, weekly []models.StageRow) []models.SnapshotRow {
	sortedDaily := make([]models.TickerRow, len(daily))
	copy(sortedDaily, daily)
	sort.SliceStable(sortedDaily, func(i, j int) bool {
		return sortedDaily[i].Date.Before(sortedDaily[j].Date)
	})

	trends := make(map[string][]*float64)
	latest := make(map[string]models.TickerRow)
	for _, row := range sortedDaily {
		trends[row.Ticker] = append(trends[row.Ticker], row.RSToSPY)
		latest[row.Ticker] = row
	}

	sortedWeekly := make([]models.StageRow, len(weekly))
	copy(sortedWeekly, weekly)
	sort.SliceStable(sortedWeekly, func(i, j int) bool {
		return sortedWeekly[i].Date.Before(sortedWeekly[j].Date)
	})

	stages := make(map[string]*int)
	for _, row := range sortedWeekly {
		stages[row.Ticker] = row.Stage
	}

	tickers := make([]string, 0, len(latest))
	for ticker := range latest {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	rows := make([]models.SnapshotRow, 0, len(tickers))
	for _, ticker := range tickers {
		last := latest[ticker]
		rows = append(rows, models.SnapshotRow{
			Ticker:      ticker,
			Trend:       trends[ticker],
			Date:        last.Date,
			RetIntraday: last.RetIntraday,
			Ret1D:       last.Ret1D,
			RSRank21D:   last.RSRank21D,
			RSRank252D:  last.RSRank252D,
			Volume:      last.Volume,
			Extension:   last.Extension,
			AboveSMA10:  last.AboveSMA10,
			AboveSMA20:  last.AboveSMA20,
			Stage:       stages[ticker],
			Group:       last.Group,
		})
	}

	return rows
}
