package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sanglocn/us-daily/internal/models"
)

const dateLayout = "2006-01-02"

// dailyColumns are the columns the daily table must carry.
var dailyColumns = []string{
	"ticker", "date", "rs_to_spy", "ret_intraday", "ret_1d",
	"rs_rank_21d", "rs_rank_252d", "pp_volume",
	"ratio_pct_dist_to_atr_pct", "above_sma10", "above_sma20", "group",
}

// weeklyColumns are the columns the weekly table must carry.
var weeklyColumns = []string{"ticker", "date", "stage_label_core"}

// ParseDailyCSV parses the daily table. A missing required column is a
// SchemaError; a malformed date or numeric cell is a DataFormatError.
// Empty cells in measure columns are valid and parse to nil.
func ParseDailyCSV(r io.Reader) ([]models.TickerRow, error) {
	records, idx, err := readTable(r, "daily", dailyColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]models.TickerRow, 0, len(records))
	for i, rec := range records {
		line := i + 2 // header is line 1

		date, err := parseDate("daily", "date", line, rec[idx["date"]])
		if err != nil {
			return nil, err
		}

		row := models.TickerRow{
			Ticker:     strings.TrimSpace(rec[idx["ticker"]]),
			Date:       date,
			Volume:     strings.TrimSpace(rec[idx["pp_volume"]]),
			AboveSMA10: strings.TrimSpace(rec[idx["above_sma10"]]),
			AboveSMA20: strings.TrimSpace(rec[idx["above_sma20"]]),
			Group:      strings.TrimSpace(rec[idx["group"]]),
		}

		if row.RSToSPY, err = parseFloat("daily", "rs_to_spy", line, rec[idx["rs_to_spy"]]); err != nil {
			return nil, err
		}
		if row.RetIntraday, err = parseFloat("daily", "ret_intraday", line, rec[idx["ret_intraday"]]); err != nil {
			return nil, err
		}
		if row.Ret1D, err = parseFloat("daily", "ret_1d", line, rec[idx["ret_1d"]]); err != nil {
			return nil, err
		}
		if row.RSRank21D, err = parseFloat("daily", "rs_rank_21d", line, rec[idx["rs_rank_21d"]]); err != nil {
			return nil, err
		}
		if row.RSRank252D, err = parseFloat("daily", "rs_rank_252d", line, rec[idx["rs_rank_252d"]]); err != nil {
			return nil, err
		}
		if row.Extension, err = parseFloat("daily", "ratio_pct_dist_to_atr_pct", line, rec[idx["ratio_pct_dist_to_atr_pct"]]); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ParseWeeklyCSV parses the weekly stage table. Stage values may arrive as
// "2" or "2.0"; both parse to the integer code 2. An empty stage is nil.
func ParseWeeklyCSV(r io.Reader) ([]models.StageRow, error) {
	records, idx, err := readTable(r, "weekly", weeklyColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]models.StageRow, 0, len(records))
	for i, rec := range records {
		line := i + 2

		date, err := parseDate("weekly", "date", line, rec[idx["date"]])
		if err != nil {
			return nil, err
		}

		stage, err := parseStage("weekly", "stage_label_core", line, rec[idx["stage_label_core"]])
		if err != nil {
			return nil, err
		}

		rows = append(rows, models.StageRow{
			Ticker: strings.TrimSpace(rec[idx["ticker"]]),
			Date:   date,
			Stage:  stage,
		})
	}

	return rows, nil
}

// readTable reads all records and validates the header against required
// columns. Returns data records and a column name -> index map.
func readTable(r io.Reader, table string, required []string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s table: %w", table, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s table is empty", table)
	}

	idx := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, &models.SchemaError{Table: table, Column: col}
		}
	}

	return all[1:], idx, nil
}

func parseDate(table, field string, line int, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &models.DataFormatError{Table: table, Field: field, Line: line, Err: err}
	}
	return t, nil
}

func parseFloat(table, field string, line int, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &models.DataFormatError{Table: table, Field: field, Line: line, Err: err}
	}
	return &v, nil
}

func parseStage(table, field string, line int, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &models.DataFormatError{Table: table, Field: field, Line: line, Err: err}
	}
	stage := int(math.Round(v))
	return &stage, nil
}
