package render

import (
	"testing"

	"github.com/sanglocn/us-daily/internal/models"
)

func TestBuildRow_FormatsAndStyles(t *testing.T) {
	row := models.SnapshotRow{
		Ticker:      "AAPL",
		Trend:       trend(1.0, 1.2, 1.5),
		RetIntraday: models.Float(0.012),
		Ret1D:       models.Float(-0.004),
		RSRank21D:   models.Float(0.92),
		RSRank252D:  models.Float(0.45),
		Volume:      "Pocket",
		Extension:   models.Float(2.5),
		AboveSMA10:  "TRUE",
		AboveSMA20:  "0",
		Stage:       models.Int(2),
		Group:       "Leader",
	}

	v := BuildRow(row)

	if v.Ticker != "AAPL" {
		t.Errorf("ticker: got %q", v.Ticker)
	}
	if v.Spark == "" {
		t.Error("expected a sparkline for a non-empty trend")
	}
	if v.Intraday.Text != "1.2%" || v.Intraday.Class != StylePositive {
		t.Errorf("intraday: got %+v", v.Intraday)
	}
	if v.Ret1D.Text != "-0.4%" || v.Ret1D.Class != StyleNegative {
		t.Errorf("1d return: got %+v", v.Ret1D)
	}
	if v.RS1M.Text != "92%" || v.RS1M.Class != StyleStrong {
		t.Errorf("rs 1m: got %+v", v.RS1M)
	}
	if v.RS1Y.Text != "45%" || v.RS1Y.Class != StyleWeak {
		t.Errorf("rs 1y: got %+v", v.RS1Y)
	}
	if v.Volume.Text != "💎" {
		t.Errorf("volume: got %+v", v.Volume)
	}
	if v.Extension.Text != "2.5" || v.Extension.Class != StyleStrong {
		t.Errorf("extension: got %+v", v.Extension)
	}
	if v.SMA10.Text != "✅" || v.SMA20.Text != "❌" {
		t.Errorf("sma markers: got %q %q", v.SMA10.Text, v.SMA20.Text)
	}
	if v.Stage.Text != "🟢" {
		t.Errorf("stage: got %+v", v.Stage)
	}
}

func TestBuildRow_MissingValuesRenderEmpty(t *testing.T) {
	v := BuildRow(models.SnapshotRow{Ticker: "NOVAL", Group: "Theme"})

	for name, cell := range map[string]Cell{
		"intraday":  v.Intraday,
		"ret1d":     v.Ret1D,
		"rs1m":      v.RS1M,
		"rs1y":      v.RS1Y,
		"extension": v.Extension,
		"sma10":     v.SMA10,
		"sma20":     v.SMA20,
	} {
		if cell.Text != "" {
			t.Errorf("%s: expected empty text, got %q", name, cell.Text)
		}
		if cell.Class != StyleNone {
			t.Errorf("%s: expected no style, got %q", name, cell.Class)
		}
	}

	// Markers with explicit defaults for missing values
	if v.Stage.Text != "⚪" {
		t.Errorf("stage: expected unknown marker, got %q", v.Stage.Text)
	}
	if v.Volume.Text != "⚪" {
		t.Errorf("volume: expected default marker, got %q", v.Volume.Text)
	}
	if v.Spark != "" {
		t.Error("expected no sparkline without a trend")
	}
}

func TestBuildGroups_FilterThenPartition(t *testing.T) {
	rows := []models.SnapshotRow{
		{Ticker: "SPY", Group: "Market", Stage: models.Int(2)},
		{Ticker: "QQQ", Group: "Market", Stage: models.Int(3)},
		{Ticker: "NVDA", Group: "Leader", Stage: models.Int(2)},
	}

	groups := BuildGroups(rows, Filters{Stage2Only: true})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Market" || len(groups[0].Rows) != 1 || groups[0].Rows[0].Ticker != "SPY" {
		t.Errorf("unexpected Market group: %+v", groups[0])
	}
	if groups[1].Name != "Leader" || groups[1].Rows[0].Ticker != "NVDA" {
		t.Errorf("unexpected Leader group: %+v", groups[1])
	}
}
