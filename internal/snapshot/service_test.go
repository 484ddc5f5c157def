package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanglocn/us-daily/internal/models"
)

// fakeSource counts fetches and can be made to fail.
type fakeSource struct {
	dailyCalls  int
	weeklyCalls int
	fail        bool
}

func (f *fakeSource) FetchDaily(ctx context.Context) ([]models.TickerRow, error) {
	f.dailyCalls++
	if f.fail {
		return nil, errors.New("feed unavailable")
	}
	return []models.TickerRow{
		{Ticker: "SPY", Date: day("2026-08-26"), RSToSPY: models.Float(1.0), Group: "Market"},
	}, nil
}

func (f *fakeSource) FetchWeekly(ctx context.Context) ([]models.StageRow, error) {
	f.weeklyCalls++
	if f.fail {
		return nil, errors.New("feed unavailable")
	}
	return []models.StageRow{
		{Ticker: "SPY", Date: day("2026-08-21"), Stage: models.Int(2)},
	}, nil
}

func TestService_SnapshotMemoizedWithinTTL(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, time.Hour, nil)

	first, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || first[0].Ticker != "SPY" {
		t.Fatalf("unexpected rows: %+v", first)
	}

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.dailyCalls != 1 || src.weeklyCalls != 1 {
		t.Errorf("expected one fetch per table within TTL, got daily=%d weekly=%d", src.dailyCalls, src.weeklyCalls)
	}
}

func TestService_RebuildsAfterExpiry(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, 30*time.Millisecond, nil)

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(40 * time.Millisecond)

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.dailyCalls != 2 {
		t.Errorf("expected a refetch after TTL expiry, got %d daily fetches", src.dailyCalls)
	}
}

func TestService_FailedBuildCachesNothing(t *testing.T) {
	src := &fakeSource{fail: true}
	svc := NewService(src, time.Hour, nil)

	if _, err := svc.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}

	// Source recovers: the next call must fetch again rather than serve a
	// cached failure.
	src.fail = false
	rows, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected rows after recovery, got %d", len(rows))
	}
}

func TestService_RefreshForcesRebuild(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, time.Hour, nil)

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.dailyCalls != 2 {
		t.Errorf("expected refresh to refetch, got %d daily fetches", src.dailyCalls)
	}
}

func TestService_RefreshCron(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, time.Hour, nil)

	if err := svc.StartRefreshCron(""); err != nil {
		t.Errorf("empty cron spec should be a no-op, got %v", err)
	}

	if err := svc.StartRefreshCron("not a cron spec"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
	svc.Stop()
}
