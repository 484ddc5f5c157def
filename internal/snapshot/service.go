package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sanglocn/us-daily/internal/common"
	"github.com/sanglocn/us-daily/internal/models"
)

// Source supplies the two feed tables.
type Source interface {
	FetchDaily(ctx context.Context) ([]models.TickerRow, error)
	FetchWeekly(ctx context.Context) ([]models.StageRow, error)
}

// Service memoizes the combined snapshot for a fixed TTL. Within the window
// requests reuse the cached build; after expiry the next request refetches
// both tables and rebuilds. A failed rebuild caches nothing — the snapshot
// is all-or-nothing, never partial.
type Service struct {
	source Source
	ttl    time.Duration
	logger *common.Logger

	mu      sync.Mutex
	rows    []models.SnapshotRow
	builtAt time.Time

	cron *cron.Cron
}

// NewService creates a snapshot service. A non-positive ttl falls back to
// the default snapshot freshness window.
func NewService(source Source, ttl time.Duration, logger *common.Logger) *Service {
	if ttl <= 0 {
		ttl = common.FreshnessSnapshot
	}
	return &Service{
		source: source,
		ttl:    ttl,
		logger: logger,
	}
}

// Snapshot returns the current snapshot rows, rebuilding from the feeds when
// the cached build has expired.
func (s *Service) Snapshot(ctx context.Context) ([]models.SnapshotRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if common.IsFresh(s.builtAt, s.ttl) {
		return s.rows, nil
	}

	rows, err := s.rebuild(ctx)
	if err != nil {
		return nil, err
	}

	s.rows = rows
	s.builtAt = time.Now()
	return rows, nil
}

// Refresh forces a rebuild regardless of freshness. On failure the previous
// cached snapshot (if still unexpired) stays authoritative.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rebuild(ctx)
	if err != nil {
		return err
	}

	s.rows = rows
	s.builtAt = time.Now()
	return nil
}

// rebuild fetches both tables and derives the snapshot. Must be called with
// mu held.
func (s *Service) rebuild(ctx context.Context) ([]models.SnapshotRow, error) {
	start := time.Now()

	daily, err := s.source.FetchDaily(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot rebuild: %w", err)
	}
	weekly, err := s.source.FetchWeekly(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot rebuild: %w", err)
	}

	rows := Build(daily, weekly)

	if s.logger != nil {
		s.logger.Info().
			Int("daily_rows", len(daily)).
			Int("weekly_rows", len(weekly)).
			Int("tickers", len(rows)).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("snapshot rebuilt")
	}

	return rows, nil
}

// StartRefreshCron schedules background refreshes so the cache is warm when
// requests arrive. A refresh failure is logged; the unexpired cached
// snapshot remains authoritative.
func (s *Service) StartRefreshCron(spec string) error {
	if spec == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.Refresh(ctx); err != nil && s.logger != nil {
			s.logger.Warn().Str("error", err.Error()).Msg("scheduled snapshot refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register refresh cron %q: %w", spec, err)
	}

	c.Start()
	s.cron = c

	if s.logger != nil {
		s.logger.Info().Str("cron", spec).Msg("snapshot refresh scheduled")
	}
	return nil
}

// Stop halts the background refresh schedule, if any.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
