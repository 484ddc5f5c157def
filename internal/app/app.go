package app

import (
	"time"

	"github.com/sanglocn/us-daily/internal/common"
	"github.com/sanglocn/us-daily/internal/config"
	"github.com/sanglocn/us-daily/internal/feed"
	"github.com/sanglocn/us-daily/internal/handlers"
	"github.com/sanglocn/us-daily/internal/mcp"
	"github.com/sanglocn/us-daily/internal/snapshot"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Snapshot *snapshot.Service

	// HTTP handlers
	DashboardHandler   *handlers.DashboardHandler
	SnapshotAPIHandler *handlers.SnapshotAPIHandler
	HealthHandler      *handlers.HealthHandler
	VersionHandler     *handlers.VersionHandler
	MCPHandler         *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	client := feed.NewClient(cfg.Feed)
	ttl := time.Duration(cfg.Feed.SnapshotTTLMinutes) * time.Minute
	a.Snapshot = snapshot.NewService(client, ttl, logger)

	if err := a.Snapshot.StartRefreshCron(cfg.Feed.RefreshCron); err != nil {
		return nil, err
	}

	a.initHandlers()

	logger.Info().
		Str("daily_url", cfg.Feed.DailyURL).
		Str("weekly_url", cfg.Feed.WeeklyURL).
		Int("snapshot_ttl_minutes", cfg.Feed.SnapshotTTLMinutes).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.Snapshot)
	a.SnapshotAPIHandler = handlers.NewSnapshotAPIHandler(a.Logger, a.Snapshot)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.MCPHandler = mcp.NewHandler(a.Snapshot, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Snapshot != nil {
		a.Snapshot.Stop()
	}
	return nil
}
