package config

// NewDefaultConfig creates a configuration with default values. The feed
// URLs point at the published us_daily snapshot tables.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4310,
			Host: "localhost",
		},
		Feed: FeedConfig{
			DailyURL:           "https://raw.githubusercontent.com/sanglocn/us_daily/main/data/us_snapshot_ohlcv_daily.csv",
			WeeklyURL:          "https://raw.githubusercontent.com/sanglocn/us_daily/main/data/us_snapshot_ohlcv_weekly.csv",
			TimeoutSeconds:     30,
			SnapshotTTLMinutes: 60,
			RefreshCron:        "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
		},
	}
}
