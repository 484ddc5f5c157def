package common

import (
	"testing"
	"time"
)

func TestNewLogger_ReturnsNonNil(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{Level: "info", Outputs: []string{"console"}})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
}

func TestLogger_FluentAPI(t *testing.T) {
	// Must not panic — proves the fluent chain works with arbor
	logger := NewSilentLogger()
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Error().Err(nil).Msg("error message")
	logger.Debug().Float64("rate", 3.14).Bool("ok", true).Msg("debug")
}

func TestNewSilentLogger_DiscardsOutput(t *testing.T) {
	logger := NewSilentLogger()
	if logger == nil {
		t.Fatal("NewSilentLogger returned nil")
	}
	logger.Info().Str("key", "value").Msg("should be discarded")
	logger.Error().Msg("should be discarded")
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewSilentLogger()
	withID := logger.WithCorrelationId("abc-123")
	if withID == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if withID == logger {
		t.Error("WithCorrelationId should return a new logger")
	}
	withID.Info().Msg("tagged message")
}

func TestNewLoggerFromConfig_EmptyLevelDefaultsToInfo(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{Outputs: []string{"console"}})
	if logger == nil {
		t.Fatal("expected a logger for empty level")
	}
	logger.Info().Msg("default level message")
}

func TestIsFresh(t *testing.T) {
	now := time.Now()

	if !IsFresh(now, time.Hour) {
		t.Error("a just-updated timestamp should be fresh")
	}
	if IsFresh(now.Add(-2*time.Hour), time.Hour) {
		t.Error("a timestamp older than the TTL should be stale")
	}
	if IsFresh(time.Time{}, time.Hour) {
		t.Error("the zero time should never be fresh")
	}
}
