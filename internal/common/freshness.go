package common

import "time"

// Freshness TTLs for derived data. The combined snapshot is memoized for
// FreshnessSnapshot; within the window repeated requests reuse the cached
// build, after expiry the next request refetches both feeds and rebuilds.
const (
	FreshnessSnapshot = 1 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL.
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
