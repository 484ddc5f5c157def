// Package render holds the pure presentation rules for snapshot rows: cell
// formatting, conditional style categories, filter predicates, and group
// partitioning. Nothing here touches HTTP or templates beyond producing
// strings, so every rule is testable against in-memory rows.
package render

import (
	"fmt"
	"strings"
)

// Stage markers for the four market-structure phases. Anything outside 1-4,
// including a missing stage, renders as the unknown marker.
var stageMarkers = map[int]string{
	1: "🟡",
	2: "🟢",
	3: "🟠",
	4: "🔴",
}

const unknownMarker = "⚪"

// Volume markers for the closed label set from the daily feed.
var volumeMarkers = map[string]string{
	"Pocket": "💎",
	"Normal": "⚪",
}

// truthyValues are the accepted spellings of boolean true in the feed,
// compared case-insensitively.
var truthyValues = map[string]bool{
	"true": true,
	"1":    true,
	"1.0":  true,
	"yes":  true,
}

// FormatPercent renders a fractional value as a percentage with the given
// decimal count. Missing values render as the empty string.
func FormatPercent(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.*f%%", decimals, *v*100)
}

// FormatExtension renders the extension ratio with one decimal.
func FormatExtension(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v)
}

// StageMarker maps a stage code to its marker. Missing and out-of-range
// codes both map to the unknown marker.
func StageMarker(s *int) string {
	if s == nil {
		return unknownMarker
	}
	if m, ok := stageMarkers[*s]; ok {
		return m
	}
	return unknownMarker
}

// VolumeMarker maps a volume classification label to its marker. Labels
// outside the known set, including the empty string, map to the default.
func VolumeMarker(v string) string {
	if m, ok := volumeMarkers[v]; ok {
		return m
	}
	return unknownMarker
}

// CheckMarker renders a boolean-like feed value. Missing values render as
// the empty string; recognised true spellings get the true marker, anything
// else the false marker.
func CheckMarker(v string) string {
	if v == "" {
		return ""
	}
	if truthyValues[strings.ToLower(v)] {
		return "✅"
	}
	return "❌"
}
