package render

import (
	"fmt"
	"html/template"
	"strings"
)

// Sparkline geometry. Small enough to sit inside a table cell. The y-axis is
// pinned to a fixed domain rather than auto-scaled per series, so trend
// shapes are visually comparable across tickers; values outside the domain
// clamp to its edges.
const (
	sparkWidth     = 120.0
	sparkHeight    = 28.0
	sparkPad       = 2.0
	sparkDomainMin = 0.0
	sparkDomainMax = 20.0
)

// Sparkline renders a trend series as an inline SVG path. Every entry in the
// series occupies an x-position; nil entries draw nothing and break the line,
// so gaps in the data stay visible as gaps. An empty or all-nil series
// renders as an empty string.
func Sparkline(points []*float64) template.HTML {
	if len(points) == 0 {
		return ""
	}

	step := 0.0
	if len(points) > 1 {
		step = (sparkWidth - 2*sparkPad) / float64(len(points)-1)
	}

	var path strings.Builder
	pen := false
	for i, p := range points {
		if p == nil {
			pen = false
			continue
		}

		v := *p
		if v < sparkDomainMin {
			v = sparkDomainMin
		}
		if v > sparkDomainMax {
			v = sparkDomainMax
		}

		x := sparkPad + float64(i)*step
		y := sparkPad + (sparkHeight-2*sparkPad)*(1-(v-sparkDomainMin)/(sparkDomainMax-sparkDomainMin))

		cmd := "L"
		if !pen {
			cmd = "M"
			pen = true
		}
		fmt.Fprintf(&path, "%s%.1f,%.1f", cmd, x, y)
	}
	if path.Len() == 0 {
		return ""
	}

	svg := fmt.Sprintf(
		`<svg class="spark" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" preserveAspectRatio="none"><path d="%s" fill="none" stroke="currentColor" stroke-width="1.5"/></svg>`,
		sparkWidth, sparkHeight, sparkWidth, sparkHeight, path.String(),
	)

	return template.HTML(svg)
}
