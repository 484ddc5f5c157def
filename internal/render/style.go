package render

// Style categories applied as CSS classes to table cells. Formatting and
// styling stay separate so each can be tested on its own.
const (
	StylePositive = "positive"
	StyleNegative = "negative"
	StyleStrong   = "strong"
	StyleNeutral  = "neutral"
	StyleCaution  = "caution"
	StyleWeak     = "weak"
	StyleNone     = ""
)

// StyleReturn categorizes a return value. Zero counts as negative: the rule
// is strictly greater than zero.
func StyleReturn(v *float64) string {
	if v == nil {
		return StyleNone
	}
	if *v > 0 {
		return StylePositive
	}
	return StyleNegative
}

// StyleRank categorizes a percentile rank. 0.85 and above is strong, 0.50
// up to but excluding 0.85 is neutral, below 0.50 is weak.
func StyleRank(v *float64) string {
	switch {
	case v == nil:
		return StyleNone
	case *v >= 0.85:
		return StyleStrong
	case *v >= 0.50:
		return StyleNeutral
	default:
		return StyleWeak
	}
}

// StyleExtension categorizes the extension ratio. Boundaries are inclusive
// on the lower category: exactly 4 is strong, exactly 10 is caution.
func StyleExtension(v *float64) string {
	switch {
	case v == nil:
		return StyleNone
	case *v < 0:
		return StyleNeutral
	case *v <= 4:
		return StyleStrong
	case *v <= 10:
		return StyleCaution
	default:
		return StyleWeak
	}
}
