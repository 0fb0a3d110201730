package playback

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as m:ss, flooring to whole seconds.
// Negative and non-finite input renders as 0:00.
func FormatTime(seconds float64) string {
	safe := math.Floor(finite(seconds))
	if safe < 0 {
		safe = 0
	}
	total := int64(safe)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// finite maps NaN and ±Inf to zero
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// nonNegative normalises media-reported times: non-finite and negative become 0
func nonNegative(v float64) float64 {
	return math.Max(finite(v), 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
