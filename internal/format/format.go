// Package format renders nanosecond quantities and relative changes
// for the reporter's diagnostic lines.
package format

import (
	"fmt"
)

// short keeps roughly five significant digits across magnitudes.
func short(n float64) string {
	switch {
	case n < 10:
		return fmt.Sprintf("%.4f", n)
	case n < 100:
		return fmt.Sprintf("%.3f", n)
	case n < 1000:
		return fmt.Sprintf("%.2f", n)
	case n < 10000:
		return fmt.Sprintf("%.1f", n)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

// Time renders a nanosecond quantity with an auto-selected unit.
func Time(ns float64) string {
	switch {
	case ns < 1:
		return short(ns*1e3) + " ps"
	case ns < 1e3:
		return short(ns) + " ns"
	case ns < 1e6:
		return short(ns/1e3) + " us"
	case ns < 1e9:
		return short(ns/1e6) + " ms"
	default:
		return short(ns/1e9) + " s"
	}
}

// Change renders a relative change as a percentage. When signed, a
// leading '+' marks increases.
func Change(pct float64, signed bool) string {
	if signed {
		return fmt.Sprintf("%+.4f%%", pct*100)
	}
	return fmt.Sprintf("%.4f%%", pct*100)
}

// Iters renders an iteration count for progress lines.
func Iters(n uint64) string {
	switch {
	case n < 10_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000_000:
		return fmt.Sprintf("%.1fk", float64(n)/1e3)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	}
}
