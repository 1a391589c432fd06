package interval

import (
	"sort"
	"time"
)

// TimePeriod is a span of time on a calendar. Both bounds are instants;
// periods with a zero bound are treated as non-constraining and skipped
// during free-slot derivation.
type TimePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// overlapsOrAdjacent reports whether next begins at or before the end of
// cur. Touching periods count as overlapping so they coalesce instead of
// producing a zero-length gap.
func overlapsOrAdjacent(cur, next TimePeriod) bool {
	return !next.Start.After(cur.End)
}

// laterEnd returns the later of the two period ends.
func laterEnd(a, b TimePeriod) time.Time {
	if b.End.After(a.End) {
		return b.End
	}
	return a.End
}

// Merge coalesces overlapping and adjacent busy periods into a minimal
// disjoint set, sorted ascending by start. The input is not modified.
func Merge(periods []TimePeriod) []TimePeriod {
	if len(periods) == 0 {
		return nil
	}

	sorted := make([]TimePeriod, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []TimePeriod{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if overlapsOrAdjacent(*last, cur) {
			last.End = laterEnd(*last, cur)
		} else {
			merged = append(merged, cur)
		}
	}
	return merged
}

// DeriveFree computes the gaps of window not covered by any busy period.
// busy must be disjoint and sorted ascending by start (the output of
// Merge). The cursor never moves backward, so a busy period fully inside
// an already-consumed region contributes nothing.
func DeriveFree(window TimePeriod, busy []TimePeriod) []TimePeriod {
	var free []TimePeriod
	cursor := window.Start

	for _, b := range busy {
		if b.Start.IsZero() || b.End.IsZero() {
			continue
		}
		if cursor.Before(b.Start) {
			free = append(free, TimePeriod{Start: cursor, End: b.Start})
		}
		if cursor.Before(b.End) {
			cursor = b.End
		}
	}

	if cursor.Before(window.End) {
		free = append(free, TimePeriod{Start: cursor, End: window.End})
	}
	return free
}
