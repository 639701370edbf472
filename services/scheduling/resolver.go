package scheduling

import "sort"

// RoundUpToGrid rounds a requested minute up to the next multiple of
// the slot size, anchored at midnight. The result is always >= the
// request. Grids of shifts that open off the slot-size lattice keep
// their own alignment; such requests resolve through alternatives.
func RoundUpToGrid(minute, slotSizeMinutes int) int {
	if slotSizeMinutes <= 0 || minute <= 0 {
		return minute
	}
	return ((minute + slotSizeMinutes - 1) / slotSizeMinutes) * slotSizeMinutes
}

// ResolveRequestedTime maps an arbitrary requested minute onto the
// valid-start list. When the rounded request is itself valid it is
// returned directly; otherwise the nearest alternatives (by absolute
// minute distance, earliest-first on ties) are proposed.
func ResolveRequestedTime(requested int, validStarts []int, slotSizeMinutes int) (resolved int, ok bool, alternatives []int) {
	rounded := RoundUpToGrid(requested, slotSizeMinutes)
	for _, s := range validStarts {
		if s == rounded {
			return rounded, true, nil
		}
	}
	return rounded, false, NearestAlternatives(validStarts, rounded, 3)
}

// NearestAlternatives returns up to limit valid starts ordered by
// absolute distance to the target minute, ties broken by earliest time.
func NearestAlternatives(validStarts []int, target, limit int) []int {
	if len(validStarts) == 0 || limit <= 0 {
		return nil
	}
	sorted := make([]int, len(validStarts))
	copy(sorted, validStarts)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := absDist(sorted[i], target), absDist(sorted[j], target)
		if di == dj {
			return sorted[i] < sorted[j]
		}
		return di < dj
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func absDist(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
