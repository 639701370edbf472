package scheduling

import (
	"sort"
	"time"

	"agendo/models"
	"agendo/utils"
)

// RequiredSlots returns how many consecutive slots a service duration
// needs on the given grid.
func RequiredSlots(durationMinutes, slotSizeMinutes int) int {
	if slotSizeMinutes <= 0 || durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + slotSizeMinutes - 1) / slotSizeMinutes
}

// FindAvailableStarts slides a window of the required slot count over
// the grid and returns every start that can host the full duration. A
// window is valid only when all of its entries are contiguous (exactly
// one slot width apart, which rules out runs that cross a gap between
// shifts or fall off the grid's end) and none is occupied. Partial fits
// are never offered: a start whose appointment would run past closing
// or into occupied time is rejected even when only its last slot
// violates.
func FindAvailableStarts(grid []int, occupied map[int]bool, slotSizeMinutes, durationMinutes int) []int {
	required := RequiredSlots(durationMinutes, slotSizeMinutes)
	if required == 0 {
		return nil
	}

	var starts []int
	for i := 0; i+required <= len(grid); i++ {
		valid := true
		for j := 0; j < required; j++ {
			if grid[i+j] != grid[i]+j*slotSizeMinutes || occupied[grid[i+j]] {
				valid = false
				break
			}
		}
		if valid {
			starts = append(starts, grid[i])
		}
	}
	return starts
}

// BusyIntervals renders the occupied windows of a day as merged,
// human-readable intervals for "is X free?" style queries.
func BusyIntervals(appointments []models.Appointment, holds []models.Hold, bufferMinutes int, now time.Time) []models.BusyInterval {
	type window struct{ start, end int }
	var windows []window

	for i := range appointments {
		a := &appointments[i]
		if !a.Occupying() {
			continue
		}
		windows = append(windows, window{a.Start, a.EffectiveEnd() + bufferMinutes})
	}
	for i := range holds {
		h := &holds[i]
		if !h.Live(now) {
			continue
		}
		windows = append(windows, window{h.Start, h.End() + bufferMinutes})
	}
	if len(windows) == 0 {
		return nil
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].start == windows[j].start {
			return windows[i].end < windows[j].end
		}
		return windows[i].start < windows[j].start
	})

	merged := []window{windows[0]}
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.start <= last.end {
			if w.end > last.end {
				last.end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}

	intervals := make([]models.BusyInterval, 0, len(merged))
	for _, w := range merged {
		intervals = append(intervals, models.BusyInterval{
			Start: w.start,
			End:   w.end,
			Label: utils.MinutesToClock(w.start) + " - " + utils.MinutesToClock(w.end),
		})
	}
	return intervals
}
