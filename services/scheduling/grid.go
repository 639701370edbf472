package scheduling

import (
	"sort"
	"time"

	"agendo/models"
)

// BuildDayGrid produces the ordered set of valid slot starts (minutes
// from midnight) for one calendar date. Each shift contributes
// open, open+slotSize, open+2*slotSize, ... and a start is emitted only
// when its own full slot still fits before the shift's close. The
// per-shift sequences are concatenated, sorted, and de-duplicated;
// shifts should not overlap by construction, but de-duplication guards
// against misconfigured documents.
func BuildDayGrid(date time.Time, week *models.WeekSchedule, slotSizeMinutes int) []int {
	if slotSizeMinutes <= 0 {
		return nil
	}

	var grid []int
	for _, shift := range ShiftsFor(date, week) {
		for m := shift.Open; m+slotSizeMinutes <= shift.Close; m += slotSizeMinutes {
			grid = append(grid, m)
		}
	}
	if len(grid) == 0 {
		return nil
	}

	sort.Ints(grid)
	deduped := grid[:1]
	for _, m := range grid[1:] {
		if m != deduped[len(deduped)-1] {
			deduped = append(deduped, m)
		}
	}
	return deduped
}
