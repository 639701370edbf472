package scheduling

import (
	"time"

	"agendo/models"
)

// ShiftsFor resolves the valid shifts for a calendar date. Malformed
// shifts (open >= close) are dropped here so one bad entry never aborts
// the whole day's grid.
func ShiftsFor(date time.Time, week *models.WeekSchedule) []models.Shift {
	if week == nil {
		week = models.AlwaysOpen()
	}
	day := week.DayFor(date)
	if !day.IsOpen {
		return nil
	}
	var shifts []models.Shift
	for _, s := range day.Shifts {
		if s.Valid() {
			shifts = append(shifts, s)
		}
	}
	return shifts
}

// ShiftContaining returns the shift whose [open, close) covers the
// given minute, or nil when the minute falls outside every shift.
func ShiftContaining(shifts []models.Shift, minute int) *models.Shift {
	for i := range shifts {
		if shifts[i].Contains(minute) {
			return &shifts[i]
		}
	}
	return nil
}
