package models

import "time"

// Shift is one open/close interval within a single day.
// Times are minutes from midnight (e.g., 540 for 9:00 AM).
type Shift struct {
	Open  int `bson:"open" json:"open"`
	Close int `bson:"close" json:"close"`
}

// Valid reports whether the shift is well formed. Malformed shifts are
// skipped during grid generation rather than failing the whole day.
func (s Shift) Valid() bool {
	return s.Open >= 0 && s.Close <= 24*60 && s.Open < s.Close
}

// Contains reports whether minute m falls within [Open, Close).
func (s Shift) Contains(m int) bool {
	return m >= s.Open && m < s.Close
}

// DaySchedule describes one weekday's opening state.
// If IsOpen is false, Shifts is ignored.
type DaySchedule struct {
	IsOpen bool    `bson:"isOpen" json:"isOpen"`
	Shifts []Shift `bson:"shifts,omitempty" json:"shifts,omitempty"`
}

// WeekSchedule holds one DaySchedule per weekday, indexed by time.Weekday
// (0 = Sunday). It is immutable for the duration of a scheduling call.
type WeekSchedule struct {
	Days [7]DaySchedule `bson:"days" json:"days"`
}

// DayFor resolves the DaySchedule for a calendar date.
func (w *WeekSchedule) DayFor(date time.Time) DaySchedule {
	return w.Days[int(date.Weekday())]
}

// AlwaysOpen returns a schedule with a single full-day shift for every
// weekday. Businesses without configured working hours resolve to this,
// so the engine never branches on "unrestricted" vs "configured".
func AlwaysOpen() *WeekSchedule {
	var w WeekSchedule
	for i := range w.Days {
		w.Days[i] = DaySchedule{
			IsOpen: true,
			Shifts: []Shift{{Open: 0, Close: 24 * 60}},
		}
	}
	return &w
}

// GridConfig controls slot quantization for a business.
type GridConfig struct {
	SlotSizeMinutes int `bson:"slotSizeMinutes" json:"slotSizeMinutes"`
	BufferMinutes   int `bson:"bufferMinutes" json:"bufferMinutes"`
}

// Defaults applied when a business has no grid configuration stored.
const (
	DefaultSlotSizeMinutes = 30
	DefaultBufferMinutes   = 0
)

// StoredDaySchedule is the persisted shape of a day's working hours.
// Older business documents carry a single open/close pair instead of a
// shifts list; the business repository normalizes both into DaySchedule
// at load time so the engine only ever sees the shifts form.
type StoredDaySchedule struct {
	IsOpen bool    `bson:"isOpen" json:"isOpen"`
	Open   *int    `bson:"open,omitempty" json:"open,omitempty"`
	Close  *int    `bson:"close,omitempty" json:"close,omitempty"`
	Shifts []Shift `bson:"shifts,omitempty" json:"shifts,omitempty"`
}

// StoredWeekSchedule is the persisted week shape, keyed Sunday..Saturday.
type StoredWeekSchedule struct {
	Days [7]StoredDaySchedule `bson:"days" json:"days"`
}
