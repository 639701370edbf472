package scheduling

import (
	"time"

	"agendo/models"
)

// ResolveOccupancy merges pending/confirmed appointments and live holds
// into the set of occupied slot starts, keyed by minute value rather
// than grid index so membership tests agree across grid configurations.
// Each record claims [start, end+buffer); every slot-aligned tick whose
// slot interval overlaps that window is marked. Pending appointments,
// confirmed appointments, and live holds all occupy equally: two
// concurrent chat sessions must never be shown the same free slot
// before either confirms.
func ResolveOccupancy(
	appointments []models.Appointment,
	holds []models.Hold,
	slotSizeMinutes, bufferMinutes int,
	now time.Time,
) map[int]bool {
	occupied := make(map[int]bool)
	if slotSizeMinutes <= 0 {
		return occupied
	}

	for i := range appointments {
		a := &appointments[i]
		if !a.Occupying() {
			continue
		}
		markInterval(occupied, a.Start, a.EffectiveEnd()+bufferMinutes, slotSizeMinutes)
	}
	for i := range holds {
		h := &holds[i]
		// Expired holds are inert; they stop counting the moment
		// occupancy is next computed, no sweep involved.
		if !h.Live(now) {
			continue
		}
		markInterval(occupied, h.Start, h.End()+bufferMinutes, slotSizeMinutes)
	}
	return occupied
}

// markInterval marks every slot-aligned start whose slot overlaps
// [start, end).
func markInterval(occupied map[int]bool, start, end, slotSize int) {
	if end <= start {
		return
	}
	first := (start / slotSize) * slotSize
	for t := first; t < end; t += slotSize {
		if t+slotSize > start {
			occupied[t] = true
		}
	}
}
