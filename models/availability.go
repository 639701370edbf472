package models

// BusyInterval represents a continuous occupied time block, for
// "is X free?" style queries from the chat layer.
type BusyInterval struct {
	Start int    `json:"start"` // Minutes from midnight
	End   int    `json:"end"`   // Minutes from midnight
	Label string `json:"label"` // e.g., "10:00 - 10:30"
}

// AvailabilityResponse is returned by the availability endpoints.
type AvailabilityResponse struct {
	Date          string         `json:"date"`
	Open          bool           `json:"open"`
	BusyIntervals []BusyInterval `json:"busyIntervals,omitempty"`
	Times         []string       `json:"times,omitempty"` // "HH:mm" entries or "das HH:mm às HH:mm" ranges
}

// BookingResult is the discriminated result of every lifecycle
// operation. Domain failures never cross the boundary as errors.
type BookingResult struct {
	Success     bool         `json:"success"`
	Appointment *Appointment `json:"appointment,omitempty"`
	Error       string       `json:"error,omitempty"`
	ErrorKind   string       `json:"errorKind,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"` // "HH:mm" alternatives on the same date
}
