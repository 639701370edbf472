package models

import "time"

// Hold is an ephemeral reservation made while a chat negotiation is in
// flight, before the customer confirms. At most one live hold exists per
// (business, contact) pair; writing a new one supersedes the previous.
type Hold struct {
	BusinessID      string    `json:"business_id"`
	Contact         string    `json:"contact"`
	Date            string    `json:"date"` // "YYYY-MM-DD"
	Start           int       `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Live reports whether the hold still counts toward occupancy.
// Expired holds are inert; they are pruned lazily, never swept.
func (h *Hold) Live(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// End returns the hold's end minute.
func (h *Hold) End() int {
	return h.Start + h.DurationMinutes
}
