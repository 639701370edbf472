package models

import "time"

// Appointment statuses. Pending appointments await the customer's
// confirmation; agent-originated bookings may be created confirmed.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment represents a booked (or negotiated) service window.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`                             // Unique appointment identifier (UUID)
	BusinessID      string    `bson:"business_id" json:"business_id"`           // Business that owns the calendar
	Contact         string    `bson:"contact" json:"contact"`                   // Customer identity (chat contact)
	ServiceID       string    `bson:"service_id,omitempty" json:"service_id,omitempty"`
	ServiceName     string    `bson:"service_name,omitempty" json:"service_name,omitempty"`
	Date            string    `bson:"date" json:"date"`                         // "YYYY-MM-DD"
	Start           int       `bson:"start" json:"start"`                       // minutes from midnight
	End             int       `bson:"end,omitempty" json:"end,omitempty"`       // minutes from midnight; derived from Start+Duration when absent
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	Status          string    `bson:"status" json:"status"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// EffectiveEnd returns End, re-deriving it from Start+Duration when the
// stored record lacks it. Older records persisted only the duration.
func (a *Appointment) EffectiveEnd() int {
	if a.End > a.Start {
		return a.End
	}
	return a.Start + a.DurationMinutes
}

// Occupying reports whether the appointment still claims calendar time.
func (a *Appointment) Occupying() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}
