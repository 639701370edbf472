package appointmentRepo

import (
	"errors"

	"agendo/models"
)

// ErrNotFound is returned when no appointment matches the given ID.
var ErrNotFound = errors.New("appointment not found")

// ErrSlotTaken is returned when a write collides with another live
// appointment on the same (business, date, start). The unique index on
// live rows serializes commits, so a read-then-check-then-write race
// between two sessions surfaces here instead of double-booking.
var ErrSlotTaken = errors.New("slot already booked")

// AppointmentRepository persists appointment records.
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	// Reschedule moves an appointment to a new window, preserving status.
	Reschedule(id string, start, end int, date string) error
	UpdateStatus(id, status string) error
	// ListByDate returns the business's appointments for one date,
	// filtered to the given statuses.
	ListByDate(businessID, date string, statuses []string) ([]models.Appointment, error)
	EnsureIndexes() error
}
