package scheduling

import (
	appointmentRepo "agendo/database/repository/appointment"
	businessRepo "agendo/database/repository/business"
	holdRepo "agendo/database/repository/hold"
	"agendo/models"
	"agendo/services/reminder"
	"time"
)

// SchedulingService is the engine surface exposed to the chat
// orchestration and dashboard collaborators. Lifecycle operations
// return a structured BookingResult for domain outcomes; the error
// return carries infrastructure failures only.
type SchedulingService interface {
	CheckAvailability(businessID, date string) (*models.AvailabilityResponse, error)
	GetAvailableTimes(businessID, date string, durationMinutes int) (*models.AvailabilityResponse, error)
	CreateAppointment(req CreateRequest) (*models.BookingResult, error)
	ConfirmAppointment(appointmentID string) (*models.BookingResult, error)
	RescheduleAppointment(req RescheduleRequest) (*models.BookingResult, error)
	CancelAppointment(appointmentID string) (*models.BookingResult, error)
}

// CreateRequest describes an appointment creation attempt. The date and
// start are already resolved to a calendar date and wall-clock minute
// by the chat layer; natural-language parsing happens upstream.
type CreateRequest struct {
	BusinessID      string `json:"businessId"`
	Contact         string `json:"contact"`
	ServiceID       string `json:"serviceId,omitempty"`
	ServiceName     string `json:"serviceName,omitempty"`
	Date            string `json:"date"`  // "YYYY-MM-DD"
	Start           int    `json:"start"` // minutes from midnight, possibly off-grid
	// StartTime is the "HH:mm" alternative to Start; the HTTP layer
	// resolves it into Start before the request reaches the engine.
	StartTime       string `json:"startTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	// Confirmed marks agent/dashboard-originated bookings that skip the
	// customer confirmation step.
	Confirmed bool `json:"confirmed,omitempty"`
}

// RescheduleRequest moves an existing appointment. An empty Date keeps
// the appointment on its current date.
type RescheduleRequest struct {
	AppointmentID string `json:"appointmentId"`
	Date          string `json:"date,omitempty"`
	Start         int    `json:"start"`
	StartTime     string `json:"startTime,omitempty"` // "HH:mm" alternative to Start
}

// DefaultSchedulingService is the production implementation.
type DefaultSchedulingService struct {
	BusinessRepo    businessRepo.BusinessRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	HoldRepo        holdRepo.HoldRepository
	Reminders       reminder.Scheduler
	HoldTTL         time.Duration
}
