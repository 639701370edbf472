package scheduling

import (
	"errors"
	"fmt"
	"time"

	appointmentRepo "agendo/database/repository/appointment"
	"agendo/models"
	"agendo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minDurationMinutes = 5
	maxDurationMinutes = 24 * 60

	// Bookings are accepted at most one year back and two years ahead.
	maxPastWindow   = 365 * 24 * time.Hour
	maxFutureWindow = 2 * 365 * 24 * time.Hour

	maxSuggestions = 5
)

// CreateAppointment validates the request, rounds the start onto the
// grid, re-checks the full window, and on success supersedes the
// contact's live hold and persists a new appointment. Rejections carry
// up to five alternative times on the same date so the chat layer can
// offer a recovery path without a second round trip.
func (s *DefaultSchedulingService) CreateAppointment(req CreateRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()
	now := time.Now()

	duration := req.DurationMinutes
	if duration == 0 && req.ServiceID != "" {
		// The service catalog is authoritative for durations.
		catalogDuration, err := s.BusinessRepo.GetServiceDuration(req.BusinessID, req.ServiceID)
		if err != nil {
			return rejection(KindValidation, fmt.Sprintf("unknown service %s", req.ServiceID), nil), nil
		}
		duration = catalogDuration
	}
	if schedErr := validateDuration(duration); schedErr != nil {
		return rejection(schedErr.Kind, schedErr.Message, nil), nil
	}

	snap, err := s.loadDay(req.BusinessID, req.Date)
	if err != nil {
		return nil, err
	}
	if schedErr := validateStartWindow(snap.date, req.Start, now); schedErr != nil {
		return rejection(schedErr.Kind, schedErr.Message, nil), nil
	}

	// The contact's own live hold must not block its replacement.
	snap.holds = withoutContact(snap.holds, req.Contact)

	resolved, schedErr, suggestions := s.resolveFit(snap, req.Start, duration, now)
	if schedErr != nil {
		return rejection(schedErr.Kind, schedErr.Message, suggestions), nil
	}

	status := models.StatusPending
	if req.Confirmed {
		status = models.StatusConfirmed
	}
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		BusinessID:      req.BusinessID,
		Contact:         req.Contact,
		ServiceID:       req.ServiceID,
		ServiceName:     req.ServiceName,
		Date:            req.Date,
		Start:           resolved,
		End:             resolved + duration,
		DurationMinutes: duration,
		Status:          status,
	}

	if status == models.StatusPending {
		hold := &models.Hold{
			BusinessID:      req.BusinessID,
			Contact:         req.Contact,
			Date:            req.Date,
			Start:           resolved,
			DurationMinutes: duration,
			ExpiresAt:       now.Add(s.HoldTTL),
		}
		if err := s.HoldRepo.Replace(hold); err != nil {
			return nil, fmt.Errorf("failed to place hold: %w", err)
		}
	} else {
		// A direct confirmed booking ends whatever negotiation the
		// contact had open; its old hold must stop blocking that slot.
		if err := s.HoldRepo.Release(req.BusinessID, req.Contact); err != nil {
			logger.Warn("failed to release superseded hold",
				zap.String("contact", req.Contact), zap.Error(err))
		}
	}

	if err := s.AppointmentRepo.Create(appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			// Another session committed the same slot between our
			// occupancy read and the write; the unique index is the
			// final arbiter.
			if relErr := s.HoldRepo.Release(req.BusinessID, req.Contact); relErr != nil {
				logger.Warn("failed to release hold after slot collision",
					zap.String("contact", req.Contact), zap.Error(relErr))
			}
			return rejection(KindCapacity, "the requested time was just booked by someone else",
				s.sameDaySuggestions(snap, resolved, duration, now)), nil
		}
		return nil, err
	}

	if status == models.StatusConfirmed {
		s.scheduleReminder(appt)
	}

	logger.Info("appointment created",
		zap.String("appointmentId", appt.ID),
		zap.String("businessId", appt.BusinessID),
		zap.String("date", appt.Date),
		zap.Int("start", appt.Start),
		zap.String("status", appt.Status))
	return &models.BookingResult{Success: true, Appointment: appt}, nil
}

// ConfirmAppointment transitions pending → confirmed, releases the
// contact's negotiation hold, and queues the reminder.
func (s *DefaultSchedulingService) ConfirmAppointment(appointmentID string) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	appt, err := s.AppointmentRepo.GetByID(appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return rejection(KindNotFound, "appointment not found", nil), nil
		}
		return nil, err
	}
	if appt.Status != models.StatusPending {
		return rejection(KindValidation,
			fmt.Sprintf("appointment is %s, only pending appointments can be confirmed", appt.Status), nil), nil
	}

	if err := s.AppointmentRepo.UpdateStatus(appointmentID, models.StatusConfirmed); err != nil {
		return nil, err
	}
	appt.Status = models.StatusConfirmed

	if err := s.HoldRepo.Release(appt.BusinessID, appt.Contact); err != nil {
		logger.Warn("failed to release hold on confirmation",
			zap.String("contact", appt.Contact), zap.Error(err))
	}
	s.scheduleReminder(appt)

	logger.Info("appointment confirmed", zap.String("appointmentId", appt.ID))
	return &models.BookingResult{Success: true, Appointment: appt}, nil
}

// RescheduleAppointment re-validates the new window exactly as create
// does, using the appointment's existing duration, then moves the
// appointment in place without changing its status.
func (s *DefaultSchedulingService) RescheduleAppointment(req RescheduleRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()
	now := time.Now()

	appt, err := s.AppointmentRepo.GetByID(req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return rejection(KindNotFound, "appointment not found", nil), nil
		}
		return nil, err
	}
	if appt.Status == models.StatusCancelled {
		return rejection(KindValidation, "cannot reschedule a cancelled appointment", nil), nil
	}

	dateStr := req.Date
	if dateStr == "" {
		dateStr = appt.Date
	}
	snap, err := s.loadDay(appt.BusinessID, dateStr)
	if err != nil {
		return nil, err
	}
	if schedErr := validateStartWindow(snap.date, req.Start, now); schedErr != nil {
		return rejection(schedErr.Kind, schedErr.Message, nil), nil
	}

	// The appointment's current window and its contact's hold must not
	// block the move.
	snap.appointments = withoutAppointment(snap.appointments, appt.ID)
	snap.holds = withoutContact(snap.holds, appt.Contact)

	duration := appt.DurationMinutes
	if duration <= 0 {
		duration = appt.EffectiveEnd() - appt.Start
	}
	resolved, schedErr, suggestions := s.resolveFit(snap, req.Start, duration, now)
	if schedErr != nil {
		return rejection(schedErr.Kind, schedErr.Message, suggestions), nil
	}

	if err := s.AppointmentRepo.Reschedule(appt.ID, resolved, resolved+duration, dateStr); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return rejection(KindCapacity, "the requested time was just booked by someone else",
				s.sameDaySuggestions(snap, resolved, duration, now)), nil
		}
		return nil, err
	}
	appt.Date = dateStr
	appt.Start = resolved
	appt.End = resolved + duration

	if appt.Status == models.StatusPending {
		hold := &models.Hold{
			BusinessID:      appt.BusinessID,
			Contact:         appt.Contact,
			Date:            dateStr,
			Start:           resolved,
			DurationMinutes: duration,
			ExpiresAt:       now.Add(s.HoldTTL),
		}
		if err := s.HoldRepo.Replace(hold); err != nil {
			logger.Warn("failed to refresh hold after reschedule",
				zap.String("contact", appt.Contact), zap.Error(err))
		}
	}

	logger.Info("appointment rescheduled",
		zap.String("appointmentId", appt.ID), zap.String("date", dateStr), zap.Int("start", resolved))
	return &models.BookingResult{Success: true, Appointment: appt}, nil
}

// CancelAppointment transitions any non-cancelled appointment to
// cancelled. Cancelling an already-cancelled appointment succeeds.
func (s *DefaultSchedulingService) CancelAppointment(appointmentID string) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	appt, err := s.AppointmentRepo.GetByID(appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return rejection(KindNotFound, "appointment not found", nil), nil
		}
		return nil, err
	}
	if appt.Status == models.StatusCancelled {
		return &models.BookingResult{Success: true, Appointment: appt}, nil
	}

	if err := s.AppointmentRepo.UpdateStatus(appointmentID, models.StatusCancelled); err != nil {
		return nil, err
	}
	appt.Status = models.StatusCancelled

	if err := s.HoldRepo.Release(appt.BusinessID, appt.Contact); err != nil {
		logger.Warn("failed to release hold on cancellation",
			zap.String("contact", appt.Contact), zap.Error(err))
	}

	logger.Info("appointment cancelled", zap.String("appointmentId", appt.ID))
	return &models.BookingResult{Success: true, Appointment: appt}, nil
}

// resolveFit rounds the requested start onto the grid and verifies the
// full window fits inside one shift with every slot free. On rejection
// it classifies the failure and proposes alternatives on the same date.
func (s *DefaultSchedulingService) resolveFit(snap *daySnapshot, requestedStart, duration int, now time.Time) (int, *SchedulingError, []string) {
	grid := snap.grid()
	shifts := ShiftsFor(snap.date, snap.week)
	if len(grid) == 0 {
		return 0, NewSchedulingError(KindOutOfHours,
			fmt.Sprintf("the business is closed on %s", snap.dateStr)), nil
	}

	validStarts := FindAvailableStarts(grid, snap.occupancy(now), snap.cfg.SlotSizeMinutes, duration)
	resolved, ok, _ := ResolveRequestedTime(requestedStart, validStarts, snap.cfg.SlotSizeMinutes)
	if ok {
		return resolved, nil, nil
	}

	suggestions := formatSuggestions(NearestAlternatives(validStarts, resolved, maxSuggestions))

	shift := ShiftContaining(shifts, resolved)
	switch {
	case shift == nil:
		return 0, NewSchedulingError(KindOutOfHours,
			fmt.Sprintf("%s falls outside business hours", utils.MinutesToClock(resolved))), suggestions
	case resolved+duration > shift.Close:
		return 0, NewSchedulingError(KindOverflow,
			fmt.Sprintf("a %d-minute service starting at %s would run past closing",
				duration, utils.MinutesToClock(resolved))), suggestions
	case len(validStarts) == 0:
		return 0, NewSchedulingError(KindCapacity,
			fmt.Sprintf("no free window of %d minutes left on %s", duration, snap.dateStr)), nil
	default:
		return 0, NewSchedulingError(KindCapacity,
			fmt.Sprintf("%s is already booked", utils.MinutesToClock(resolved))), suggestions
	}
}

// sameDaySuggestions recomputes alternatives after a commit collision,
// with the collided start treated as occupied.
func (s *DefaultSchedulingService) sameDaySuggestions(snap *daySnapshot, collided, duration int, now time.Time) []string {
	occupied := snap.occupancy(now)
	occupied[collided] = true
	validStarts := FindAvailableStarts(snap.grid(), occupied, snap.cfg.SlotSizeMinutes, duration)
	return formatSuggestions(NearestAlternatives(validStarts, collided, maxSuggestions))
}

func (s *DefaultSchedulingService) scheduleReminder(appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleForAppointment(appt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

func validateDuration(duration int) *SchedulingError {
	if duration <= 0 {
		return NewSchedulingError(KindValidation, "a service duration is required")
	}
	if duration < minDurationMinutes || duration > maxDurationMinutes {
		return NewSchedulingError(KindValidation,
			fmt.Sprintf("duration must be between %d and %d minutes, got %d",
				minDurationMinutes, maxDurationMinutes, duration))
	}
	return nil
}

func validateStartWindow(date time.Time, start int, now time.Time) *SchedulingError {
	at := utils.AtMinute(date, start)
	if at.Before(now.Add(-maxPastWindow)) {
		return NewSchedulingError(KindValidation, "requested date is more than one year in the past")
	}
	if at.After(now.Add(maxFutureWindow)) {
		return NewSchedulingError(KindValidation, "requested date is more than two years ahead")
	}
	return nil
}

func rejection(kind ErrorKind, message string, suggestions []string) *models.BookingResult {
	return &models.BookingResult{
		Success:     false,
		Error:       message,
		ErrorKind:   string(kind),
		Suggestions: suggestions,
	}
}

func formatSuggestions(starts []int) []string {
	if len(starts) == 0 {
		return nil
	}
	out := make([]string, 0, len(starts))
	for _, s := range starts {
		out = append(out, utils.MinutesToClock(s))
	}
	return out
}

func withoutContact(holds []models.Hold, contact string) []models.Hold {
	var kept []models.Hold
	for _, h := range holds {
		if h.Contact != contact {
			kept = append(kept, h)
		}
	}
	return kept
}

func withoutAppointment(appointments []models.Appointment, id string) []models.Appointment {
	var kept []models.Appointment
	for _, a := range appointments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return kept
}
