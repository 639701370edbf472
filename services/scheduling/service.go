package scheduling

import (
	"fmt"
	"time"

	"agendo/models"
	"agendo/utils"

	"go.uber.org/zap"
)

// daySnapshot is the immutable input for one day's scheduling math:
// working hours, grid config, and the already-fetched appointment and
// hold records. Everything computed from it is a pure function, so any
// number of requests may run concurrently without shared state.
type daySnapshot struct {
	date         time.Time
	dateStr      string
	week         *models.WeekSchedule
	cfg          models.GridConfig
	appointments []models.Appointment
	holds        []models.Hold
}

func (snap *daySnapshot) grid() []int {
	return BuildDayGrid(snap.date, snap.week, snap.cfg.SlotSizeMinutes)
}

func (snap *daySnapshot) occupancy(now time.Time) map[int]bool {
	return ResolveOccupancy(snap.appointments, snap.holds, snap.cfg.SlotSizeMinutes, snap.cfg.BufferMinutes, now)
}

// loadDay fetches the snapshot for one business date.
func (s *DefaultSchedulingService) loadDay(businessID, dateStr string) (*daySnapshot, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	week, err := s.BusinessRepo.GetWorkingHours(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load working hours: %w", err)
	}
	cfg, err := s.BusinessRepo.GetGridConfig(businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid config: %w", err)
	}
	appointments, err := s.AppointmentRepo.ListByDate(businessID, dateStr,
		[]string{models.StatusPending, models.StatusConfirmed})
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	holds, err := s.HoldRepo.ListLive(businessID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load holds: %w", err)
	}

	return &daySnapshot{
		date:         date,
		dateStr:      dateStr,
		week:         week,
		cfg:          cfg,
		appointments: appointments,
		holds:        holds,
	}, nil
}

// CheckAvailability reports the busy intervals of one business date,
// for "is X free?" style chat queries.
func (s *DefaultSchedulingService) CheckAvailability(businessID, dateStr string) (*models.AvailabilityResponse, error) {
	snap, err := s.loadDay(businessID, dateStr)
	if err != nil {
		return nil, err
	}

	open := len(ShiftsFor(snap.date, snap.week)) > 0
	return &models.AvailabilityResponse{
		Date:          dateStr,
		Open:          open,
		BusyIntervals: BusyIntervals(snap.appointments, snap.holds, snap.cfg.BufferMinutes, time.Now()),
	}, nil
}

// GetAvailableTimes lists the start times able to host the requested
// duration, formatted for chat display (long lists compact into
// ranges).
func (s *DefaultSchedulingService) GetAvailableTimes(businessID, dateStr string, durationMinutes int) (*models.AvailabilityResponse, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	snap, err := s.loadDay(businessID, dateStr)
	if err != nil {
		return nil, err
	}

	grid := snap.grid()
	starts := FindAvailableStarts(grid, snap.occupancy(time.Now()), snap.cfg.SlotSizeMinutes, durationMinutes)

	logger := utils.GetLogger()
	logger.Debug("computed available times",
		zap.String("businessID", businessID), zap.String("date", dateStr),
		zap.Int("gridSize", len(grid)), zap.Int("starts", len(starts)))

	return &models.AvailabilityResponse{
		Date:  dateStr,
		Open:  len(grid) > 0,
		Times: FormatTimes(starts, snap.cfg.SlotSizeMinutes),
	}, nil
}
