package scheduling

import (
	"errors"
	"fmt"
	"testing"
	"time"

	appointmentRepo "agendo/database/repository/appointment"
	"agendo/models"
	"agendo/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBusinessRepo struct {
	week      *models.WeekSchedule
	cfg       models.GridConfig
	durations map[string]int
}

func (f *fakeBusinessRepo) GetByID(businessID string) (*models.Business, error) {
	return &models.Business{ID: businessID}, nil
}

func (f *fakeBusinessRepo) GetWorkingHours(string) (*models.WeekSchedule, error) {
	if f.week == nil {
		return models.AlwaysOpen(), nil
	}
	return f.week, nil
}

func (f *fakeBusinessRepo) GetGridConfig(string) (models.GridConfig, error) {
	return f.cfg, nil
}

func (f *fakeBusinessRepo) GetServiceDuration(_, serviceID string) (int, error) {
	d, ok := f.durations[serviceID]
	if !ok {
		return 0, fmt.Errorf("service %s not in catalog", serviceID)
	}
	return d, nil
}

type fakeAppointmentRepo struct {
	appointments map[string]*models.Appointment
	failCreate   error
}

func (f *fakeAppointmentRepo) Create(appt *models.Appointment) error {
	if f.failCreate != nil {
		err := f.failCreate
		f.failCreate = nil
		return err
	}
	if appt.Occupying() {
		for _, a := range f.appointments {
			if a.Occupying() && a.BusinessID == appt.BusinessID &&
				a.Date == appt.Date && a.Start == appt.Start {
				return appointmentRepo.ErrSlotTaken
			}
		}
	}
	stored := *appt
	f.appointments[appt.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeAppointmentRepo) Reschedule(id string, start, end int, date string) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	for _, other := range f.appointments {
		if other.ID != id && other.Occupying() && other.BusinessID == a.BusinessID &&
			other.Date == date && other.Start == start {
			return appointmentRepo.ErrSlotTaken
		}
	}
	a.Date = date
	a.Start = start
	a.End = end
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(id, status string) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) ListByDate(businessID, date string, statuses []string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.BusinessID != businessID || a.Date != date {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) EnsureIndexes() error { return nil }

type fakeHoldRepo struct {
	holds map[string]*models.Hold
}

func holdMapKey(businessID, contact string) string {
	return businessID + "|" + contact
}

func (f *fakeHoldRepo) Replace(hold *models.Hold) error {
	stored := *hold
	f.holds[holdMapKey(hold.BusinessID, hold.Contact)] = &stored
	return nil
}

func (f *fakeHoldRepo) ListLive(businessID, date string) ([]models.Hold, error) {
	now := time.Now()
	var out []models.Hold
	for _, h := range f.holds {
		if h.BusinessID == businessID && h.Date == date && h.Live(now) {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (f *fakeHoldRepo) GetLive(businessID, contact string) (*models.Hold, error) {
	h, ok := f.holds[holdMapKey(businessID, contact)]
	if !ok || !h.Live(time.Now()) {
		return nil, nil
	}
	out := *h
	return &out, nil
}

func (f *fakeHoldRepo) Release(businessID, contact string) error {
	delete(f.holds, holdMapKey(businessID, contact))
	return nil
}

type fakeReminderScheduler struct {
	scheduled []string
}

func (f *fakeReminderScheduler) ScheduleForAppointment(appt *models.Appointment) error {
	f.scheduled = append(f.scheduled, appt.ID)
	return nil
}

type fixture struct {
	svc          *DefaultSchedulingService
	businesses   *fakeBusinessRepo
	appointments *fakeAppointmentRepo
	holds        *fakeHoldRepo
	reminders    *fakeReminderScheduler
}

func newFixture(week *models.WeekSchedule, cfg models.GridConfig) *fixture {
	businesses := &fakeBusinessRepo{week: week, cfg: cfg}
	appointments := &fakeAppointmentRepo{appointments: map[string]*models.Appointment{}}
	holds := &fakeHoldRepo{holds: map[string]*models.Hold{}}
	reminders := &fakeReminderScheduler{}
	return &fixture{
		svc: &DefaultSchedulingService{
			BusinessRepo:    businesses,
			AppointmentRepo: appointments,
			HoldRepo:        holds,
			Reminders:       reminders,
			HoldTTL:         10 * time.Minute,
		},
		businesses:   businesses,
		appointments: appointments,
		holds:        holds,
		reminders:    reminders,
	}
}

// A date two weeks out keeps every test inside the bookable window
// regardless of when the suite runs.
func futureDate() string {
	return time.Now().AddDate(0, 0, 14).Format(utils.DateLayout)
}

func TestCreatePendingPlacesHold(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	appt := result.Appointment
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, 600, appt.Start)
	assert.Equal(t, 660, appt.End)
	assert.NotEmpty(t, appt.ID)

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	require.NotNil(t, hold)
	assert.Equal(t, 600, hold.Start)
	assert.Equal(t, 60, hold.DurationMinutes)
}

func TestCreateRoundsOffGridStart(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           605, // 10:05 rounds up to 10:30
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 630, result.Appointment.Start)
}

func TestCreateOwnHoldDoesNotBlock(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	// c1 negotiated 10:00 earlier in the conversation, then changed
	// their mind before anything was committed.
	require.NoError(t, fx.holds.Replace(&models.Hold{
		BusinessID: "biz-1", Contact: "c1", Date: date,
		Start: 600, DurationMinutes: 30,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}))

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	// The new hold superseded the old one: still exactly one live hold.
	live, err := fx.holds.ListLive("biz-1", date)
	require.NoError(t, err)
	assert.Len(t, live, 1)
}

func TestCreateBlockedByOtherContactsHold(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	require.NoError(t, fx.holds.Replace(&models.Hold{
		BusinessID: "biz-1", Contact: "c2", Date: date,
		Start: 600, DurationMinutes: 30,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}))

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindCapacity), result.ErrorKind)
	assert.NotEmpty(t, result.Suggestions)
}

func TestCreateMissingDuration(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID: "biz-1",
		Contact:    "c1",
		Date:       futureDate(),
		Start:      600,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindValidation), result.ErrorKind)
}

func TestCreateDurationOutOfBounds(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	for _, duration := range []int{3, 2000} {
		result, err := fx.svc.CreateAppointment(CreateRequest{
			BusinessID:      "biz-1",
			Contact:         "c1",
			Date:            futureDate(),
			Start:           600,
			DurationMinutes: duration,
		})
		require.NoError(t, err)
		require.False(t, result.Success, "duration %d", duration)
		assert.Equal(t, string(KindValidation), result.ErrorKind)
	}
}

func TestCreateCatalogDuration(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	fx.businesses.durations = map[string]int{"svc-cut": 45}

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID: "biz-1",
		Contact:    "c1",
		ServiceID:  "svc-cut",
		Date:       futureDate(),
		Start:      600,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 45, result.Appointment.DurationMinutes)
	assert.Equal(t, 645, result.Appointment.End)
}

func TestCreateUnknownService(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	fx.businesses.durations = map[string]int{}

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID: "biz-1",
		Contact:    "c1",
		ServiceID:  "svc-missing",
		Date:       futureDate(),
		Start:      600,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindValidation), result.ErrorKind)
}

func TestCreateOutOfHours(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 720}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           480, // 08:00, before opening
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindOutOfHours), result.ErrorKind)
	assert.Contains(t, result.Suggestions, "09:00")
}

func TestCreateClosedDay(t *testing.T) {
	fx := newFixture(closedWeek(), models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindOutOfHours), result.ErrorKind)
	assert.Empty(t, result.Suggestions)
}

func TestCreateOverflowPastClosing(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 720}),
		models.GridConfig{SlotSizeMinutes: 15})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           705, // 11:45 + 30min runs past a 12:00 close
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindOverflow), result.ErrorKind)
	assert.NotEmpty(t, result.Suggestions)
}

func TestCreateCapacityAlreadyBooked(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	first, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           600,
		DurationMinutes: 60,
		Confirmed:       true,
	})
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c2",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, second.Success)
	assert.Equal(t, string(KindCapacity), second.ErrorKind)
	assert.NotContains(t, second.Suggestions, "10:00")
	assert.NotContains(t, second.Suggestions, "10:30")
}

func TestCreateCapacityNoWindowLeft(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 660}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	blocker, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)
	require.True(t, blocker.Success)

	// No 90-minute window survives around the 10:00 booking.
	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c2",
		Date:            date,
		Start:           540,
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindCapacity), result.ErrorKind)
	assert.Empty(t, result.Suggestions)
}

func TestCreatePastDateRejected(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            time.Now().AddDate(-2, 0, 0).Format(utils.DateLayout),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindValidation), result.ErrorKind)
}

func TestCreateConfirmedSkipsHoldAndSchedulesReminder(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, models.StatusConfirmed, result.Appointment.Status)

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, hold)
	assert.Equal(t, []string{result.Appointment.ID}, fx.reminders.scheduled)
}

func TestCreateConfirmedSupersedesEarlierHold(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	// c1 negotiated 10:00 in chat, then the agent booked them 14:00
	// directly from the dashboard.
	require.NoError(t, fx.holds.Replace(&models.Hold{
		BusinessID: "biz-1", Contact: "c1", Date: date,
		Start: 600, DurationMinutes: 30,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}))

	booked, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           840,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)
	require.True(t, booked.Success)

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, hold, "the dashboard booking must retire the stale negotiation hold")

	// 10:00 is free again for the next customer.
	rebooked, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c2",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.True(t, rebooked.Success)
}

func TestCreateCommitCollisionReleasesHold(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	fx.appointments.failCreate = appointmentRepo.ErrSlotTaken

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindCapacity), result.ErrorKind)
	assert.NotEmpty(t, result.Suggestions)
	assert.NotContains(t, result.Suggestions, "10:00")

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, hold, "hold must be released after a commit collision")
}

func TestCreateInfraErrorPropagates(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	fx.appointments.failCreate = errors.New("connection reset")

	result, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestConfirmPendingAppointment(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.True(t, created.Success)

	confirmed, err := fx.svc.ConfirmAppointment(created.Appointment.ID)
	require.NoError(t, err)
	require.True(t, confirmed.Success)
	assert.Equal(t, models.StatusConfirmed, confirmed.Appointment.Status)

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, hold)
	assert.Equal(t, []string{created.Appointment.ID}, fx.reminders.scheduled)
}

func TestConfirmNonPendingRejected(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = fx.svc.ConfirmAppointment(created.Appointment.ID)
	require.NoError(t, err)

	again, err := fx.svc.ConfirmAppointment(created.Appointment.ID)
	require.NoError(t, err)
	require.False(t, again.Success)
	assert.Equal(t, string(KindValidation), again.ErrorKind)
}

func TestConfirmUnknownAppointment(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.ConfirmAppointment("missing")
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindNotFound), result.ErrorKind)
}

func TestRescheduleMovesAppointmentAndHold(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, created.Success)

	moved, err := fx.svc.RescheduleAppointment(RescheduleRequest{
		AppointmentID: created.Appointment.ID,
		Start:         840, // 14:00
	})
	require.NoError(t, err)
	require.True(t, moved.Success)
	assert.Equal(t, 840, moved.Appointment.Start)
	assert.Equal(t, 900, moved.Appointment.End)
	assert.Equal(t, models.StatusPending, moved.Appointment.Status)

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	require.NotNil(t, hold)
	assert.Equal(t, 840, hold.Start)
}

func TestRescheduleOntoOwnSlotSucceeds(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)

	// The appointment's own window must not block the no-op move.
	moved, err := fx.svc.RescheduleAppointment(RescheduleRequest{
		AppointmentID: created.Appointment.ID,
		Start:         600,
	})
	require.NoError(t, err)
	require.True(t, moved.Success)
	assert.Equal(t, 600, moved.Appointment.Start)
}

func TestRescheduleConflictRejected(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	first, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)

	second, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c2",
		Date:            date,
		Start:           720,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)
	require.True(t, second.Success)

	moved, err := fx.svc.RescheduleAppointment(RescheduleRequest{
		AppointmentID: second.Appointment.ID,
		Start:         first.Appointment.Start,
	})
	require.NoError(t, err)
	require.False(t, moved.Success)
	assert.Equal(t, string(KindCapacity), moved.ErrorKind)
	assert.NotEmpty(t, moved.Suggestions)
}

func TestRescheduleCancelledRejected(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	_, err = fx.svc.CancelAppointment(created.Appointment.ID)
	require.NoError(t, err)

	moved, err := fx.svc.RescheduleAppointment(RescheduleRequest{
		AppointmentID: created.Appointment.ID,
		Start:         660,
	})
	require.NoError(t, err)
	require.False(t, moved.Success)
	assert.Equal(t, string(KindValidation), moved.ErrorKind)
}

func TestCancelIsIdempotent(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            futureDate(),
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	first, err := fx.svc.CancelAppointment(created.Appointment.ID)
	require.NoError(t, err)
	require.True(t, first.Success)
	assert.Equal(t, models.StatusCancelled, first.Appointment.Status)

	hold, err := fx.holds.GetLive("biz-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, hold)

	second, err := fx.svc.CancelAppointment(created.Appointment.ID)
	require.NoError(t, err)
	assert.True(t, second.Success)
}

func TestCancelUnknownAppointment(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})

	result, err := fx.svc.CancelAppointment("missing")
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, string(KindNotFound), result.ErrorKind)
}

func TestCancelledSlotBecomesBookable(t *testing.T) {
	fx := newFixture(sameEveryDay(models.Shift{Open: 540, Close: 1080}),
		models.GridConfig{SlotSizeMinutes: 30})
	date := futureDate()

	created, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c1",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
		Confirmed:       true,
	})
	require.NoError(t, err)

	_, err = fx.svc.CancelAppointment(created.Appointment.ID)
	require.NoError(t, err)

	rebooked, err := fx.svc.CreateAppointment(CreateRequest{
		BusinessID:      "biz-1",
		Contact:         "c2",
		Date:            date,
		Start:           600,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.True(t, rebooked.Success)
	assert.Equal(t, 600, rebooked.Appointment.Start)
}
