package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"agendo/config"
	"agendo/models"
	"agendo/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// Payload carries what the worker needs to address a reminder.
type Payload struct {
	AppointmentID string `json:"appointmentId"`
	BusinessID    string `json:"businessId"`
	Contact       string `json:"contact"`
	ServiceName   string `json:"serviceName,omitempty"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
}

// Scheduler enqueues appointment reminders.
type Scheduler interface {
	ScheduleForAppointment(appt *models.Appointment) error
}

// AsynqScheduler implements Scheduler on the asynq task queue.
type AsynqScheduler struct {
	Client *asynq.Client
	Lead   time.Duration
}

// NewAsynqScheduler constructs a scheduler backed by the reminder queue.
func NewAsynqScheduler() *AsynqScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	return &AsynqScheduler{Client: client, Lead: lead}
}

// ScheduleForAppointment enqueues a reminder due ahead of the
// appointment's start. Appointments starting too soon for the lead
// window are skipped silently.
func (s *AsynqScheduler) ScheduleForAppointment(appt *models.Appointment) error {
	logger := utils.GetLogger()

	date, err := utils.ParseDate(appt.Date)
	if err != nil {
		return fmt.Errorf("cannot schedule reminder: %w", err)
	}
	fireAt := utils.AtMinute(date, appt.Start).Add(-s.Lead)
	if fireAt.Before(time.Now()) {
		logger.Debug("skipping reminder inside lead window",
			zap.String("appointmentId", appt.ID), zap.Time("fireAt", fireAt))
		return nil
	}

	payload, err := json.Marshal(Payload{
		AppointmentID: appt.ID,
		BusinessID:    appt.BusinessID,
		Contact:       appt.Contact,
		ServiceName:   appt.ServiceName,
		Date:          appt.Date,
		Start:         appt.Start,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := s.Client.Enqueue(task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	logger.Info("reminder scheduled",
		zap.String("appointmentId", appt.ID), zap.Time("fireAt", fireAt))
	return nil
}
