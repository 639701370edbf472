package handlers

import (
	"net/http"
	"strconv"

	"agendo/models"
	"agendo/services/scheduling"
	"agendo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the scheduling engine over HTTP to the
// chat-orchestration and dashboard collaborators.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Service: svc, Logger: logger}
}

// CheckAvailability returns the busy intervals of one business date.
func (h *SchedulingHandler) CheckAvailability(c *gin.Context) {
	businessID := c.Param("businessID")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	resp, err := h.Service.CheckAvailability(businessID, date)
	if err != nil {
		h.Logger.Error("availability check failed",
			zap.String("businessID", businessID), zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAvailableTimes returns bookable start times for a duration.
func (h *SchedulingHandler) GetAvailableTimes(c *gin.Context) {
	businessID := c.Param("businessID")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "0"))
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "duration must be a positive integer of minutes")
		return
	}

	resp, err := h.Service.GetAvailableTimes(businessID, date, duration)
	if err != nil {
		h.Logger.Error("available times lookup failed",
			zap.String("businessID", businessID), zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute available times"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAppointment books (or holds) a slot.
func (h *SchedulingHandler) CreateAppointment(c *gin.Context) {
	var req scheduling.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !resolveClockStart(c, req.StartTime, &req.Start) {
		return
	}

	result, err := h.Service.CreateAppointment(req)
	if err != nil {
		h.Logger.Error("appointment creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		return
	}
	c.JSON(statusFor(result), result)
}

// ConfirmAppointment transitions a pending appointment to confirmed.
func (h *SchedulingHandler) ConfirmAppointment(c *gin.Context) {
	result, err := h.Service.ConfirmAppointment(c.Param("appointmentID"))
	if err != nil {
		h.Logger.Error("appointment confirmation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm appointment"})
		return
	}
	c.JSON(statusFor(result), result)
}

// RescheduleAppointment moves an appointment to a new start time.
func (h *SchedulingHandler) RescheduleAppointment(c *gin.Context) {
	var req scheduling.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !resolveClockStart(c, req.StartTime, &req.Start) {
		return
	}
	req.AppointmentID = c.Param("appointmentID")

	result, err := h.Service.RescheduleAppointment(req)
	if err != nil {
		h.Logger.Error("appointment reschedule failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reschedule appointment"})
		return
	}
	c.JSON(statusFor(result), result)
}

// CancelAppointment cancels an appointment; idempotent.
func (h *SchedulingHandler) CancelAppointment(c *gin.Context) {
	result, err := h.Service.CancelAppointment(c.Param("appointmentID"))
	if err != nil {
		h.Logger.Error("appointment cancellation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel appointment"})
		return
	}
	c.JSON(statusFor(result), result)
}

// resolveClockStart fills a minute start from the request's "HH:mm"
// startTime field when the caller used the clock form. Reports whether
// the request may proceed; on a parse failure the 400 is already sent.
func resolveClockStart(c *gin.Context, startTime string, start *int) bool {
	if startTime == "" {
		return true
	}
	minute, err := utils.ClockToMinutes(startTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid startTime", err.Error())
		return false
	}
	*start = minute
	return true
}

// statusFor maps a booking result onto an HTTP status.
func statusFor(result *models.BookingResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch scheduling.ErrorKind(result.ErrorKind) {
	case scheduling.KindNotFound:
		return http.StatusNotFound
	case scheduling.KindValidation:
		return http.StatusBadRequest
	default:
		// Out-of-hours, overflow, and capacity rejections are slot
		// conflicts from the caller's point of view.
		return http.StatusConflict
	}
}
