package routes

import (
	"agendo/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers all endpoints for the scheduling engine.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	scheduling := r.Group("/api/scheduling")
	{
		scheduling.GET("/:businessID/availability", h.CheckAvailability) // busy intervals for "is X free?"
		scheduling.GET("/:businessID/times", h.GetAvailableTimes)       // bookable starts for a duration

		scheduling.POST("/appointments", h.CreateAppointment)
		scheduling.POST("/appointments/:appointmentID/confirm", h.ConfirmAppointment)
		scheduling.PUT("/appointments/:appointmentID/reschedule", h.RescheduleAppointment)
		scheduling.DELETE("/appointments/:appointmentID", h.CancelAppointment)
	}
}
