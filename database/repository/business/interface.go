package businessRepo

import "agendo/models"

// BusinessRepository exposes the scheduling-relevant slice of a
// business profile: working hours, grid configuration, and the service
// catalog. Working hours are returned already normalized; callers never
// see the legacy single open/close shape.
type BusinessRepository interface {
	GetByID(businessID string) (*models.Business, error)
	// GetWorkingHours returns the normalized week schedule. A business
	// without configured hours resolves to models.AlwaysOpen().
	GetWorkingHours(businessID string) (*models.WeekSchedule, error)
	// GetGridConfig returns the business's grid config, with defaults
	// applied when unset.
	GetGridConfig(businessID string) (models.GridConfig, error)
	// GetServiceDuration resolves a service's duration in minutes from
	// the catalog. The catalog is authoritative; there is no fallback.
	GetServiceDuration(businessID, serviceID string) (int, error)
}
