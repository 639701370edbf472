package holdRepo

import "agendo/models"

// HoldRepository stores live chat holds. Implementations must make
// Replace atomic per (business, contact): writing a new hold supersedes
// any previous one for that contact, never accumulates.
type HoldRepository interface {
	// Replace writes the hold, overwriting the contact's previous live
	// hold if one exists.
	Replace(hold *models.Hold) error
	// ListLive returns the business's non-expired holds for one date.
	ListLive(businessID, date string) ([]models.Hold, error)
	// GetLive returns the contact's live hold, or nil if none exists.
	GetLive(businessID, contact string) (*models.Hold, error)
	// Release drops the contact's hold, if any.
	Release(businessID, contact string) error
}
