package models

import "time"

// ServiceOffering is one entry of a business's service catalog. The
// catalog duration is authoritative; appointment creation never invents
// a default for a missing service duration.
type ServiceOffering struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64 `bson:"price,omitempty" json:"price,omitempty"`
}

// Business is the scheduling-relevant slice of a business profile.
// WorkingHours may be nil, meaning the business is always open.
type Business struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	WorkingHours *StoredWeekSchedule `bson:"working_hours,omitempty" json:"working_hours,omitempty"`
	GridConfig   *GridConfig         `bson:"grid_config,omitempty" json:"grid_config,omitempty"`
	Services     []ServiceOffering   `bson:"services,omitempty" json:"services,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}
