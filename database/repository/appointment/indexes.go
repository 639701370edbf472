package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"agendo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on appointment ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for businessId and date (primary query pattern)
		{
			Keys:    bson.D{{Key: "business_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("business_date_idx"),
		},
		// One live appointment per (business, date, start). Cancelled
		// rows are excluded so a freed slot can be rebooked.
		{
			Keys: bson.D{{Key: "business_id", Value: 1}, {Key: "date", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_live_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
				}),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
