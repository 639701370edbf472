package businessRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agendo/database"
	"agendo/models"
	"agendo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo constructs a new instance of MongoBusinessRepo.
func NewMongoBusinessRepo() *MongoBusinessRepo {
	db := database.MongoClient.Database("agendo")
	return &MongoBusinessRepo{coll: db.Collection("businesses")}
}

// GetByID retrieves a business document by ID.
func (repo *MongoBusinessRepo) GetByID(businessID string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var business models.Business
	filter := bson.M{"id": businessID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&business); err != nil {
		return nil, fmt.Errorf("error fetching business with id %s: %w", businessID, err)
	}
	return &business, nil
}

const weekScheduleCacheTTL = 5 * time.Minute

func weekScheduleCacheKey(businessID string) string {
	return fmt.Sprintf("workinghours:%s", businessID)
}

// GetWorkingHours loads and normalizes the business's week schedule.
// A chat negotiation hits this several times per conversation, so the
// normalized schedule is cached in Redis for a few minutes; hour edits
// from the dashboard take effect after the TTL.
func (repo *MongoBusinessRepo) GetWorkingHours(businessID string) (*models.WeekSchedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cache := utils.GetCacheClient()
	if data, err := cache.Get(ctx, weekScheduleCacheKey(businessID)).Result(); err == nil {
		var week models.WeekSchedule
		if err := json.Unmarshal([]byte(data), &week); err == nil {
			return &week, nil
		}
	}

	business, err := repo.GetByID(businessID)
	if err != nil {
		return nil, err
	}
	week := NormalizeWorkingHours(business.WorkingHours)

	if data, err := json.Marshal(week); err == nil {
		if err := cache.Set(ctx, weekScheduleCacheKey(businessID), data, weekScheduleCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache working hours",
				zap.String("businessID", businessID), zap.Error(err))
		}
	}
	return week, nil
}

// GetGridConfig returns the business's grid config with defaults applied.
func (repo *MongoBusinessRepo) GetGridConfig(businessID string) (models.GridConfig, error) {
	business, err := repo.GetByID(businessID)
	if err != nil {
		return models.GridConfig{}, err
	}
	return EffectiveGridConfig(business.GridConfig), nil
}

// GetServiceDuration resolves the catalog duration for a service.
func (repo *MongoBusinessRepo) GetServiceDuration(businessID, serviceID string) (int, error) {
	business, err := repo.GetByID(businessID)
	if err != nil {
		return 0, err
	}
	for _, svc := range business.Services {
		if svc.ID == serviceID {
			if svc.DurationMinutes <= 0 {
				return 0, fmt.Errorf("service %s has no configured duration", serviceID)
			}
			return svc.DurationMinutes, nil
		}
	}
	return 0, fmt.Errorf("service %s not found for business %s", serviceID, businessID)
}
