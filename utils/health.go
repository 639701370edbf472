package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of this service's dependencies:
// Mongo (businesses, appointments), the Redis hold store, and the
// Redis working-hours cache.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	HoldStore bool      `json:"holdStore"`
	Cache     bool      `json:"cache"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether the service can take bookings. The cache is
// an optimization; losing it degrades latency, not correctness.
func (s HealthStatus) Healthy() bool {
	return s.Mongo && s.HoldStore
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// checkHealth pings each dependency. An unwired (nil) client reports
// as down rather than panicking the monitor.
func checkHealth(ctx context.Context, mongoClient *mongo.Client, holdStore, cache *redis.Client) HealthStatus {
	status := HealthStatus{CheckedAt: time.Now()}
	if mongoClient != nil {
		status.Mongo = mongoClient.Ping(ctx, nil) == nil
	}
	if holdStore != nil {
		status.HoldStore = holdStore.Ping(ctx).Err() == nil
	}
	if cache != nil {
		status.Cache = cache.Ping(ctx).Err() == nil
	}
	return status
}

// StartHealthMonitor refreshes the in-memory snapshot once a minute.
func StartHealthMonitor(mongoClient *mongo.Client, holdStore, cache *redis.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			status := checkHealth(ctx, mongoClient, holdStore, cache)
			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
