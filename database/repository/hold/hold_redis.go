package holdRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agendo/models"
	"agendo/utils"

	"github.com/go-redis/redis/v8"
)

// RedisHoldRepo implements HoldRepository on Redis. Each hold lives
// under one key per (business, contact), so a plain SET is the atomic
// replace-existing-live-hold operation and the key TTL retires the hold
// without any background sweep.
type RedisHoldRepo struct {
	client *redis.Client
}

// NewRedisHoldRepo constructs a new instance of RedisHoldRepo.
func NewRedisHoldRepo() *RedisHoldRepo {
	return &RedisHoldRepo{client: utils.GetHoldCacheClient()}
}

func holdKey(businessID, contact string) string {
	return fmt.Sprintf("hold:%s:%s", businessID, contact)
}

// Replace writes the hold with a TTL matching its expiry, overwriting
// the contact's previous hold if one exists.
func (repo *RedisHoldRepo) Replace(hold *models.Hold) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ttl := time.Until(hold.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("hold for %s already expired", hold.Contact)
	}

	data, err := json.Marshal(hold)
	if err != nil {
		return fmt.Errorf("failed to marshal hold: %w", err)
	}
	if err := repo.client.Set(ctx, holdKey(hold.BusinessID, hold.Contact), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store hold: %w", err)
	}
	return nil
}

// GetLive returns the contact's live hold, or nil when none exists.
func (repo *RedisHoldRepo) GetLive(businessID, contact string) (*models.Hold, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := repo.client.Get(ctx, holdKey(businessID, contact)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hold: %w", err)
	}
	var hold models.Hold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return nil, fmt.Errorf("failed to parse hold: %w", err)
	}
	return &hold, nil
}

// ListLive scans the business's hold keys and returns the non-expired
// holds for the given date. Redis drops expired keys on its own, but
// the ExpiresAt check stays as the authoritative liveness test.
func (repo *RedisHoldRepo) ListLive(businessID, date string) ([]models.Hold, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	var holds []models.Hold

	iter := repo.client.Scan(ctx, 0, fmt.Sprintf("hold:%s:*", businessID), 100).Iterator()
	for iter.Next(ctx) {
		data, err := repo.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch hold %s: %w", iter.Val(), err)
		}
		var hold models.Hold
		if err := json.Unmarshal([]byte(data), &hold); err != nil {
			return nil, fmt.Errorf("failed to parse hold %s: %w", iter.Val(), err)
		}
		if hold.Date != date || !hold.Live(now) {
			continue
		}
		holds = append(holds, hold)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("hold scan failed: %w", err)
	}
	return holds, nil
}

// Release drops the contact's hold, if any.
func (repo *RedisHoldRepo) Release(businessID, contact string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := repo.client.Del(ctx, holdKey(businessID, contact)).Err(); err != nil {
		return fmt.Errorf("failed to release hold: %w", err)
	}
	return nil
}
