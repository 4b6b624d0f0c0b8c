package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gymbook/pkg/model"

	"github.com/redis/go-redis/v9"
)

const Key = "gymbook:settings:operatingHours"

// HoursCache stores the weekly schedule between reads. Get returns nil, nil
// on a miss.
type HoursCache interface {
	Get(ctx context.Context) (*model.OperatingHours, error)
	Set(ctx context.Context, hours *model.OperatingHours, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type redisHoursCache struct {
	rdb *redis.Client
}

func NewRedisHoursCache(rdb *redis.Client) HoursCache {
	return &redisHoursCache{rdb: rdb}
}

func (c *redisHoursCache) Get(ctx context.Context) (*model.OperatingHours, error) {
	raw, err := c.rdb.Get(ctx, Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hours cache: %w", err)
	}

	var hours model.OperatingHours
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, fmt.Errorf("failed to decode hours cache: %w", err)
	}
	return &hours, nil
}

func (c *redisHoursCache) Set(ctx context.Context, hours *model.OperatingHours, ttl time.Duration) error {
	raw, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("failed to encode hours cache: %w", err)
	}
	if err := c.rdb.Set(ctx, Key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write hours cache: %w", err)
	}
	return nil
}

func (c *redisHoursCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, Key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate hours cache: %w", err)
	}
	return nil
}
