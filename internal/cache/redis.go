package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: on failure
// the client stays nil and every lookup degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// ============================================
// Cache Keys
// ============================================

// Every key is scoped by building so invalidation after a write stays
// targeted.

// FeePeriodKey caches the generated fee rows of one (building, period).
func FeePeriodKey(buildingID, year, month int) string {
	return fmt.Sprintf("fees:b%d:period:%d-%02d", buildingID, year, month)
}

// FeeHistoryKey caches one unit identity's full fee history.
func FeeHistoryKey(buildingID, clientID int, objectNumber, unitType string, floor int) string {
	return fmt.Sprintf("fees:b%d:history:%d:%s:%s:%d", buildingID, clientID, objectNumber, unitType, floor)
}

// UnitsKey caches a building's merged unit list.
func UnitsKey(buildingID int) string {
	return fmt.Sprintf("units:b%d", buildingID)
}

// SettingsKey caches a building's fee settings.
func SettingsKey(buildingID int) string {
	return fmt.Sprintf("settings:b%d", buildingID)
}

// ============================================
// Generic Cache Functions
// ============================================

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// ============================================
// Cache Invalidation Functions
// ============================================

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// ============================================
// Entity-Based Cache Invalidators
// ============================================

// InvalidateFeeCaches clears every cached fee view for a building.
// Called when: GenerateFees, PayCurrentPeriod, PayAllOutstanding.
// Cached fee views are never authoritative; every write invalidates before
// returning.
func InvalidateFeeCaches(ctx context.Context, buildingID int) {
	InvalidatePattern(ctx, fmt.Sprintf("fees:b%d:*", buildingID))
}

// InvalidateUnitCaches clears a building's unit list.
// Called when: expense entry references a new period layout, or building
// management mutates units outside this service.
func InvalidateUnitCaches(ctx context.Context, buildingID int) {
	InvalidateKeys(ctx, UnitsKey(buildingID))
}

// InvalidateSettingCaches clears a building's fee settings and, since
// settings feed generation, its fee views as well.
// Called when: UpsertFeeSetting.
func InvalidateSettingCaches(ctx context.Context, buildingID int) {
	InvalidateKeys(ctx, SettingsKey(buildingID))
	InvalidateFeeCaches(ctx, buildingID)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
