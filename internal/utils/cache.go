package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error matching
	"strconv"       // Generation formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// BalanceKey is the cache key of the balance view at the given generation
func BalanceKey(userID string, generation int64) string {
	return "balance:user:" + userID + ":" + strconv.FormatInt(generation, 10)
}

// BalanceGenerationKey holds the counter bumped on every append for the user
func BalanceGenerationKey(userID string) string {
	return "balance:generation:user:" + userID
}

// StatementKey is the cache key of one statement; statements never change
func StatementKey(userID, statementID string) string {
	return "statement:user:" + userID + ":" + statementID
}

// ProfileKey is the cache key of the user's profile
func ProfileKey(userID string) string {
	return "profile:user:" + userID
}

// BalanceGeneration returns the user's current balance generation, 0 if never bumped.
// Read it before loading the history so a view is never filed under a newer generation.
func BalanceGeneration(ctx context.Context, rdb *redis.Client, userID string) (int64, error) {
	if rdb == nil {
		return 0, nil // Caching disabled
	}
	gen, err := rdb.Get(ctx, BalanceGenerationKey(userID)).Int64() // Read counter
	if errors.Is(err, redis.Nil) {
		return 0, nil // No append seen yet
	}
	return gen, err
}

// BumpBalanceGeneration moves the user to a new generation, orphaning every cached view
func BumpBalanceGeneration(ctx context.Context, rdb *redis.Client, userID string) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	return rdb.Incr(ctx, BalanceGenerationKey(userID)).Err() // Atomic increment
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves as an always-empty cache.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err // Corrupt entry, treat as a miss
	}
	return true, nil
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}
