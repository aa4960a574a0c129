// Package cache provides a Redis-backed read-path cache for users, balances
// and transfer records. The ledger stays the single source of truth; every
// write that touches a user's points invalidates that user's cached balance.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pointbank/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CacheService wraps a Redis client with JSON marshalling and a default TTL.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService creates a new CacheService.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

// Set stores a value under the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores a JSON-encoded value with an explicit TTL.
func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get loads a JSON-encoded value into dest, reporting whether it was found.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Delete removes the given keys.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// CacheUser stores a user under its id key.
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

// GetUser loads a cached user.
func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &user, nil
}

// InvalidateUser drops a user's cached profile and balance.
func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx,
		s.GenerateKey("user", "id", userID),
		s.GenerateKey("balance", "user", userID),
	)
}

// CacheBalance stores a user's current balance.
func (s *CacheService) CacheBalance(ctx context.Context, userID uint, balance int64) error {
	return s.SetWithTTL(ctx, s.GenerateKey("balance", "user", userID), balance, 5*time.Minute)
}

// GetBalance loads a cached balance.
func (s *CacheService) GetBalance(ctx context.Context, userID uint) (int64, error) {
	var balance int64
	found, err := s.Get(ctx, s.GenerateKey("balance", "user", userID), &balance)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrCacheMiss
	}
	return balance, nil
}

// InvalidateBalance drops a user's cached balance.
func (s *CacheService) InvalidateBalance(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("balance", "user", userID))
}

// CacheTransfer stores a transfer under its idempotency key.
func (s *CacheService) CacheTransfer(ctx context.Context, transfer *models.Transfer) error {
	if transfer == nil {
		return errors.New("cannot cache nil transfer")
	}
	key := s.GenerateKey("transfer", "idem", transfer.IdempotencyKey)
	return s.SetWithTTL(ctx, key, transfer, time.Hour)
}

// GetTransfer loads a cached transfer by idempotency key.
func (s *CacheService) GetTransfer(ctx context.Context, idemKey string) (*models.Transfer, error) {
	var transfer models.Transfer
	found, err := s.Get(ctx, s.GenerateKey("transfer", "idem", idemKey), &transfer)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &transfer, nil
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll clears the cache. Used on startup so stale balances never survive
// a redeploy.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close releases the underlying client.
func (s *CacheService) Close() error {
	return s.client.Close()
}
