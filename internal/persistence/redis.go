package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/vignette-service/internal/config"
	"github.com/spec-kit/vignette-service/internal/domain"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration. Connection
// failures are logged but not fatal; the verification cache degrades to a
// no-op and every lookup hits the database.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

const verifyCachePrefix = "verify:"

// VerificationCache stores plate verification results with a short TTL. A
// nil cache is valid and caches nothing.
type VerificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewVerificationCache builds the cache on top of an established Redis
// connection. Returns nil when redis is absent.
func NewVerificationCache(r *Redis, ttl time.Duration) *VerificationCache {
	if r == nil || r.Client == nil || ttl <= 0 {
		return nil
	}
	return &VerificationCache{client: r.Client, ttl: ttl}
}

// Get returns the cached result for a normalized plate, or (nil, nil) on a
// miss. Errors are returned so callers can log and fall through to the
// database.
func (c *VerificationCache) Get(ctx context.Context, plate string) (*domain.VerificationResult, error) {
	if c == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, verifyCachePrefix+plate).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result domain.VerificationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores a result under the normalized plate.
func (c *VerificationCache) Set(ctx context.Context, plate string, result *domain.VerificationResult) error {
	if c == nil {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, verifyCachePrefix+plate, payload, c.ttl).Err()
}

// Invalidate drops the cached entry for a plate. Called after a purchase so
// scanners see the new sticker immediately.
func (c *VerificationCache) Invalidate(ctx context.Context, plate string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, verifyCachePrefix+plate).Err()
}
