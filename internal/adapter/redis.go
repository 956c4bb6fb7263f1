package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient defines the Redis operations backing the shared subgraph rate limit
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// NewRateLimiter creates a GCRA limiter sharing this connection
	NewRateLimiter() RedisRateLimiter

	// Close closes the Redis connection
	Close() error
}

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RealRedisClient wraps the go-redis client
type RealRedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client, the connection is opened lazily
func NewRedisClient(cfg RedisConfig) RedisClient {
	return &RealRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (r *RealRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RealRedisClient) NewRateLimiter() RedisRateLimiter {
	return &RealRedisRateLimiter{limiter: redis_rate.NewLimiter(r.client)}
}

func (r *RealRedisClient) Close() error {
	return r.client.Close()
}

// RedisRateLimiter defines the distributed rate limiting operations
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisRateLimiter=MockRedisRateLimiter
type RedisRateLimiter interface {
	// Allow takes one token for key, the result carries the retry delay when none is left
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RealRedisRateLimiter wraps redis_rate.Limiter
type RealRedisRateLimiter struct {
	limiter *redis_rate.Limiter
}

func (r *RealRedisRateLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return r.limiter.Allow(ctx, key, limit)
}
