package ratelimit

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

const (
	DEFAULT_KEY_PREFIX = "ff:ownership:limiter:"
	DEFAULT_MAX_WAIT   = time.Minute

	// REDIS_RETRY_INTERVAL is how long requests are limited locally after Redis fails
	REDIS_RETRY_INTERVAL = 10 * time.Second
)

// Limiter throttles outgoing subgraph requests per key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Wait blocks until a request for key may be sent, the context is done or MaxWait elapses
	Wait(ctx context.Context, key string) error

	// Close releases the Redis connection, if any
	Close() error
}

// Config holds the limiter configuration
type Config struct {
	RequestsPerSecond int
	Burst             int
	// MaxWait bounds how long a single request may queue for a token
	MaxWait time.Duration
	// KeyPrefix namespaces the shared Redis keys
	KeyPrefix string
	// LocalFallbackMultiplier scales the rate applied locally while Redis is unreachable,
	// since every replica then limits on its own
	LocalFallbackMultiplier float64
}

type limiter struct {
	config      Config
	redis       adapter.RedisClient
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	// redisRetryAt is the unix nano time from which Redis is tried again
	redisRetryAt atomic.Int64

	mu    sync.Mutex
	local map[string]*rate.Limiter

	closeOnce sync.Once
}

// NewLimiter creates a limiter. With a nil Redis client every replica limits on its own.
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if cfg.RequestsPerSecond <= 0 {
		return nil, errors.New("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DEFAULT_MAX_WAIT
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.LocalFallbackMultiplier <= 0 || rc == nil {
		cfg.LocalFallbackMultiplier = 1
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		clock:  clock,
		local:  make(map[string]*rate.Limiter),
	}

	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		l.distributed = rc.NewRateLimiter()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, limiting subgraph requests locally", zap.Error(err))
			l.redisRetryAt.Store(clock.Now().Add(REDIS_RETRY_INTERVAL).UnixNano())
		}
	}

	logger.Info("Subgraph rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("distributed", rc != nil),
	)

	return l, nil
}

func (l *limiter) Wait(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, l.config.MaxWait)
	defer cancel()

	for {
		if !l.useRedis() {
			return l.localLimiter(key).Wait(ctx)
		}

		res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, redis_rate.Limit{
			Rate:   l.config.RequestsPerSecond,
			Burst:  l.config.Burst,
			Period: time.Second,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.WarnCtx(ctx, "Redis rate limiter error, limiting locally",
				zap.String("key", key),
				zap.Error(err))
			l.redisRetryAt.Store(l.clock.Now().Add(REDIS_RETRY_INTERVAL).UnixNano())
			continue
		}
		if res.Allowed > 0 {
			return nil
		}

		// Spread retries over 50-150% of the advertised delay
		delay := time.Duration(float64(res.RetryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		logger.DebugCtx(ctx, "Rate limit token unavailable, waiting",
			zap.String("key", key),
			zap.Duration("retry_after", delay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(delay):
		}
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.redis != nil {
			err = l.redis.Close()
		}
	})
	return err
}

// useRedis reports whether the shared limit is in use
func (l *limiter) useRedis() bool {
	if l.distributed == nil {
		return false
	}
	return l.clock.Now().UnixNano() >= l.redisRetryAt.Load()
}

// localLimiter returns the in-process limiter of key, creating it on first use
func (l *limiter) localLimiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.local[key]
	if !ok {
		rps := max(float64(l.config.RequestsPerSecond)*l.config.LocalFallbackMultiplier, 1.0)
		lim = rate.NewLimiter(rate.Limit(rps), l.config.Burst)
		l.local[key] = lim
	}
	return lim
}
