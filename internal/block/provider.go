package block

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// headInfo represents the cached chain head
type headInfo struct {
	number    uint64
	fetchedAt time.Time
}

// timestampEntry represents a cached timestamp for a specific block number
type timestampEntry struct {
	timestamp time.Time
	cachedAt  time.Time
}

// BlockProvider provides cached access to the chain head and block timestamps.
// Block timestamps are immutable once confirmed, so the search can revisit the
// same midpoints across lookups without repeating RPC calls.
//
//go:generate mockgen -source=provider.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp for a given block number, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher is the interface for fetching block information from the blockchain
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block from the blockchain
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the head block number
	TTL time.Duration

	// StaleWindow is how long to serve stale data when fetching fails
	StaleWindow time.Duration

	// BlockTimestampTTL is how long to cache block timestamps, 0 caches forever
	BlockTimestampTTL time.Duration
}

// blockProvider implements BlockProvider with TTL-based caching
type blockProvider struct {
	chain   domain.Chain
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu   sync.RWMutex
	head *headInfo

	// timestamps is evicted by wall time once an entry can no longer be
	// served even as stale; freshness itself is judged against clock
	timestamps *cache.Cache
}

// TIMESTAMP_CLEANUP_INTERVAL is how often expired block timestamps are evicted
const TIMESTAMP_CLEANUP_INTERVAL = 10 * time.Minute

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(chain domain.Chain, fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	return &blockProvider{
		chain:      chain,
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: cache.New(cache.NoExpiration, TIMESTAMP_CLEANUP_INTERVAL),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		return cached.number, nil
	}

	logger.DebugCtx(ctx, "Fetching latest block number", zap.String("chain", p.chain.String()))
	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number",
				zap.String("chain", p.chain.String()),
				zap.Uint64("block_number", cached.number),
				zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &headInfo{
		number:    blockNumber,
		fetchedAt: now,
	}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetBlockTimestamp returns the timestamp for a given block number, using cache if valid
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	key := strconv.FormatUint(blockNumber, 10)

	var cached *timestampEntry
	if v, ok := p.timestamps.Get(key); ok {
		cached = v.(*timestampEntry)
	}

	now := p.clock.Now()

	if cached != nil && (p.config.BlockTimestampTTL == 0 || now.Sub(cached.cachedAt) < p.config.BlockTimestampTTL) {
		return cached.timestamp, nil
	}

	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		if cached != nil && now.Sub(cached.cachedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block timestamp",
				zap.String("chain", p.chain.String()),
				zap.Uint64("block_number", blockNumber),
				zap.Error(err))
			return cached.timestamp, nil
		}
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d and no valid cache available: %w", blockNumber, err)
	}

	p.timestamps.Set(key, &timestampEntry{
		timestamp: timestamp,
		cachedAt:  now,
	}, p.timestampEviction())

	return timestamp, nil
}

// timestampEviction returns how long a timestamp stays in memory
func (p *blockProvider) timestampEviction() time.Duration {
	if p.config.BlockTimestampTTL == 0 {
		return cache.NoExpiration
	}
	return p.config.BlockTimestampTTL + p.config.StaleWindow
}
