package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
	"github.com/feral-file/ff-ownership-resolver/internal/block"
	"github.com/feral-file/ff-ownership-resolver/internal/config"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
	"github.com/feral-file/ff-ownership-resolver/internal/ownership"
	"github.com/feral-file/ff-ownership-resolver/internal/ratelimit"
	"github.com/feral-file/ff-ownership-resolver/internal/subgraph"
)

// Dependencies holds the adapters the ownership client is built on
type Dependencies struct {
	Dialer adapter.EthClientDialer
	Clock  adapter.Clock
	JSON   adapter.JSON
	HTTP   adapter.HTTPClient
	// Redis backs the shared subgraph rate limit, nil limits per replica
	Redis adapter.RedisClient
}

// DefaultDependencies returns the production adapters for a resolver configuration
func DefaultDependencies(cfg config.ResolverConfig) Dependencies {
	retry := adapter.DefaultRetryConfig
	if cfg.RateLimitMaxWait > 0 {
		retry.MaxElapsedTime = cfg.RateLimitMaxWait
	}

	deps := Dependencies{
		Dialer: adapter.NewEthClientDialer(),
		Clock:  adapter.NewClock(),
		JSON:   adapter.NewJSON(),
		HTTP:   adapter.NewHTTPClientWithRetry(cfg.HTTPTimeout, retry),
	}

	if cfg.RateLimit.RequestsPerSecond > 0 && cfg.RateLimit.RedisAddr != "" {
		deps.Redis = adapter.NewRedisClient(adapter.RedisConfig{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
			DB:       cfg.RateLimit.RedisDB,
		})
	}

	return deps
}

// NewOwnershipClient dials every enabled chain and builds the ownership client.
// The returned cleanup closes the client, the rate limiter and every RPC connection.
func NewOwnershipClient(ctx context.Context, cfg config.ResolverConfig, deps Dependencies) (ownership.Client, func(), error) {
	var ethClients []adapter.EthClient
	closeEthClients := func() {
		for _, c := range ethClients {
			c.Close()
		}
	}

	chains := make(map[domain.Chain]ownership.ChainConfig)
	for _, chain := range domain.AllChains {
		chainCfg, err := cfg.Chain(chain)
		if err != nil {
			closeEthClients()
			return nil, nil, err
		}
		if !chainCfg.Enabled {
			logger.InfoCtx(ctx, "Chain disabled", zap.String("chain", chain.String()))
			continue
		}

		ethClient, err := deps.Dialer.Dial(ctx, chainCfg.RPCURL)
		if err != nil {
			closeEthClients()
			return nil, nil, fmt.Errorf("failed to dial %s RPC: %w", chain, err)
		}
		ethClients = append(ethClients, ethClient)

		provider := block.NewBlockProvider(chain, block.NewEVMBlockFetcher(ethClient), block.Config{
			TTL:               chainCfg.BlockHeadTTL,
			StaleWindow:       chainCfg.BlockHeadStaleWindow,
			BlockTimestampTTL: chainCfg.BlockTimestampTTL,
		}, deps.Clock)

		chains[chain] = ownership.ChainConfig{
			Search: block.NewBlockSearch(chain, provider, chainCfg.StartBlock),
			Subgraphs: ownership.Subgraphs{
				Marketplace: chainCfg.Subgraphs.Marketplace,
				Collections: chainCfg.Subgraphs.Collections,
				ThirdParty:  chainCfg.Subgraphs.ThirdParty,
			},
		}

		logger.InfoCtx(ctx, "Chain configured",
			zap.String("chain", chain.String()),
			zap.String("chain_id", chainCfg.ChainID),
			zap.Uint64("start_block", chainCfg.StartBlock),
		)
	}

	httpClient := deps.HTTP
	var limiter ratelimit.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		var err error
		limiter, err = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond:       cfg.RateLimit.RequestsPerSecond,
			Burst:                   cfg.RateLimit.Burst,
			MaxWait:                 cfg.RateLimit.MaxWait,
			KeyPrefix:               cfg.RateLimit.RedisKeyPrefix,
			LocalFallbackMultiplier: cfg.RateLimit.LocalFallbackMultiplier,
		}, deps.Redis, deps.Clock)
		if err != nil {
			closeEthClients()
			return nil, nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		httpClient = ratelimit.NewHTTPClient(httpClient, limiter)
	}

	closeLimiter := func() {
		if limiter == nil {
			return
		}
		if err := limiter.Close(); err != nil {
			logger.Warn("Failed to close rate limiter", zap.Error(err))
		}
	}

	executor := subgraph.NewExecutor(httpClient, deps.JSON, deps.Clock)
	reader := subgraph.NewReader(executor, subgraph.ReaderConfig{
		MaxInputCardinality: cfg.MaxInputCardinality,
		PageSize:            cfg.PageSize,
	})

	client, err := ownership.NewClient(ownership.Config{
		ToleranceWindow: cfg.ToleranceWindow,
		MaxConcurrency:  cfg.MaxConcurrency,
		Chains:          chains,
	}, reader)
	if err != nil {
		closeLimiter()
		closeEthClients()
		return nil, nil, fmt.Errorf("failed to create ownership client: %w", err)
	}

	cleanup := func() {
		client.Close()
		closeLimiter()
		closeEthClients()
	}

	return client, cleanup, nil
}
