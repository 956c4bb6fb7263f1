package ownership

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/block"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
	"github.com/feral-file/ff-ownership-resolver/internal/subgraph"
	"github.com/feral-file/ff-ownership-resolver/internal/urn"
)

// Client resolves ownership of names and catalog items across chains
//
//go:generate mockgen -source=client.go -destination=../mocks/ownership_client.go -package=mocks -mock_names=Client=MockOwnershipClient
type Client interface {
	// OwnsNamesAtTimestamp checks that owner held every name at timestamp
	OwnsNamesAtTimestamp(ctx context.Context, owner domain.OwnerAddress, names []string, timestamp time.Time) (domain.OwnershipResult, error)

	// OwnsItemsAtTimestamp checks that owner held every item at timestamp
	OwnsItemsAtTimestamp(ctx context.Context, owner domain.OwnerAddress, assetIDs []string, timestamp time.Time) (domain.OwnershipResult, error)

	// OwnedNames returns, for each owner holding at least one of its requested names, the names it holds now
	OwnedNames(ctx context.Context, queries []domain.OwnershipQuery) ([]domain.OwnedAssets, error)

	// OwnedItems returns, for each owner holding at least one of its requested items, the items it holds now
	OwnedItems(ctx context.Context, queries []domain.OwnershipQuery) ([]domain.OwnedAssets, error)

	// FindOwnersByName returns the current owner of each registered name
	FindOwnersByName(ctx context.Context, names []string) ([]domain.NameOwner, error)

	// GetAllCollections lists approved collections on every chain, best effort
	GetAllCollections(ctx context.Context) ([]domain.Collection, error)

	// GetThirdPartyIntegrations lists approved third-party integrations, best effort
	GetThirdPartyIntegrations(ctx context.Context) ([]domain.ThirdPartyIntegration, error)

	// FindThirdPartyResolver returns the resolver URL of a third-party integration
	FindThirdPartyResolver(ctx context.Context, id string) (string, error)

	// Close waits for in-flight resolutions and releases the worker pool
	Close()
}

// Subgraphs holds the subgraph URLs of one chain, empty when not hosted there
type Subgraphs struct {
	Marketplace string
	Collections string
	ThirdParty  string
}

// ChainConfig binds a chain to its block search and subgraphs
type ChainConfig struct {
	Search    block.BlockSearch
	Subgraphs Subgraphs
}

// Config holds the client configuration
type Config struct {
	// ToleranceWindow is how far before the requested time the fallback block may be
	ToleranceWindow time.Duration
	// MaxConcurrency bounds the chain resolutions running at once across all calls
	MaxConcurrency int
	// Chains holds every enabled chain
	Chains map[domain.Chain]ChainConfig
}

// NAMES_CHAIN is the only chain name registrations live on
const NAMES_CHAIN = domain.ChainL1

type client struct {
	config     Config
	reader     subgraph.Reader
	pool       pond.Pool
	aggregator *Aggregator
	resolvers  map[domain.Chain]*BlockResolver
}

// NewClient creates a new ownership client
func NewClient(cfg Config, reader subgraph.Reader) (Client, error) {
	if len(cfg.Chains) == 0 {
		return nil, fmt.Errorf("%w: no chains configured", domain.ErrUnknownChain)
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = domain.DEFAULT_MAX_CONCURRENCY
	}

	resolvers := make(map[domain.Chain]*BlockResolver, len(cfg.Chains))
	for chain, chainCfg := range cfg.Chains {
		if !domain.IsValidChain(chain) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownChain, chain)
		}
		if chainCfg.Search == nil {
			return nil, fmt.Errorf("chain %s has no block search", chain)
		}
		resolvers[chain] = NewBlockResolver(chain, chainCfg.Search, cfg.ToleranceWindow)
	}

	pool := pond.NewPool(cfg.MaxConcurrency)

	return &client{
		config:     cfg,
		reader:     reader,
		pool:       pool,
		aggregator: NewAggregator(pool),
		resolvers:  resolvers,
	}, nil
}

// OwnsNamesAtTimestamp checks name ownership on the names chain only
func (c *client) OwnsNamesAtTimestamp(ctx context.Context, owner domain.OwnerAddress, names []string, timestamp time.Time) (domain.OwnershipResult, error) {
	owner, err := validateOwner(owner)
	if err != nil {
		return domain.OwnershipResult{}, err
	}

	assets := domain.UniqueAssets(domain.ToAssetIdentifiers(names))
	if len(assets) == 0 {
		return domain.OwnershipResult{Result: true}, nil
	}

	endpoint, err := c.endpoint(NAMES_CHAIN, "marketplace")
	if err != nil {
		return domain.OwnershipResult{}, err
	}

	targets := []ChainTarget{{
		Resolver: c.resolvers[NAMES_CHAIN],
		Fetch:    c.pinnedFetcher(endpoint, subgraph.AssetKindName, owner, assets),
	}}

	return c.aggregator.Aggregate(ctx, owner, assets, timestamp, targets)
}

// OwnsItemsAtTimestamp checks item ownership on every chain indexing the items
func (c *client) OwnsItemsAtTimestamp(ctx context.Context, owner domain.OwnerAddress, assetIDs []string, timestamp time.Time) (domain.OwnershipResult, error) {
	owner, err := validateOwner(owner)
	if err != nil {
		return domain.OwnershipResult{}, err
	}

	assets := domain.UniqueAssets(domain.ToAssetIdentifiers(assetIDs))
	if len(assets) == 0 {
		return domain.OwnershipResult{Result: true}, nil
	}

	itemChains := c.chainsWith("collections")
	if len(itemChains) == 0 {
		return domain.OwnershipResult{}, fmt.Errorf("%w: collections", domain.ErrSubgraphNotConfigured)
	}

	routes := urn.RouteByChain(assets, itemChains)
	if err := checkRoutes(routes, itemChains); err != nil {
		return domain.OwnershipResult{}, err
	}

	var targets []ChainTarget
	for _, chain := range itemChains {
		routed := routes[chain]
		if len(routed) == 0 {
			continue
		}
		endpoint, _ := c.endpoint(chain, "collections")
		targets = append(targets, ChainTarget{
			Resolver: c.resolvers[chain],
			Fetch:    c.pinnedFetcher(endpoint, subgraph.AssetKindItem, owner, routed),
		})
	}

	return c.aggregator.Aggregate(ctx, owner, assets, timestamp, targets)
}

// OwnedNames reads current name ownership for many owners at once
func (c *client) OwnedNames(ctx context.Context, queries []domain.OwnershipQuery) ([]domain.OwnedAssets, error) {
	if err := validateQueries(queries); err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint(NAMES_CHAIN, "marketplace")
	if err != nil {
		return nil, err
	}
	return c.reader.FetchOwnership(ctx, endpoint, subgraph.AssetKindName, queries, nil)
}

// OwnedItems reads current item ownership for many owners at once, every chain in parallel
func (c *client) OwnedItems(ctx context.Context, queries []domain.OwnershipQuery) ([]domain.OwnedAssets, error) {
	if err := validateQueries(queries); err != nil {
		return nil, err
	}

	itemChains := c.chainsWith("collections")
	if len(itemChains) == 0 {
		return nil, fmt.Errorf("%w: collections", domain.ErrSubgraphNotConfigured)
	}

	perChain := make(map[domain.Chain][]domain.OwnershipQuery, len(itemChains))
	for _, q := range queries {
		routes := urn.RouteByChain(q.Assets, itemChains)
		if err := checkRoutes(routes, itemChains); err != nil {
			return nil, err
		}
		for chain, routed := range routes {
			perChain[chain] = append(perChain[chain], domain.OwnershipQuery{Owner: q.Owner, Assets: routed})
		}
	}

	results, err := fanOut(ctx, c.pool, itemChains, func(ctx context.Context, chain domain.Chain) ([]domain.OwnedAssets, error) {
		if len(perChain[chain]) == 0 {
			return nil, nil
		}
		endpoint, _ := c.endpoint(chain, "collections")
		return c.reader.FetchOwnership(ctx, endpoint, subgraph.AssetKindItem, perChain[chain], nil)
	})
	if err != nil {
		return nil, err
	}

	return mergeOwnedAssets(queries, results), nil
}

// FindOwnersByName resolves name owners on the names chain
func (c *client) FindOwnersByName(ctx context.Context, names []string) ([]domain.NameOwner, error) {
	if len(names) == 0 {
		return []domain.NameOwner{}, nil
	}
	endpoint, err := c.endpoint(NAMES_CHAIN, "marketplace")
	if err != nil {
		return nil, err
	}
	return c.reader.FetchOwnersByName(ctx, endpoint, names)
}

// GetAllCollections lists collections on every chain, a failing chain contributes nothing
func (c *client) GetAllCollections(ctx context.Context) ([]domain.Collection, error) {
	chains := c.chainsWith("collections")
	results, err := fanOut(ctx, c.pool, chains, func(ctx context.Context, chain domain.Chain) ([]domain.Collection, error) {
		endpoint, _ := c.endpoint(chain, "collections")
		collections, err := c.reader.FetchCollections(ctx, endpoint)
		if err != nil {
			logger.WarnCtx(ctx, "Collections listing unavailable, skipping chain",
				zap.String("chain", chain.String()),
				zap.Error(err))
			return nil, nil
		}
		return collections, nil
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	all := make([]domain.Collection, 0)
	for _, collections := range results {
		for _, collection := range collections {
			if _, ok := seen[collection.URN]; ok {
				continue
			}
			seen[collection.URN] = struct{}{}
			all = append(all, collection)
		}
	}

	return all, nil
}

// GetThirdPartyIntegrations lists third-party integrations, a failing registry contributes nothing
func (c *client) GetThirdPartyIntegrations(ctx context.Context) ([]domain.ThirdPartyIntegration, error) {
	all := make([]domain.ThirdPartyIntegration, 0)
	for _, chain := range c.chainsWith("third_party") {
		endpoint, _ := c.endpoint(chain, "third_party")
		integrations, err := c.reader.FetchThirdParties(ctx, endpoint)
		if err != nil {
			logger.WarnCtx(ctx, "Third party registry unavailable, skipping chain",
				zap.String("chain", chain.String()),
				zap.Error(err))
			continue
		}
		all = append(all, integrations...)
	}
	return all, nil
}

// FindThirdPartyResolver returns the resolver URL registered for a third-party id
func (c *client) FindThirdPartyResolver(ctx context.Context, id string) (string, error) {
	chains := c.chainsWith("third_party")
	if len(chains) == 0 {
		return "", fmt.Errorf("%w: third_party", domain.ErrSubgraphNotConfigured)
	}

	for _, chain := range chains {
		endpoint, _ := c.endpoint(chain, "third_party")
		resolver, err := c.reader.FetchThirdPartyResolver(ctx, endpoint, id)
		if err != nil {
			return "", err
		}
		if resolver != "" {
			return resolver, nil
		}
	}

	return "", fmt.Errorf("%w: %s", domain.ErrThirdPartyNotFound, id)
}

// Close waits for in-flight resolutions and releases the worker pool
func (c *client) Close() {
	c.pool.StopAndWait()
}

// pinnedFetcher reads the owner's assets from endpoint at a given block
func (c *client) pinnedFetcher(endpoint subgraph.Endpoint, kind subgraph.AssetKind, owner domain.OwnerAddress, assets []domain.AssetIdentifier) OwnedFetcher {
	return func(ctx context.Context, block uint64) ([]domain.AssetIdentifier, error) {
		entries, err := c.reader.FetchOwnership(ctx, endpoint, kind, []domain.OwnershipQuery{{Owner: owner, Assets: assets}}, &block)
		if err != nil {
			return nil, err
		}
		var owned []domain.AssetIdentifier
		for _, entry := range entries {
			owned = append(owned, entry.Assets...)
		}
		return owned, nil
	}
}

// chainsWith returns the configured chains hosting a subgraph, in resolution order
func (c *client) chainsWith(subgraphName string) []domain.Chain {
	var chains []domain.Chain
	for _, chain := range domain.AllChains {
		if _, err := c.endpoint(chain, subgraphName); err == nil {
			chains = append(chains, chain)
		}
	}
	return chains
}

// endpoint returns a configured subgraph endpoint of a chain
func (c *client) endpoint(chain domain.Chain, subgraphName string) (subgraph.Endpoint, error) {
	chainCfg, ok := c.config.Chains[chain]
	if !ok {
		return subgraph.Endpoint{}, fmt.Errorf("%w: %s", domain.ErrUnknownChain, chain)
	}

	var url string
	switch subgraphName {
	case "marketplace":
		url = chainCfg.Subgraphs.Marketplace
	case "collections":
		url = chainCfg.Subgraphs.Collections
	case "third_party":
		url = chainCfg.Subgraphs.ThirdParty
	}
	if url == "" {
		return subgraph.Endpoint{}, fmt.Errorf("%w: %s/%s", domain.ErrSubgraphNotConfigured, chain, subgraphName)
	}

	return subgraph.Endpoint{Chain: chain, Name: subgraphName, URL: url}, nil
}

// validateOwner normalizes the owner and rejects anything but a hex account address
func validateOwner(owner domain.OwnerAddress) (domain.OwnerAddress, error) {
	normalized := owner.Normalize()
	if !normalized.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidOwner, owner.String())
	}
	return normalized, nil
}

// validateQueries checks every owner of a batch before any subgraph is queried
func validateQueries(queries []domain.OwnershipQuery) error {
	for _, q := range queries {
		if _, err := validateOwner(q.Owner); err != nil {
			return err
		}
	}
	return nil
}

// checkRoutes rejects items routed to a chain without a collections subgraph
func checkRoutes(routes map[domain.Chain][]domain.AssetIdentifier, itemChains []domain.Chain) error {
	for chain, routed := range routes {
		if len(routed) > 0 && !slices.Contains(itemChains, chain) {
			return fmt.Errorf("%w: %s/collections needed for %s", domain.ErrSubgraphNotConfigured, chain, routed[0])
		}
	}
	return nil
}

// mergeOwnedAssets unions per-chain batch results, keeping owners and assets in request order
func mergeOwnedAssets(queries []domain.OwnershipQuery, perChain [][]domain.OwnedAssets) []domain.OwnedAssets {
	owned := make(map[domain.OwnerAddress]map[domain.AssetIdentifier]struct{})
	for _, entries := range perChain {
		for _, entry := range entries {
			owner := entry.Owner.Normalize()
			if owned[owner] == nil {
				owned[owner] = make(map[domain.AssetIdentifier]struct{})
			}
			for _, asset := range entry.Assets {
				owned[owner][asset] = struct{}{}
			}
		}
	}

	result := make([]domain.OwnedAssets, 0)
	index := make(map[domain.OwnerAddress]int)
	for _, q := range queries {
		owner := q.Owner.Normalize()
		assets := owned[owner]
		if len(assets) == 0 {
			continue
		}
		i, ok := index[owner]
		if !ok {
			i = len(result)
			index[owner] = i
			result = append(result, domain.OwnedAssets{Owner: owner})
		}
		for _, asset := range q.Assets {
			if _, ok := assets[asset]; ok {
				result[i].Assets = append(result[i].Assets, asset)
				delete(assets, asset)
			}
		}
	}

	return result
}
