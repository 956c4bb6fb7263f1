package subgraph

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-ownership-resolver/internal/domain"
)

// Reader runs typed subgraph reads, shaping inputs to the indexer limits
//
//go:generate mockgen -source=reader.go -destination=../mocks/subgraph_reader.go -package=mocks -mock_names=Reader=MockSubgraphReader
type Reader interface {
	// FetchOwnership returns, per owner, the requested assets the owner holds.
	// A nil block reads the latest indexed state. Owners holding none of their
	// requested assets are omitted.
	FetchOwnership(ctx context.Context, endpoint Endpoint, kind AssetKind, queries []domain.OwnershipQuery, block *uint64) ([]domain.OwnedAssets, error)

	// FetchOwnersByName returns the current owner of each registered name
	FetchOwnersByName(ctx context.Context, endpoint Endpoint, names []string) ([]domain.NameOwner, error)

	// FetchCollections lists every approved collection
	FetchCollections(ctx context.Context, endpoint Endpoint) ([]domain.Collection, error)

	// FetchThirdParties lists every approved third-party integration
	FetchThirdParties(ctx context.Context, endpoint Endpoint) ([]domain.ThirdPartyIntegration, error)

	// FetchThirdPartyResolver returns the resolver URL of one integration, or "" when it is not registered
	FetchThirdPartyResolver(ctx context.Context, endpoint Endpoint, id string) (string, error)
}

// ReaderConfig holds the indexer input limits
type ReaderConfig struct {
	MaxInputCardinality int
	PageSize            int
}

// reader implements Reader on top of an Executor
type reader struct {
	executor Executor
	config   ReaderConfig
}

// NewReader creates a new subgraph reader
func NewReader(executor Executor, config ReaderConfig) Reader {
	if config.MaxInputCardinality <= 0 {
		config.MaxInputCardinality = domain.DEFAULT_MAX_INPUT_CARDINALITY
	}
	if config.PageSize <= 0 {
		config.PageSize = domain.DEFAULT_PAGE_SIZE
	}
	return &reader{
		executor: executor,
		config:   config,
	}
}

// FetchOwnership slices the queries into combined requests, drains each one and keeps only requested pairs
func (r *reader) FetchOwnership(ctx context.Context, endpoint Endpoint, kind AssetKind, queries []domain.OwnershipQuery, block *uint64) ([]domain.OwnedAssets, error) {
	normalized := make([]domain.OwnershipQuery, 0, len(queries))
	requested := make(map[domain.OwnerAddress]map[domain.AssetIdentifier]struct{})
	var ownerOrder []domain.OwnerAddress
	for _, q := range queries {
		owner := q.Owner.Normalize()
		if _, ok := requested[owner]; !ok {
			requested[owner] = make(map[domain.AssetIdentifier]struct{})
			ownerOrder = append(ownerOrder, owner)
		}
		for _, asset := range q.Assets {
			requested[owner][asset] = struct{}{}
		}
		normalized = append(normalized, domain.OwnershipQuery{Owner: owner, Assets: domain.UniqueAssets(q.Assets)})
	}

	confirmed := make(map[domain.OwnerAddress]map[domain.AssetIdentifier]struct{})
	query := ownershipQuery(kind)

	for _, batch := range Slice(normalized, r.config.MaxInputCardinality) {
		owners := batch.Owners()
		assets := batch.Assets()

		rows, err := Paginate(ctx, r.config.PageSize, func(ctx context.Context, first int, skip int) ([]OwnershipRow, error) {
			return Run(ctx, r.executor, Request{
				Endpoint: endpoint,
				Query:    query,
				Block:    block,
				Variables: map[string]any{
					"owners": owners,
					"assets": assets,
					"first":  first,
					"skip":   skip,
				},
			}, func(page ownershipPage) []OwnershipRow { return page.NFTs })
		})
		if err != nil {
			return nil, err
		}

		// owner_in x asset_in also matches assets requested for a different owner of the batch
		for _, row := range rows {
			owner := domain.OwnerAddress(row.Owner.Address).Normalize()
			asset := domain.AssetIdentifier(row.Asset)
			if _, ok := requested[owner][asset]; !ok {
				continue
			}
			if confirmed[owner] == nil {
				confirmed[owner] = make(map[domain.AssetIdentifier]struct{})
			}
			confirmed[owner][asset] = struct{}{}
		}
	}

	var result []domain.OwnedAssets
	for _, owner := range ownerOrder {
		owned := confirmed[owner]
		if len(owned) == 0 {
			continue
		}
		entry := domain.OwnedAssets{Owner: owner}
		for _, q := range normalized {
			if q.Owner != owner {
				continue
			}
			for _, asset := range q.Assets {
				if _, ok := owned[asset]; ok {
					entry.Assets = append(entry.Assets, asset)
					delete(owned, asset)
				}
			}
		}
		result = append(result, entry)
	}

	return result, nil
}

// FetchOwnersByName resolves owners of names in slices of the max input cardinality
func (r *reader) FetchOwnersByName(ctx context.Context, endpoint Endpoint, names []string) ([]domain.NameOwner, error) {
	unique := domain.AssetStrings(domain.UniqueAssets(domain.ToAssetIdentifiers(names)))

	var owners []domain.NameOwner
	for start := 0; start < len(unique); start += r.config.MaxInputCardinality {
		chunk := unique[start:min(start+r.config.MaxInputCardinality, len(unique))]

		rows, err := Paginate(ctx, r.config.PageSize, func(ctx context.Context, first int, skip int) ([]OwnershipRow, error) {
			return Run(ctx, r.executor, Request{
				Endpoint: endpoint,
				Query:    ownersByNameQuery,
				Variables: map[string]any{
					"names": chunk,
					"first": first,
					"skip":  skip,
				},
			}, func(page ownershipPage) []OwnershipRow { return page.NFTs })
		})
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			owners = append(owners, domain.NameOwner{
				Name:  row.Asset,
				Owner: domain.OwnerAddress(row.Owner.Address).Normalize(),
			})
		}
	}

	return owners, nil
}

// FetchCollections drains the approved collections listing
func (r *reader) FetchCollections(ctx context.Context, endpoint Endpoint) ([]domain.Collection, error) {
	return Paginate(ctx, r.config.PageSize, func(ctx context.Context, first int, skip int) ([]domain.Collection, error) {
		return Run(ctx, r.executor, Request{
			Endpoint: endpoint,
			Query:    collectionsQuery,
			Variables: map[string]any{
				"first": first,
				"skip":  skip,
			},
		}, func(page collectionsPage) []domain.Collection {
			collections := make([]domain.Collection, len(page.Collections))
			for i, c := range page.Collections {
				collections[i] = domain.Collection{Name: c.Name, URN: c.URN}
			}
			return collections
		})
	})
}

// FetchThirdParties drains the approved third-party registry
func (r *reader) FetchThirdParties(ctx context.Context, endpoint Endpoint) ([]domain.ThirdPartyIntegration, error) {
	return Paginate(ctx, r.config.PageSize, func(ctx context.Context, first int, skip int) ([]domain.ThirdPartyIntegration, error) {
		return Run(ctx, r.executor, Request{
			Endpoint: endpoint,
			Query:    thirdPartiesQuery,
			Variables: map[string]any{
				"first": first,
				"skip":  skip,
			},
		}, func(page thirdPartiesPage) []domain.ThirdPartyIntegration {
			integrations := make([]domain.ThirdPartyIntegration, len(page.ThirdParties))
			for i, row := range page.ThirdParties {
				integrations[i] = toThirdPartyIntegration(row)
			}
			return integrations
		})
	})
}

// FetchThirdPartyResolver looks up a single integration by id
func (r *reader) FetchThirdPartyResolver(ctx context.Context, endpoint Endpoint, id string) (string, error) {
	rows, err := Run(ctx, r.executor, Request{
		Endpoint:  endpoint,
		Query:     thirdPartyResolverQuery,
		Variables: map[string]any{"id": id},
	}, func(page thirdPartiesPage) []thirdPartyRow { return page.ThirdParties })
	if err != nil {
		return "", err
	}

	switch len(rows) {
	case 0:
		return "", nil
	case 1:
		return rows[0].Resolver, nil
	default:
		return "", fmt.Errorf("%d third parties registered with id %s", len(rows), id)
	}
}

func toThirdPartyIntegration(row thirdPartyRow) domain.ThirdPartyIntegration {
	integration := domain.ThirdPartyIntegration{
		ID:          row.ID,
		ResolverURL: row.Resolver,
	}
	if row.Metadata != nil && row.Metadata.ThirdParty != nil {
		integration.Name = row.Metadata.ThirdParty.Name
		integration.Description = row.Metadata.ThirdParty.Description
	}
	return integration
}
