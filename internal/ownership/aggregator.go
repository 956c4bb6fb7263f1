package ownership

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// OwnedFetcher reads which of the checked assets the owner holds at a block height
type OwnedFetcher func(ctx context.Context, block uint64) ([]domain.AssetIdentifier, error)

// ChainTarget is one chain's contribution to an ownership check
type ChainTarget struct {
	Resolver *BlockResolver
	Fetch    OwnedFetcher
}

// Aggregator resolves every chain of an ownership check in parallel and merges the evidence
type Aggregator struct {
	pool pond.Pool
}

// NewAggregator creates an aggregator running chain resolutions on pool
func NewAggregator(pool pond.Pool) *Aggregator {
	return &Aggregator{pool: pool}
}

// Aggregate checks that owner held every asset at timestamp across the targets.
//
// An unresolved chain contributes no evidence. A hard error from any chain
// aborts the check and is returned to the caller.
func (a *Aggregator) Aggregate(ctx context.Context, owner domain.OwnerAddress, assets []domain.AssetIdentifier, timestamp time.Time, targets []ChainTarget) (domain.OwnershipResult, error) {
	assets = domain.UniqueAssets(assets)
	if len(assets) == 0 {
		return domain.OwnershipResult{Result: true}, nil
	}

	partials, err := fanOut(ctx, a.pool, targets, func(ctx context.Context, target ChainTarget) (*domain.PartialOwnership, error) {
		return resolveChain(ctx, owner, timestamp, target)
	})
	if err != nil {
		return domain.OwnershipResult{}, err
	}

	result := Merge(assets, partials)
	if !result.Result {
		logger.DebugCtx(ctx, "Ownership not confirmed",
			zap.String("owner", owner.String()),
			zap.Time("timestamp", timestamp),
			zap.Int("failing", len(result.Failing)),
			zap.Bool("indeterminate", result.Indeterminate))
	}

	return result, nil
}

// resolveChain pins the fetch to a block on the target chain and records what it confirmed
func resolveChain(ctx context.Context, owner domain.OwnerAddress, timestamp time.Time, target ChainTarget) (*domain.PartialOwnership, error) {
	resolution, err := Resolve(ctx, target.Resolver, timestamp, target.Fetch)
	if err != nil {
		return nil, err
	}

	partial := domain.NewPartialOwnership(target.Resolver.Chain(), owner)
	if resolution.State == StateResolved {
		partial.Resolved = true
		partial.Block = resolution.Block
		partial.Add(resolution.Value...)
	}

	return partial, nil
}

// Merge unions the owned sets of every chain and reports the assets none of them confirmed
func Merge(assets []domain.AssetIdentifier, partials []*domain.PartialOwnership) domain.OwnershipResult {
	var failing []domain.AssetIdentifier
	for _, asset := range domain.UniqueAssets(assets) {
		owned := false
		for _, partial := range partials {
			if partial.Owns(asset) {
				owned = true
				break
			}
		}
		if !owned {
			failing = append(failing, asset)
		}
	}

	if len(failing) == 0 {
		return domain.OwnershipResult{Result: true}
	}

	// Indeterminate needs at least one chain that was asked and could not answer
	result := domain.OwnershipResult{
		Result:        false,
		Failing:       failing,
		Indeterminate: len(partials) > 0,
	}
	for _, partial := range partials {
		if partial.Resolved {
			result.Indeterminate = false
		} else {
			result.UnresolvedChains = append(result.UnresolvedChains, partial.Chain)
		}
	}

	return result
}

// fanOut runs task for every input on the pool and returns the results in input order.
// It waits for every task, or for the first error.
func fanOut[I any, R any](ctx context.Context, pool pond.Pool, inputs []I, task func(ctx context.Context, input I) (R, error)) ([]R, error) {
	results := make([]R, len(inputs))
	group := pool.NewGroupContext(ctx)
	for i, input := range inputs {
		group.SubmitErr(func() error {
			result, err := task(ctx, input)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
