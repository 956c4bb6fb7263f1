package ownership

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/block"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// ResolutionState is a step in pinning a chain read to a block
type ResolutionState int

const (
	StateTryPrimary ResolutionState = iota
	StateTryFallback
	StateResolved
	StateUnresolved
)

// AttemptOutcome is what happened at one candidate block
type AttemptOutcome int

const (
	// OutcomeBlockMissing means the block search had no usable block for the bound
	OutcomeBlockMissing AttemptOutcome = iota
	// OutcomeQueryFailed means the subgraph rejected the read at the candidate height
	OutcomeQueryFailed
	// OutcomeQuerySucceeded means the read completed at the candidate height
	OutcomeQuerySucceeded
)

// Next returns the state that follows an attempt outcome
func (s ResolutionState) Next(outcome AttemptOutcome) ResolutionState {
	switch s {
	case StateTryPrimary:
		if outcome == OutcomeQuerySucceeded {
			return StateResolved
		}
		return StateTryFallback
	case StateTryFallback:
		if outcome == OutcomeQuerySucceeded {
			return StateResolved
		}
		return StateUnresolved
	default:
		return s
	}
}

// Terminal checks if no further attempt follows the state
func (s ResolutionState) Terminal() bool {
	return s == StateResolved || s == StateUnresolved
}

func (s ResolutionState) String() string {
	switch s {
	case StateTryPrimary:
		return "try_primary"
	case StateTryFallback:
		return "try_fallback"
	case StateResolved:
		return "resolved"
	case StateUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Resolution is the terminal state of resolving one chain, with the value read when resolved
type Resolution[T any] struct {
	State ResolutionState
	Block uint64
	Value T
}

// BlockResolver pins reads on one chain to the block current at a timestamp,
// falling back to the start of the tolerance window when the exact block is
// not yet indexed or not yet queryable.
type BlockResolver struct {
	chain     domain.Chain
	search    block.BlockSearch
	tolerance time.Duration
}

// NewBlockResolver creates a resolver for a chain
func NewBlockResolver(chain domain.Chain, search block.BlockSearch, tolerance time.Duration) *BlockResolver {
	return &BlockResolver{
		chain:     chain,
		search:    search,
		tolerance: tolerance,
	}
}

// Chain returns the chain the resolver pins reads on
func (r *BlockResolver) Chain() domain.Chain {
	return r.chain
}

// Resolve runs query at the block for the timestamp, retrying once at the fallback block.
//
// Block search errors are infrastructure failures and are returned unchanged.
// Query failures only move the state machine forward; when both candidates are
// exhausted the resolution is StateUnresolved with a nil error.
// The primary attempt always completes before the fallback attempt starts.
func Resolve[T any](ctx context.Context, r *BlockResolver, timestamp time.Time, query func(ctx context.Context, block uint64) (T, error)) (Resolution[T], error) {
	bounds := domain.NewTimestampBounds(timestamp, r.tolerance)

	state := StateTryPrimary
	var failedBlock *uint64
	var resolution Resolution[T]

	for !state.Terminal() {
		bound := bounds.Upper
		if state == StateTryFallback {
			// Give up between attempts when the caller is gone, this is not a negative verdict
			if err := ctx.Err(); err != nil {
				return Resolution[T]{}, err
			}
			bound = bounds.Lower
		}

		candidate, err := r.search.FindBlockForTimestamp(ctx, bound)
		if err != nil {
			return Resolution[T]{}, err
		}

		// The fallback is only worth a request when it points to a different height
		if candidate == nil || (failedBlock != nil && *failedBlock == candidate.Block) {
			logger.DebugCtx(ctx, "No usable block for timestamp",
				zap.String("chain", r.chain.String()),
				zap.String("state", state.String()),
				zap.Time("timestamp", bound))
			state = state.Next(OutcomeBlockMissing)
			continue
		}

		value, err := query(ctx, candidate.Block)
		if err != nil {
			logger.WarnCtx(ctx, "Query failed at candidate block",
				zap.String("chain", r.chain.String()),
				zap.String("state", state.String()),
				zap.Uint64("block", candidate.Block),
				zap.Error(err))
			height := candidate.Block
			failedBlock = &height
			state = state.Next(OutcomeQueryFailed)
			continue
		}

		resolution.Block = candidate.Block
		resolution.Value = value
		state = state.Next(OutcomeQuerySucceeded)
	}

	resolution.State = state
	return resolution, nil
}
