package block

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// BlockSearch finds the block that was current at a point in time.
// A nil block with a nil error means the chain has no block for the timestamp yet
// (or the timestamp predates the searchable range). Errors are reserved for
// infrastructure failures.
//
//go:generate mockgen -source=search.go -destination=../mocks/block_search.go -package=mocks -mock_names=BlockSearch=MockBlockSearch
type BlockSearch interface {
	FindBlockForTimestamp(ctx context.Context, timestamp time.Time) (*domain.ResolvedBlock, error)
}

// blockSearch binary searches block timestamps between a start block and the chain head
type blockSearch struct {
	chain      domain.Chain
	provider   BlockProvider
	startBlock uint64
}

// NewBlockSearch creates a BlockSearch over the blocks served by provider
func NewBlockSearch(chain domain.Chain, provider BlockProvider, startBlock uint64) BlockSearch {
	return &blockSearch{
		chain:      chain,
		provider:   provider,
		startBlock: startBlock,
	}
}

// FindBlockForTimestamp returns the highest block whose timestamp is not after the given time
func (s *blockSearch) FindBlockForTimestamp(ctx context.Context, timestamp time.Time) (*domain.ResolvedBlock, error) {
	head, err := s.provider.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get head for %s: %w", s.chain, err)
	}
	if head < s.startBlock {
		return nil, nil
	}

	headTime, err := s.provider.GetBlockTimestamp(ctx, head)
	if err != nil {
		return nil, err
	}
	// The head has not reached the timestamp, a later block may still be produced before it
	if headTime.Before(timestamp) {
		logger.DebugCtx(ctx, "Chain head is behind requested timestamp",
			zap.String("chain", s.chain.String()),
			zap.Uint64("head", head),
			zap.Time("head_time", headTime),
			zap.Time("timestamp", timestamp))
		return nil, nil
	}

	startTime, err := s.provider.GetBlockTimestamp(ctx, s.startBlock)
	if err != nil {
		return nil, err
	}
	if startTime.After(timestamp) {
		return nil, nil
	}

	// Invariant: timestamp(lo) <= timestamp, and either hi is the head or timestamp(hi) > timestamp
	lo, hi := s.startBlock, head
	loTime := startTime
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		midTime, err := s.provider.GetBlockTimestamp(ctx, mid)
		if err != nil {
			return nil, err
		}
		if midTime.After(timestamp) {
			hi = mid - 1
		} else {
			lo = mid
			loTime = midTime
		}
	}

	return &domain.ResolvedBlock{
		Timestamp: loTime,
		Block:     lo,
	}, nil
}
