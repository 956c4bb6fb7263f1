package block

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
)

// evmBlockFetcher implements BlockFetcher for any EVM chain reachable over JSON-RPC
type evmBlockFetcher struct {
	client adapter.EthClient
}

// NewEVMBlockFetcher creates a block fetcher backed by an EVM RPC client
func NewEVMBlockFetcher(client adapter.EthClient) BlockFetcher {
	return &evmBlockFetcher{client: client}
}

// FetchLatestBlock fetches the latest block number
func (f *evmBlockFetcher) FetchLatestBlock(ctx context.Context) (uint64, error) {
	header, err := f.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	if header == nil || header.Number == nil {
		return 0, errors.New("latest block header has no number")
	}
	return header.Number.Uint64(), nil
}

// FetchBlockTimestamp fetches the timestamp for a given block number
func (f *evmBlockFetcher) FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	header, err := f.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get block %d: %w", blockNumber, err)
	}
	if header == nil {
		return time.Time{}, fmt.Errorf("block %d header not found", blockNumber)
	}
	return time.Unix(int64(header.Time), 0).UTC(), nil //nolint:gosec,G115
}
