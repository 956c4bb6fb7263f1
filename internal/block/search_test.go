package block_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-resolver/internal/block"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/mocks"
)

var genesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// blockTime returns the timestamp of a block on a chain producing one block every 12 seconds
func blockTime(n uint64) time.Time {
	return genesis.Add(time.Duration(n) * 12 * time.Second) //nolint:gosec,G115
}

// expectLinearChain serves timestamps for any block up to head
func expectLinearChain(provider *mocks.MockBlockProvider, head uint64) {
	provider.EXPECT().GetLatestBlock(gomock.Any()).Return(head, nil).AnyTimes()
	provider.EXPECT().GetBlockTimestamp(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n uint64) (time.Time, error) {
			return blockTime(n), nil
		}).AnyTimes()
}

func TestBlockSearch_FindBlockForTimestamp_ExactBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	expectLinearChain(provider, 1000)

	search := block.NewBlockSearch(domain.ChainL1, provider, 0)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(640))

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint64(640), found.Block)
	assert.Equal(t, blockTime(640), found.Timestamp)
}

func TestBlockSearch_FindBlockForTimestamp_BetweenBlocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	expectLinearChain(provider, 1000)

	search := block.NewBlockSearch(domain.ChainL1, provider, 100)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(333).Add(5*time.Second))

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint64(333), found.Block)
}

func TestBlockSearch_FindBlockForTimestamp_HeadBehindTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	expectLinearChain(provider, 1000)

	search := block.NewBlockSearch(domain.ChainL1, provider, 0)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(1001))

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestBlockSearch_FindBlockForTimestamp_BeforeStartBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	expectLinearChain(provider, 1000)

	search := block.NewBlockSearch(domain.ChainL1, provider, 500)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(499))

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestBlockSearch_FindBlockForTimestamp_HeadBeforeStartBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	provider.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(10), nil)

	search := block.NewBlockSearch(domain.ChainL2, provider, 500)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(5))

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestBlockSearch_FindBlockForTimestamp_HeadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	provider.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(0), errors.New("rpc unavailable"))

	search := block.NewBlockSearch(domain.ChainL1, provider, 0)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(5))

	assert.Error(t, err)
	assert.Nil(t, found)
}

func TestBlockSearch_FindBlockForTimestamp_MidpointError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockBlockProvider(ctrl)
	provider.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(1000), nil)
	provider.EXPECT().GetBlockTimestamp(gomock.Any(), uint64(1000)).Return(blockTime(1000), nil)
	provider.EXPECT().GetBlockTimestamp(gomock.Any(), uint64(0)).Return(blockTime(0), nil)
	provider.EXPECT().GetBlockTimestamp(gomock.Any(), gomock.Any()).Return(time.Time{}, errors.New("rate limited"))

	search := block.NewBlockSearch(domain.ChainL1, provider, 0)

	found, err := search.FindBlockForTimestamp(context.Background(), blockTime(10))

	assert.Error(t, err)
	assert.Nil(t, found)
}
