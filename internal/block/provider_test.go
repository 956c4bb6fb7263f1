package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-ownership-resolver/internal/block"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
	"github.com/feral-file/ff-ownership-resolver/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBlockProviderMocks contains all the mocks needed for testing the block provider
type testBlockProviderMocks struct {
	ctrl       *gomock.Controller
	fetcher    *mocks.MockBlockFetcher
	clock      *mocks.MockClock
	provider   block.BlockProvider
	testConfig block.Config
}

// setupTest creates all the mocks and the block provider for testing
func setupTest(t *testing.T) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	testConfig := block.Config{
		TTL:               10 * time.Second,
		StaleWindow:       2 * time.Minute,
		BlockTimestampTTL: 0,
	}

	provider := block.NewBlockProvider(domain.ChainL1, mockFetcher, testConfig, mockClock)

	return &testBlockProviderMocks{
		ctrl:       ctrl,
		fetcher:    mockFetcher,
		clock:      mockClock,
		provider:   provider,
		testConfig: testConfig,
	}
}

// tearDownTest cleans up the test mocks
func tearDownTest(tm *testBlockProviderMocks) {
	tm.ctrl.Finish()
}

func TestBlockProvider_GetLatestBlock_FirstFetch(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	blockNum, err := tm.provider.GetLatestBlock(ctx)

	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestBlockProvider_GetLatestBlock_UsesCache_WithinTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil).Times(1)

	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))

	blockNum, err := tm.provider.GetLatestBlock(ctx)

	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestBlockProvider_GetLatestBlock_RefreshesCache_AfterTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(11 * time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1005), nil)

	blockNum, err := tm.provider.GetLatestBlock(ctx)

	assert.NoError(t, err)
	assert.Equal(t, uint64(1005), blockNum)
}

func TestBlockProvider_GetLatestBlock_ServesStale_OnFetchError(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(30 * time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc unavailable"))

	blockNum, err := tm.provider.GetLatestBlock(ctx)

	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestBlockProvider_GetLatestBlock_Error_WhenStaleWindowExceeded(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(3 * time.Minute))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc unavailable"))

	_, err = tm.provider.GetLatestBlock(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rpc unavailable")
}

func TestBlockProvider_GetLatestBlock_Error_NoCache(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc unavailable"))

	_, err := tm.provider.GetLatestBlock(ctx)

	assert.Error(t, err)
}

func TestBlockProvider_GetBlockTimestamp_CachesForever(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	blockTime := time.Date(2023, 12, 31, 23, 59, 48, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now).Times(2)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(500)).Return(blockTime, nil).Times(1)

	ts1, err := tm.provider.GetBlockTimestamp(ctx, 500)
	assert.NoError(t, err)
	assert.Equal(t, blockTime, ts1)

	ts2, err := tm.provider.GetBlockTimestamp(ctx, 500)
	assert.NoError(t, err)
	assert.Equal(t, blockTime, ts2)
}

func TestBlockProvider_GetBlockTimestamp_RefetchesAfterTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockBlockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	provider := block.NewBlockProvider(domain.ChainL2, fetcher, block.Config{
		TTL:               time.Second,
		StaleWindow:       time.Minute,
		BlockTimestampTTL: time.Hour,
	}, clock)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	blockTime := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	clock.EXPECT().Now().Return(now)
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(7)).Return(blockTime, nil)
	_, err := provider.GetBlockTimestamp(ctx, 7)
	assert.NoError(t, err)

	clock.EXPECT().Now().Return(now.Add(2 * time.Hour))
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(7)).Return(blockTime, nil)

	ts, err := provider.GetBlockTimestamp(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, blockTime, ts)
}

func TestBlockProvider_GetBlockTimestamp_Error(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.clock.EXPECT().Now().Return(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(time.Time{}, errors.New("header not found"))

	_, err := tm.provider.GetBlockTimestamp(ctx, 42)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "block 42")
}
