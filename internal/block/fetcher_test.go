package block_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-ownership-resolver/internal/block"
	"github.com/feral-file/ff-ownership-resolver/internal/mocks"
)

func TestEVMBlockFetcher_FetchLatestBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Nil()).Return(&types.Header{Number: big.NewInt(19000000)}, nil)

	fetcher := block.NewEVMBlockFetcher(client)
	number, err := fetcher.FetchLatestBlock(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, uint64(19000000), number)
}

func TestEVMBlockFetcher_FetchLatestBlock_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Nil()).Return(nil, errors.New("connection refused"))

	fetcher := block.NewEVMBlockFetcher(client)
	_, err := fetcher.FetchLatestBlock(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEVMBlockFetcher_FetchBlockTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(123456)).Return(&types.Header{
		Number: big.NewInt(123456),
		Time:   1700000000,
	}, nil)

	fetcher := block.NewEVMBlockFetcher(client)
	ts, err := fetcher.FetchBlockTimestamp(context.Background(), 123456)

	assert.NoError(t, err)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ts)
}

func TestEVMBlockFetcher_FetchBlockTimestamp_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).Return(nil, nil)

	fetcher := block.NewEVMBlockFetcher(client)
	_, err := fetcher.FetchBlockTimestamp(context.Background(), 1)

	assert.Error(t, err)
}
