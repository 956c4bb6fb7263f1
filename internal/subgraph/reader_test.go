package subgraph_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/mocks"
	"github.com/feral-file/ff-ownership-resolver/internal/subgraph"
)

// testReaderMocks contains the mocks needed for testing the reader
type testReaderMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	reader     subgraph.Reader
}

func setupReaderTest(t *testing.T, config subgraph.ReaderConfig) *testReaderMocks {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	executor := subgraph.NewExecutor(httpClient, adapter.NewJSON(), adapter.NewClock())

	return &testReaderMocks{
		ctrl:       ctrl,
		httpClient: httpClient,
		reader:     subgraph.NewReader(executor, config),
	}
}

func TestReader_FetchOwnership_FiltersCrossProduct(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{})
	defer tm.ctrl.Finish()

	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body []byte) ([]byte, error) {
			req := decodeRequest(t, body)
			assert.Equal(t, "NamesOwnership", req["operationName"])
			variables := req["variables"].(map[string]any)
			assert.Equal(t, []any{"0xaaa", "0xbbb"}, variables["owners"])
			assert.Equal(t, []any{"alice", "bob"}, variables["assets"])
			assert.Equal(t, float64(0), variables["skip"])

			// 0xaaa also holds bob, which was only requested for 0xbbb
			return []byte(`{"data":{"nfts":[
				{"asset":"alice","owner":{"address":"0xAAA"}},
				{"asset":"bob","owner":{"address":"0xaaa"}}
			]}}`), nil
		})

	owned, err := tm.reader.FetchOwnership(context.Background(), testEndpoint, subgraph.AssetKindName, []domain.OwnershipQuery{
		{Owner: "0xAAA", Assets: []domain.AssetIdentifier{"alice"}},
		{Owner: "0xbbb", Assets: []domain.AssetIdentifier{"bob"}},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.OwnedAssets{
		{Owner: "0xaaa", Assets: []domain.AssetIdentifier{"alice"}},
	}, owned)
}

func TestReader_FetchOwnership_PinnedAndPaginated(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{PageSize: 2})
	defer tm.ctrl.Finish()

	responses := [][]byte{
		[]byte(`{"data":{"nfts":[
			{"asset":"urn:decentraland:matic:collections-v2:0x1:0","owner":{"address":"0xaaa"}},
			{"asset":"urn:decentraland:matic:collections-v2:0x1:1","owner":{"address":"0xaaa"}}
		]}}`),
		[]byte(`{"data":{"nfts":[
			{"asset":"urn:decentraland:matic:collections-v2:0x1:2","owner":{"address":"0xaaa"}}
		]}}`),
	}

	call := 0
	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body []byte) ([]byte, error) {
			variables := decodeRequest(t, body)["variables"].(map[string]any)
			assert.Equal(t, map[string]any{"number": float64(500)}, variables["block"])
			assert.Equal(t, float64(2), variables["first"])
			assert.Equal(t, float64(call*2), variables["skip"])
			resp := responses[call]
			call++
			return resp, nil
		}).Times(2)

	height := uint64(500)
	assets := []domain.AssetIdentifier{
		"urn:decentraland:matic:collections-v2:0x1:2",
		"urn:decentraland:matic:collections-v2:0x1:0",
		"urn:decentraland:matic:collections-v2:0x1:1",
		"urn:decentraland:matic:collections-v2:0x1:9",
	}
	owned, err := tm.reader.FetchOwnership(context.Background(), testEndpoint, subgraph.AssetKindItem, []domain.OwnershipQuery{
		{Owner: "0xaaa", Assets: assets},
	}, &height)

	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, assets[:3], owned[0].Assets)
}

func TestReader_FetchOwnership_SlicesRequests(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{MaxInputCardinality: 2})
	defer tm.ctrl.Finish()

	var sentOwners [][]any
	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body []byte) ([]byte, error) {
			variables := decodeRequest(t, body)["variables"].(map[string]any)
			sentOwners = append(sentOwners, variables["owners"].([]any))
			assert.LessOrEqual(t, len(variables["assets"].([]any)), 2)
			return []byte(`{"data":{"nfts":[]}}`), nil
		}).Times(2)

	owned, err := tm.reader.FetchOwnership(context.Background(), testEndpoint, subgraph.AssetKindName, []domain.OwnershipQuery{
		{Owner: "0xaaa", Assets: []domain.AssetIdentifier{"a1", "a2"}},
		{Owner: "0xbbb", Assets: []domain.AssetIdentifier{"b1"}},
	}, nil)

	assert.NoError(t, err)
	assert.Empty(t, owned)
	assert.Equal(t, [][]any{{"0xaaa"}, {"0xbbb"}}, sentOwners)
}

func TestReader_FetchOwnership_PropagatesFailure(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{})
	defer tm.ctrl.Finish()

	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"errors":[{"message":"indexing_error"}]}`), nil)

	_, err := tm.reader.FetchOwnership(context.Background(), testEndpoint, subgraph.AssetKindName, []domain.OwnershipQuery{
		{Owner: "0xaaa", Assets: []domain.AssetIdentifier{"alice"}},
	}, nil)

	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestReader_FetchOwnersByName(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{})
	defer tm.ctrl.Finish()

	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body []byte) ([]byte, error) {
			variables := decodeRequest(t, body)["variables"].(map[string]any)
			assert.Equal(t, []any{"alice", "bob"}, variables["names"])
			return []byte(`{"data":{"nfts":[{"asset":"alice","owner":{"address":"0xABC"}}]}}`), nil
		})

	owners, err := tm.reader.FetchOwnersByName(context.Background(), testEndpoint, []string{"alice", "bob", "alice"})

	require.NoError(t, err)
	assert.Equal(t, []domain.NameOwner{{Name: "alice", Owner: "0xabc"}}, owners)
}

func TestReader_FetchCollections(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{})
	defer tm.ctrl.Finish()

	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
		Return([]byte(`{"data":{"collections":[
			{"name":"Wearables","urn":"urn:decentraland:matic:collections-v2:0x1"},
			{"name":"Emotes","urn":"urn:decentraland:matic:collections-v2:0x2"}
		]}}`), nil)

	collections, err := tm.reader.FetchCollections(context.Background(), testEndpoint)

	require.NoError(t, err)
	assert.Equal(t, []domain.Collection{
		{Name: "Wearables", URN: "urn:decentraland:matic:collections-v2:0x1"},
		{Name: "Emotes", URN: "urn:decentraland:matic:collections-v2:0x2"},
	}, collections)
}

func TestReader_FetchThirdParties(t *testing.T) {
	tm := setupReaderTest(t, subgraph.ReaderConfig{})
	defer tm.ctrl.Finish()

	tm.httpClient.EXPECT().
		PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
		Return([]byte(`{"data":{"thirdParties":[
			{"id":"urn:decentraland:matic:collections-thirdparty:acme","resolver":"https://acme.example.com","metadata":{"thirdParty":{"name":"Acme","description":"Acme wearables"}}},
			{"id":"urn:decentraland:matic:collections-thirdparty:bare","resolver":"https://bare.example.com","metadata":null}
		]}}`), nil)

	integrations, err := tm.reader.FetchThirdParties(context.Background(), testEndpoint)

	require.NoError(t, err)
	assert.Equal(t, []domain.ThirdPartyIntegration{
		{
			ID:          "urn:decentraland:matic:collections-thirdparty:acme",
			Name:        "Acme",
			Description: "Acme wearables",
			ResolverURL: "https://acme.example.com",
		},
		{
			ID:          "urn:decentraland:matic:collections-thirdparty:bare",
			ResolverURL: "https://bare.example.com",
		},
	}, integrations)
}

func TestReader_FetchThirdPartyResolver(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "registered",
			response: `{"data":{"thirdParties":[{"id":"tp","resolver":"https://tp.example.com"}]}}`,
			want:     "https://tp.example.com",
		},
		{
			name:     "not registered",
			response: `{"data":{"thirdParties":[]}}`,
			want:     "",
		},
		{
			name:     "ambiguous",
			response: `{"data":{"thirdParties":[{"id":"tp","resolver":"a"},{"id":"tp","resolver":"b"}]}}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupReaderTest(t, subgraph.ReaderConfig{})
			defer tm.ctrl.Finish()

			tm.httpClient.EXPECT().
				PostBytes(gomock.Any(), testSubgraphURL, gomock.Any(), gomock.Any()).
				Return([]byte(tt.response), nil)

			resolver, err := tm.reader.FetchThirdPartyResolver(context.Background(), testEndpoint, "tp")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resolver)
		})
	}
}
