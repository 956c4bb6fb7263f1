package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-resolver/internal/api/middleware"
	"github.com/feral-file/ff-ownership-resolver/internal/api/rest"
	"github.com/feral-file/ff-ownership-resolver/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-ownership-resolver/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
	"github.com/feral-file/ff-ownership-resolver/internal/mocks"
)

const testAPIKey = "test-api-key"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

// testHandlerMocks contains the mocks needed for testing the REST handlers
type testHandlerMocks struct {
	ctrl   *gomock.Controller
	client *mocks.MockOwnershipClient
	router *gin.Engine
}

func setupHandlerTest(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockOwnershipClient(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(client), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &testHandlerMocks{
		ctrl:   ctrl,
		client: client,
		router: router,
	}
}

// do sends a request through the router, authenticated unless auth is false
func (tm *testHandlerMocks) do(t *testing.T, method string, path string, body any, auth bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	w := tm.do(t, http.MethodGet, "/health", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCheckNamesOwnership(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	ts := time.UnixMilli(1709294400000).UTC()
	tm.client.EXPECT().
		OwnsNamesAtTimestamp(gomock.Any(), domain.OwnerAddress("0xabc0000000000000000000000000000000000abc"), []string{"alice", "bob"}, ts).
		Return(domain.OwnershipResult{Result: false, Failing: []domain.AssetIdentifier{"bob"}}, nil)

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/names", dto.OwnershipCheckRequest{
		Owner:     "0xabc0000000000000000000000000000000000abc",
		Assets:    []string{"alice", "bob"},
		Timestamp: 1709294400000,
	}, true)

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.OwnershipResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Result)
	assert.Equal(t, []domain.AssetIdentifier{"bob"}, result.Failing)
}

func TestCheckItemsOwnership(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().
		OwnsItemsAtTimestamp(gomock.Any(), domain.OwnerAddress("0xabc0000000000000000000000000000000000abc"), []string{"urn:decentraland:matic:collections-v2:0x1:0"}, gomock.Any()).
		Return(domain.OwnershipResult{Result: true}, nil)

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/items", dto.OwnershipCheckRequest{
		Owner:     "0xabc0000000000000000000000000000000000abc",
		Assets:    []string{"urn:decentraland:matic:collections-v2:0x1:0"},
		Timestamp: 1709294400000,
	}, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":true}`, w.Body.String())
}

func TestCheckOwnership_Validation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{
			name: "missing owner",
			body: dto.OwnershipCheckRequest{Assets: []string{"alice"}, Timestamp: 1},
		},
		{
			name: "missing timestamp",
			body: dto.OwnershipCheckRequest{Owner: "0xabc0000000000000000000000000000000000abc", Assets: []string{"alice"}},
		},
		{
			name: "malformed owner",
			body: dto.OwnershipCheckRequest{Owner: "not-an-address", Assets: []string{"alice"}, Timestamp: 1},
		},
		{
			name: "malformed body",
			body: "not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupHandlerTest(t)
			defer tm.ctrl.Finish()

			w := tm.do(t, http.MethodPost, "/api/v1/ownership/names", tt.body, true)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCheckOwnership_RequiresAuth(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/names", dto.OwnershipCheckRequest{
		Owner:     "0xabc0000000000000000000000000000000000abc",
		Assets:    []string{"alice"},
		Timestamp: 1709294400000,
	}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckOwnership_InternalErrorIsGeneric(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().
		OwnsNamesAtTimestamp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.OwnershipResult{}, domain.ErrInternal)

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/names", dto.OwnershipCheckRequest{
		Owner:     "0xabc0000000000000000000000000000000000abc",
		Assets:    []string{"alice"},
		Timestamp: 1709294400000,
	}, true)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apierrors.ErrCodeInternalError, apiErr.Code)
	assert.Empty(t, apiErr.Details)
}

func TestOwnedNames(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	queries := []domain.OwnershipQuery{{Owner: "0xabc0000000000000000000000000000000000abc", Assets: []domain.AssetIdentifier{"alice"}}}
	tm.client.EXPECT().OwnedNames(gomock.Any(), queries).Return(nil, nil)

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/names/batch", dto.BatchOwnershipRequest{Queries: queries}, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestOwnedItems(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	queries := []domain.OwnershipQuery{{Owner: "0xabc0000000000000000000000000000000000abc", Assets: []domain.AssetIdentifier{"urn:decentraland:matic:collections-v2:0x1:0"}}}
	tm.client.EXPECT().OwnedItems(gomock.Any(), queries).Return([]domain.OwnedAssets{
		{Owner: "0xabc0000000000000000000000000000000000abc", Assets: []domain.AssetIdentifier{"urn:decentraland:matic:collections-v2:0x1:0"}},
	}, nil)

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/items/batch", dto.BatchOwnershipRequest{Queries: queries}, true)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.BatchOwnershipResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 1)
}

func TestOwnedItems_EmptyQueries(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	w := tm.do(t, http.MethodPost, "/api/v1/ownership/items/batch", dto.BatchOwnershipRequest{}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnedNames_MalformedOwner(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	queries := []domain.OwnershipQuery{{Owner: "0x123", Assets: []domain.AssetIdentifier{"alice"}}}
	w := tm.do(t, http.MethodPost, "/api/v1/ownership/names/batch", dto.BatchOwnershipRequest{Queries: queries}, true)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "queries[0].owner")
}

func TestFindNameOwners(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().FindOwnersByName(gomock.Any(), []string{"alice"}).
		Return([]domain.NameOwner{{Name: "alice", Owner: "0xabc0000000000000000000000000000000000abc"}}, nil)

	w := tm.do(t, http.MethodPost, "/api/v1/names/owners", dto.NameOwnersRequest{Names: []string{"alice"}}, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"owners":[{"name":"alice","owner":"0xabc0000000000000000000000000000000000abc"}]}`, w.Body.String())
}

func TestListCollections(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().GetAllCollections(gomock.Any()).Return([]domain.Collection{}, nil)

	w := tm.do(t, http.MethodGet, "/api/v1/collections", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"collections":[]}`, w.Body.String())
}

func TestListThirdParties(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().GetThirdPartyIntegrations(gomock.Any()).Return([]domain.ThirdPartyIntegration{
		{ID: "acme", Name: "Acme", ResolverURL: "https://acme.example.com"},
	}, nil)

	w := tm.do(t, http.MethodGet, "/api/v1/third-parties", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"third_parties":[{"id":"acme","name":"Acme","resolver_url":"https://acme.example.com"}]}`, w.Body.String())
}

func TestGetThirdPartyResolver(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().FindThirdPartyResolver(gomock.Any(), "acme").Return("https://acme.example.com", nil)
	tm.client.EXPECT().FindThirdPartyResolver(gomock.Any(), "ghost").Return("", domain.ErrThirdPartyNotFound)

	w := tm.do(t, http.MethodGet, "/api/v1/third-parties/acme/resolver", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"acme","resolver_url":"https://acme.example.com"}`, w.Body.String())

	w = tm.do(t, http.MethodGet, "/api/v1/third-parties/ghost/resolver", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetThirdPartyResolver_NotConfigured(t *testing.T) {
	tm := setupHandlerTest(t)
	defer tm.ctrl.Finish()

	tm.client.EXPECT().FindThirdPartyResolver(gomock.Any(), "acme").Return("", domain.ErrSubgraphNotConfigured)

	w := tm.do(t, http.MethodGet, "/api/v1/third-parties/acme/resolver", nil, false)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
