package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ownership-resolver/internal/api/shared/constants"
	"github.com/feral-file/ff-ownership-resolver/internal/api/shared/dto"
	"github.com/feral-file/ff-ownership-resolver/internal/domain"
	"github.com/feral-file/ff-ownership-resolver/internal/ownership"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CheckNamesOwnership checks that an owner held every name at a timestamp
	// POST /api/v1/ownership/names
	CheckNamesOwnership(c *gin.Context)

	// CheckItemsOwnership checks that an owner held every item at a timestamp
	// POST /api/v1/ownership/items
	CheckItemsOwnership(c *gin.Context)

	// OwnedNames reads current name ownership for many owners
	// POST /api/v1/ownership/names/batch
	OwnedNames(c *gin.Context)

	// OwnedItems reads current item ownership for many owners
	// POST /api/v1/ownership/items/batch
	OwnedItems(c *gin.Context)

	// FindNameOwners returns the current owner of each name
	// POST /api/v1/names/owners
	FindNameOwners(c *gin.Context)

	// ListCollections lists approved collections on every chain
	// GET /api/v1/collections
	ListCollections(c *gin.Context)

	// ListThirdParties lists approved third-party integrations
	// GET /api/v1/third-parties
	ListThirdParties(c *gin.Context)

	// GetThirdPartyResolver returns the resolver URL of a third-party integration
	// GET /api/v1/third-parties/:id/resolver
	GetThirdPartyResolver(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	client ownership.Client
}

// NewHandler creates a new REST API handler on top of the ownership client
func NewHandler(client ownership.Client) Handler {
	return &handler{client: client}
}

// CheckNamesOwnership checks name ownership at a timestamp
func (h *handler) CheckNamesOwnership(c *gin.Context) {
	var req dto.OwnershipCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.client.OwnsNamesAtTimestamp(c.Request.Context(), domain.OwnerAddress(req.Owner), req.Assets, req.Time())
	if err != nil {
		respondError(c, err, "Failed to check names ownership")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckItemsOwnership checks item ownership at a timestamp
func (h *handler) CheckItemsOwnership(c *gin.Context) {
	var req dto.OwnershipCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.client.OwnsItemsAtTimestamp(c.Request.Context(), domain.OwnerAddress(req.Owner), req.Assets, req.Time())
	if err != nil {
		respondError(c, err, "Failed to check items ownership")
		return
	}

	c.JSON(http.StatusOK, result)
}

// OwnedNames reads current name ownership in batch
func (h *handler) OwnedNames(c *gin.Context) {
	var req dto.BatchOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	results, err := h.client.OwnedNames(c.Request.Context(), req.Queries)
	if err != nil {
		respondError(c, err, "Failed to read names ownership")
		return
	}

	c.JSON(http.StatusOK, dto.BatchOwnershipResponse{Results: nonNil(results)})
}

// OwnedItems reads current item ownership in batch
func (h *handler) OwnedItems(c *gin.Context) {
	var req dto.BatchOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	results, err := h.client.OwnedItems(c.Request.Context(), req.Queries)
	if err != nil {
		respondError(c, err, "Failed to read items ownership")
		return
	}

	c.JSON(http.StatusOK, dto.BatchOwnershipResponse{Results: nonNil(results)})
}

// FindNameOwners returns name owners
func (h *handler) FindNameOwners(c *gin.Context) {
	var req dto.NameOwnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	owners, err := h.client.FindOwnersByName(c.Request.Context(), req.Names)
	if err != nil {
		respondError(c, err, "Failed to find name owners")
		return
	}

	c.JSON(http.StatusOK, dto.NameOwnersResponse{Owners: nonNil(owners)})
}

// ListCollections lists approved collections
func (h *handler) ListCollections(c *gin.Context) {
	collections, err := h.client.GetAllCollections(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list collections")
		return
	}

	c.JSON(http.StatusOK, dto.CollectionsResponse{Collections: nonNil(collections)})
}

// ListThirdParties lists approved third-party integrations
func (h *handler) ListThirdParties(c *gin.Context) {
	integrations, err := h.client.GetThirdPartyIntegrations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list third parties")
		return
	}

	c.JSON(http.StatusOK, dto.ThirdPartiesResponse{ThirdParties: nonNil(integrations)})
}

// GetThirdPartyResolver returns the resolver URL of a third-party integration
func (h *handler) GetThirdPartyResolver(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Third party id is required")
		return
	}

	resolver, err := h.client.FindThirdPartyResolver(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Third party not found")
		return
	}

	c.JSON(http.StatusOK, dto.ThirdPartyResolverResponse{ID: id, ResolverURL: resolver})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.SERVICE_NAME,
	})
}

// nonNil renders empty results as [] instead of null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
