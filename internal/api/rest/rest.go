package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ownership-resolver/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Listings (public read access)
		v1.GET("/collections", handler.ListCollections)
		v1.GET("/third-parties", handler.ListThirdParties)
		v1.GET("/third-parties/:id/resolver", handler.GetThirdPartyResolver)

		// Ownership reads fan out to the indexers and require authentication
		owned := v1.Group("/ownership", middleware.Auth(authCfg))
		{
			owned.POST("/names", handler.CheckNamesOwnership)
			owned.POST("/items", handler.CheckItemsOwnership)
			owned.POST("/names/batch", handler.OwnedNames)
			owned.POST("/items/batch", handler.OwnedItems)
		}

		v1.POST("/names/owners", middleware.Auth(authCfg), handler.FindNameOwners)
	}
}
