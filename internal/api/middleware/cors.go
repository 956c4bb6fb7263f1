package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS configures CORS for the read-only ownership API
func SetupCORS() gin.HandlerFunc {
	config := cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", REQUEST_ID_HEADER},
		ExposeHeaders:    []string{"Content-Length", REQUEST_ID_HEADER},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}
	return cors.New(config)
}
