package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the ops routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Probes (no version prefix)
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/readyz", handler.Readiness)
	router.GET("/status", handler.Status)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Subscription registry (read only)
		v1.GET("/subscriptions/:kind", handler.ListSubscriptions)
		v1.GET("/subscriptions/:kind/:address", handler.GetSubscription)
	}
}
