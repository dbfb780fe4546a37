package routes

import (
	"net/http"

	v1 "github.com/catalog-admin/api/v1"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes mounts every public route on the engine
func SetupRoutes(router *gin.Engine, deps v1.Dependencies) {
	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-admin",
			"version": v1.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	v1.RegisterRoutes(api, deps)
}
