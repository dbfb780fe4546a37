package v1

import (
	"net/http"

	"github.com/catalog-admin/database"
	"github.com/catalog-admin/logging"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is stamped at build time with -ldflags "-X github.com/catalog-admin/api/v1.Version=..."
var Version = "1.0.0"

// HealthCheck handles the health check endpoint; it answers 503 when the database is unreachable
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			logging.Err(err).Msg("health check: database unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"service": "catalog-admin",
				"version": Version,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-admin",
			"version": Version,
		})
	}
}
