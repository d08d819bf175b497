package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Z4rru/hangulmastery/internal/database"
	apierrors "github.com/Z4rru/hangulmastery/internal/errors"
)

// HealthHandler handles health check requests
func HealthHandler(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}

		version, _ := db.GetSchemaVersion()
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"schema_version": version,
		})
	}
}

// StatsHandler returns content totals and aggregate quiz activity
func StatsHandler(repo database.RepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repo.GetStatistics()
		if err != nil {
			_ = c.Error(err)
			respondError(c, apierrors.Internal("failed to get statistics"))
			return
		}
		respondOK(c, stats)
	}
}
