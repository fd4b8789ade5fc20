package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Health reports liveness, the record store's reachability and whether
// booking confirmations are being emailed.
func Health(store Pinger, notifications bool, service, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code, storeStatus := "healthy", http.StatusOK, "up"
		if err := store.HealthCheck(c.Request.Context()); err != nil {
			status, code, storeStatus = "degraded", http.StatusServiceUnavailable, err.Error()
		}

		c.JSON(code, gin.H{
			"status":        status,
			"timestamp":     time.Now().UTC(),
			"service":       service,
			"version":       version,
			"store":         storeStatus,
			"notifications": notifications,
		})
	}
}
