package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the storage backend is reachable and can
// retry loading it
type HealthChecker interface {
	Healthy() (bool, error)
	Reload(ctx context.Context) error
}

// HealthHandler answers liveness checks and the service banner
type HealthHandler struct {
	store   HealthChecker
	service string
	now     func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store HealthChecker, service string, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{store: store, service: service, now: now}
}

// Health reports service status and whether the database document is usable.
// A degraded store gets one reload attempt per check.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "Connected"
	if ok, _ := h.store.Healthy(); !ok {
		if err := h.store.Reload(c.Request.Context()); err != nil {
			slog.Warn("snapshot reload failed", "op", "handler.Health", "err", err)
			database = "Unavailable"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}

// Root lists the available endpoints
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.service + " is running",
		"endpoints": gin.H{
			"health":       "/api/health",
			"products":     "/api/products",
			"customers":    "/api/customers",
			"transactions": "/api/transactions",
			"reports":      "/api/reports",
		},
	})
}
