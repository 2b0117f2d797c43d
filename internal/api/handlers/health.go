package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-optimizer/internal/services"
)

type HealthHandler struct {
	cache *services.CacheService
}

func NewHealthHandler(cache *services.CacheService) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"service":   "fpl-optimizer",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.cache.Enabled() {
		ctx := c.Request.Context()
		if err := h.cache.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["cache"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["cache"] = "connected"
	} else {
		status["cache"] = "disabled"
	}

	c.JSON(http.StatusOK, status)
}
