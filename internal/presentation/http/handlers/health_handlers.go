package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the lead store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers serves liveness and readiness probes
type HealthHandlers struct {
	store   Pinger
	logger  *logging.ChanneledLogger
	timeout time.Duration
}

// NewHealthHandlers creates health handlers
func NewHealthHandlers(store Pinger, logger *logging.ChanneledLogger) *HealthHandlers {
	return &HealthHandlers{store: store, logger: logger, timeout: 2 * time.Second}
}

// GetHealth handles GET /healthz - 200 when the lead store answers a ping
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Database().Warn("Health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
