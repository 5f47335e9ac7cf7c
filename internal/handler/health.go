package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthHandler struct {
	cmsConfigured  bool
	rsvpConfigured bool
	logger         *zap.Logger
}

func NewHealthHandler(cmsConfigured, rsvpConfigured bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		cmsConfigured:  cmsConfigured,
		rsvpConfigured: rsvpConfigured,
		logger:         logger,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	cmsStatus := "configured"
	if !h.cmsConfigured {
		cmsStatus = "missing"
		h.logger.Warn("Health check: microCMS is not configured")
	}

	rsvpStatus := "configured"
	if !h.rsvpConfigured {
		rsvpStatus = "missing"
		h.logger.Warn("Health check: RSVP endpoint is not configured")
	}

	status, code := "ok", http.StatusOK
	switch {
	case !h.cmsConfigured && !h.rsvpConfigured:
		status, code = "unhealthy", http.StatusServiceUnavailable
	case !h.cmsConfigured || !h.rsvpConfigured:
		// The other endpoints keep working.
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status": status,
		"dependencies": gin.H{
			"cms":  cmsStatus,
			"rsvp": rsvpStatus,
		},
	})
}
