package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/dto"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/middleware"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/makkenzo/wedding-invitation-api/internal/service"
	"go.uber.org/zap"
)

const (
	msgRSVPNotConfigured = "GOOGLE_APPS_SCRIPT_URL is not configured"
	msgRSVPUpstreamError = "Failed to submit RSVP"
	msgRSVPBodyTooLarge  = "Request body too large"
	msgRSVPBodyUnread    = "Failed to read request body"
)

type RSVPHandler struct {
	service      *service.RSVPService
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewRSVPHandler(service *service.RSVPService, maxBodyBytes int64, logger *zap.Logger) *RSVPHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &RSVPHandler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.Named("RSVPHandler"),
	}
}

// Submit forwards the guest's JSON body unchanged and relays the upstream answer.
func (h *RSVPHandler) Submit(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", middleware.GetRequestID(c)))

	if !h.service.Configured() {
		log.Error("RSVP endpoint is not configured")
		c.JSON(http.StatusInternalServerError, dto.SimpleErrorResponse{Error: msgRSVPNotConfigured})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("RSVP body exceeds limit", zap.Int64("limit", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, dto.SimpleErrorResponse{Error: msgRSVPBodyTooLarge})
			return
		}
		log.Error("Failed to read RSVP body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.SimpleErrorResponse{Error: msgRSVPBodyUnread})
		return
	}

	result, err := h.service.Forward(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, ierr.ErrConfigMissing) {
			log.Error("RSVP endpoint is not configured", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.SimpleErrorResponse{Error: msgRSVPNotConfigured})
			return
		}
		log.Error("Failed to forward RSVP", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.SimpleErrorResponse{Error: msgRSVPUpstreamError})
		return
	}

	if !result.OK() {
		log.Warn("RSVP endpoint rejected submission", zap.Int("status", result.StatusCode))
		c.JSON(result.StatusCode, dto.SimpleErrorResponse{Error: result.Body.Value()})
		return
	}

	c.JSON(http.StatusOK, result.Body.Value())
}
