package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/dto"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/middleware"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/makkenzo/wedding-invitation-api/internal/service"
	"go.uber.org/zap"
)

const (
	msgInvitationIDRequired = "invitationId is required"
	msgDearBlockNotFound    = "Dear block data not found"
	msgInvitationNotFound   = "Invitation data not found"
	msgInternalServerError  = "Internal server error"
)

// ContentHandler proxies CMS content to the front-end. It answers with the
// bare {"error": "..."} shape existing clients expect.
type ContentHandler struct {
	service *service.ContentService
	logger  *zap.Logger
}

func NewContentHandler(service *service.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.Named("ContentHandler"),
	}
}

func (h *ContentHandler) DearBlock(c *gin.Context) {
	h.serve(c, msgDearBlockNotFound, func(ctx context.Context, q dto.ContentQuery, s draftmode.Session) (any, error) {
		return h.service.GetDearBlock(ctx, q.InvitationID, q.DraftKey, s)
	})
}

func (h *ContentHandler) Invitation(c *gin.Context) {
	h.serve(c, msgInvitationNotFound, func(ctx context.Context, q dto.ContentQuery, s draftmode.Session) (any, error) {
		return h.service.GetInvitation(ctx, q.InvitationID, q.DraftKey, s)
	})
}

type contentFetcher func(ctx context.Context, q dto.ContentQuery, s draftmode.Session) (any, error)

func (h *ContentHandler) serve(c *gin.Context, notFoundMsg string, fetch contentFetcher) {
	requestID := middleware.GetRequestID(c)

	var q dto.ContentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Debug("Content requested without invitationId", zap.String("path", c.FullPath()), zap.String("request_id", requestID))
		c.JSON(http.StatusBadRequest, dto.SimpleErrorResponse{Error: msgInvitationIDRequired})
		return
	}

	log := h.logger.With(
		zap.String("path", c.FullPath()),
		zap.String("invitation_id", q.InvitationID),
		zap.String("request_id", requestID),
	)

	content, err := fetch(c.Request.Context(), q, middleware.GetDraftSession(c))
	if err != nil {
		if errors.Is(err, ierr.ErrNotFound) {
			log.Info("Content not found")
			c.JSON(http.StatusNotFound, dto.SimpleErrorResponse{Error: notFoundMsg})
			return
		}

		log.Error("Failed to fetch content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.SimpleErrorResponse{Error: msgInternalServerError})
		return
	}

	c.JSON(http.StatusOK, content)
}
