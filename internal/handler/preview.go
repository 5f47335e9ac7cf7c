package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/dto"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/middleware"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"go.uber.org/zap"
)

const (
	previewEndpoint = "/api/preview"

	missingPreviewParamsUserMessage = "プレビューに必要なパラメータが不足しています。CMSのプレビューボタンから開き直してください。"
	previewSetupUserMessage         = "プレビューの準備中にエラーが発生しました。時間をおいて再度お試しください。"
)

type PreviewHandler struct {
	drafts  *draftmode.Manager
	siteURL *url.URL
	logger  *zap.Logger
}

// NewPreviewHandler builds the handler. An empty siteURL keeps redirects
// site-relative.
func NewPreviewHandler(drafts *draftmode.Manager, siteURL string, logger *zap.Logger) (*PreviewHandler, error) {
	h := &PreviewHandler{
		drafts: drafts,
		logger: logger.Named("PreviewHandler"),
	}

	if siteURL != "" {
		u, err := url.Parse(strings.TrimRight(siteURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("invalid site URL %q: %w", siteURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("site URL %q must be absolute", siteURL)
		}
		h.siteURL = u
	}

	return h, nil
}

// Preview turns on draft mode and sends the editor to the invitation page.
func (h *PreviewHandler) Preview(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	var q dto.PreviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		if !isMissingParam(err) {
			h.logger.Warn("Preview parameters failed validation", zap.String("request_id", requestID), zap.Error(err))
			_ = c.Error(err)
			c.Abort()
			return
		}

		h.logger.Warn("Preview requested without required parameters",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		_ = c.Error(ierr.NewAPIError(ierr.APIErrorParams{
			Message:     "invitationId and draftKey are required",
			StatusCode:  http.StatusBadRequest,
			Endpoint:    previewEndpoint,
			RequestID:   requestID,
			Severity:    ierr.SeverityMedium,
			UserMessage: missingPreviewParamsUserMessage,
			Code:        ierr.CodeMissingPreviewParams,
			Details: map[string]any{
				"invitationId": rawQueryValue(c, "invitationId"),
				"draftKey":     rawQueryValue(c, "draftKey"),
			},
			Cause: err,
		}))
		c.Abort()
		return
	}

	target, cookies, err := h.prepareRedirect(q)
	if err != nil {
		h.logger.Error("Failed to set up preview",
			zap.String("request_id", requestID),
			zap.String("invitation_id", q.InvitationID),
			zap.Error(err),
		)
		_ = c.Error(ierr.NewAPIError(ierr.APIErrorParams{
			Message:     "failed to set up preview",
			StatusCode:  http.StatusInternalServerError,
			Endpoint:    previewEndpoint,
			RequestID:   requestID,
			Severity:    ierr.SeverityHigh,
			UserMessage: previewSetupUserMessage,
			Code:        ierr.CodePreviewSetupError,
			Details:     map[string]any{"error": err.Error()},
			Cause:       err,
		}))
		c.Abort()
		return
	}

	for _, cookie := range cookies {
		http.SetCookie(c.Writer, cookie)
	}

	h.logger.Info("Draft mode enabled for preview",
		zap.String("request_id", requestID),
		zap.String("invitation_id", q.InvitationID),
	)
	c.Redirect(http.StatusFound, target)
}

// prepareRedirect builds everything before writing anything, so a failure
// leaves the response untouched.
func (h *PreviewHandler) prepareRedirect(q dto.PreviewQuery) (string, []*http.Cookie, error) {
	target := h.absolute("/" + url.PathEscape(q.InvitationID) + "?" + url.Values{"draftKey": []string{q.DraftKey}}.Encode())

	bypass, err := h.drafts.BypassCookie()
	if err != nil {
		return "", nil, err
	}
	draftKey, err := h.drafts.DraftKeyCookie(q.DraftKey)
	if err != nil {
		return "", nil, err
	}

	return target, []*http.Cookie{bypass, draftKey}, nil
}

// ExitPreview turns draft mode off and returns to a site-relative page.
func (h *PreviewHandler) ExitPreview(c *gin.Context) {
	var q dto.ExitPreviewQuery
	_ = c.ShouldBindQuery(&q)

	for _, cookie := range h.drafts.ExpiredCookies() {
		http.SetCookie(c.Writer, cookie)
	}

	target := "/"
	if isSiteRelative(q.Redirect) {
		target = q.Redirect
	}

	h.logger.Info("Draft mode disabled", zap.String("request_id", middleware.GetRequestID(c)))
	c.Redirect(http.StatusFound, h.absolute(target))
}

func (h *PreviewHandler) absolute(pathAndQuery string) string {
	if h.siteURL == nil {
		return pathAndQuery
	}
	return h.siteURL.String() + pathAndQuery
}

func isSiteRelative(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}

// isMissingParam reports whether binding failed because a required parameter
// was absent or empty, as opposed to a present but malformed one.
func isMissingParam(err error) bool {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

// rawQueryValue returns nil for an absent parameter so details serialize it as null.
func rawQueryValue(c *gin.Context, key string) any {
	if v, ok := c.GetQuery(key); ok {
		return v
	}
	return nil
}
