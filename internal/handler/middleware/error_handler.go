package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/dto"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware shapes the last error attached with c.Error into an
// ErrorResponse envelope.
func ErrorHandlerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("ErrorHandler")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := GetRequestID(c)

		var apiErr *ierr.APIError
		if !errors.As(err, &apiErr) {
			apiErr = toAPIError(err, c.FullPath(), requestID)
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("code", apiErr.Code()),
			zap.Int("status", apiErr.StatusCode()),
			zap.String("severity", string(apiErr.Severity())),
			zap.Error(err),
		}
		switch apiErr.Severity() {
		case ierr.SeverityLow, ierr.SeverityMedium:
			log.Warn("Request failed", fields...)
		default:
			log.Error("Request failed", fields...)
		}

		c.AbortWithStatusJSON(apiErr.StatusCode(), dto.NewErrorResponse(apiErr, requestID))
	}
}

func toAPIError(err error, endpoint, requestID string) *ierr.APIError {
	p := ierr.APIErrorParams{
		Message:     "An unexpected error occurred.",
		StatusCode:  http.StatusInternalServerError,
		Endpoint:    endpoint,
		RequestID:   requestID,
		Severity:    ierr.SeverityHigh,
		UserMessage: "エラーが発生しました。時間をおいて再度お試しください。",
		Code:        ierr.CodeInternalError,
		Cause:       err,
	}

	var ve validator.ValidationErrors

	if errors.As(err, &ve) {
		p.StatusCode = http.StatusBadRequest
		p.Severity = ierr.SeverityMedium
		p.Code = ierr.CodeValidationError
		p.Message = "Input validation failed."
		p.UserMessage = "入力内容をご確認ください。"
		p.Details = map[string]any{"fields": buildValidationErrors(ve)}
		return ierr.NewAPIError(p)
	}

	if errors.Is(err, ierr.ErrNotFound) {
		p.StatusCode = http.StatusNotFound
		p.Severity = ierr.SeverityLow
		p.Code = ierr.CodeNotFound
		p.Message = "The requested resource was not found."
		p.UserMessage = "お探しのページが見つかりませんでした。"
	}

	return ierr.NewAPIError(p)
}

func buildValidationErrors(ve validator.ValidationErrors) []dto.FieldError {
	details := make([]dto.FieldError, len(ve))
	for i, fe := range ve {
		details[i] = dto.FieldError{
			Field:   fe.Field(),
			Message: getValidationErrorMsg(fe),
		}
	}
	return details
}

func getValidationErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fe.Field())
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field '%s' failed validation on the '%s' tag", fe.Field(), fe.Tag())
	}
}
