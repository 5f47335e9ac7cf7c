package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/dto"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"go.uber.org/zap"
)

func Recovery(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("Recovery")
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logMsg := "Panic recovered"
		if err, ok := recovered.(string); ok {
			logMsg = fmt.Sprintf("%s: %s", logMsg, err)
		} else if err, ok := recovered.(error); ok {
			logMsg = fmt.Sprintf("%s: %v", logMsg, err)
		}
		requestID := GetRequestID(c)
		log.Error(logMsg, zap.String("request_id", requestID), zap.Stack("stack"))

		apiErr := ierr.NewAPIError(ierr.APIErrorParams{
			Message:     "An unexpected error occurred.",
			StatusCode:  http.StatusInternalServerError,
			Endpoint:    c.FullPath(),
			RequestID:   requestID,
			Severity:    ierr.SeverityCritical,
			UserMessage: "エラーが発生しました。時間をおいて再度お試しください。",
			Code:        ierr.CodeInternalError,
			Cause:       ierr.ErrInternalServer,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(apiErr, requestID))
	})
}
