package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"go.uber.org/zap"
)

const draftSessionContextKey = "draftSession"

func DraftSession(manager *draftmode.Manager, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("DraftSession")
	return func(c *gin.Context) {
		session := manager.SessionFromRequest(c.Request)
		if session.Enabled {
			log.Debug("Request is in draft mode", zap.String("path", c.Request.URL.Path))
		}
		c.Set(draftSessionContextKey, session)
		c.Next()
	}
}

// GetDraftSession returns the zero (published-only) session when none was set.
func GetDraftSession(c *gin.Context) draftmode.Session {
	value, exists := c.Get(draftSessionContextKey)
	if !exists {
		return draftmode.Session{}
	}
	session, ok := value.(draftmode.Session)
	if !ok {
		return draftmode.Session{}
	}
	return session
}
