package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/util"
)

const (
	RequestIDHeader     = "X-Request-ID"
	requestIDContextKey = "requestID"
)

// RequestID reuses a well-formed inbound X-Request-ID or mints a new one, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !util.IsValidRequestID(id) {
			id = util.GenerateRequestID()
		}

		c.Set(requestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, minting one if the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(requestIDContextKey); id != "" {
		return id
	}
	id := util.GenerateRequestID()
	c.Set(requestIDContextKey, id)
	return id
}
