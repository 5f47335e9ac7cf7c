package util

import (
	"regexp"

	"github.com/google/uuid"
)

const maxRequestIDLength = 128

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// GenerateRequestID returns a time-ordered identifier (UUIDv7: millisecond
// timestamp followed by random bits).
func GenerateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValidRequestID reports whether an inbound X-Request-ID can be reused as is.
func IsValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	return requestIDPattern.MatchString(id)
}
