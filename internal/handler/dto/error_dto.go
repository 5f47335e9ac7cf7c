package dto

import (
	"net/http"

	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
)

type ErrorResponse struct {
	Success   bool           `json:"success"`
	Error     PublicAPIError `json:"error"`
	RequestID string         `json:"requestId"`
}

type PublicAPIError struct {
	Message     string         `json:"message"`
	StatusCode  int            `json:"statusCode"`
	Endpoint    string         `json:"endpoint"`
	Severity    ierr.Severity  `json:"severity"`
	UserMessage string         `json:"userMessage"`
	Code        string         `json:"code"`
	Details     map[string]any `json:"details,omitempty"`
}

// SimpleErrorResponse is the bare shape used by the content and RSVP endpoints.
type SimpleErrorResponse struct {
	Error any `json:"error"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse projects an APIError onto the wire. Details are dropped for
// server-side failures and for HIGH/CRITICAL severities.
func NewErrorResponse(apiErr *ierr.APIError, requestID string) ErrorResponse {
	public := PublicAPIError{
		Message:     apiErr.Message(),
		StatusCode:  apiErr.StatusCode(),
		Endpoint:    apiErr.Endpoint(),
		Severity:    apiErr.Severity(),
		UserMessage: apiErr.UserMessage(),
		Code:        apiErr.Code(),
	}
	if exposeDetails(apiErr) {
		public.Details = apiErr.Details()
	}

	if requestID == "" {
		requestID = apiErr.RequestID()
	}

	return ErrorResponse{
		Success:   false,
		Error:     public,
		RequestID: requestID,
	}
}

func exposeDetails(apiErr *ierr.APIError) bool {
	if apiErr.StatusCode() >= http.StatusInternalServerError {
		return false
	}
	switch apiErr.Severity() {
	case ierr.SeverityHigh, ierr.SeverityCritical:
		return false
	}
	return true
}
