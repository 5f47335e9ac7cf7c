package ierr

import (
	"fmt"
	"maps"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

const (
	CodeMissingPreviewParams = "MISSING_PREVIEW_PARAMS"
	CodePreviewSetupError    = "PREVIEW_SETUP_ERROR"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
)

type APIErrorParams struct {
	Message     string
	StatusCode  int
	Endpoint    string
	RequestID   string
	Severity    Severity
	UserMessage string
	Code        string
	Details     map[string]any
	Cause       error
}

// APIError is immutable once built; Details hands out copies.
type APIError struct {
	message     string
	statusCode  int
	endpoint    string
	requestID   string
	severity    Severity
	userMessage string
	code        string
	details     map[string]any
	cause       error
}

func NewAPIError(p APIErrorParams) *APIError {
	return &APIError{
		message:     p.Message,
		statusCode:  p.StatusCode,
		endpoint:    p.Endpoint,
		requestID:   p.RequestID,
		severity:    p.Severity,
		userMessage: p.UserMessage,
		code:        p.Code,
		details:     maps.Clone(p.Details),
		cause:       p.Cause,
	}
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s [%s %s]: %v", e.message, e.code, e.endpoint, e.cause)
	}
	return fmt.Sprintf("%s [%s %s]", e.message, e.code, e.endpoint)
}

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) Message() string     { return e.message }
func (e *APIError) StatusCode() int     { return e.statusCode }
func (e *APIError) Endpoint() string    { return e.endpoint }
func (e *APIError) RequestID() string   { return e.requestID }
func (e *APIError) Severity() Severity  { return e.severity }
func (e *APIError) UserMessage() string { return e.userMessage }
func (e *APIError) Code() string        { return e.code }

func (e *APIError) Details() map[string]any {
	return maps.Clone(e.details)
}
