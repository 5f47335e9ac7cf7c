package ierr

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrInternalServer = errors.New("internal server error")

	ErrConfigMissing    = errors.New("required configuration is missing")
	ErrUpstream         = errors.New("upstream request failed")
	ErrUpstreamResponse = errors.New("upstream returned an unexpected response")

	ErrInvalidDraftToken = errors.New("invalid or expired draft mode token")
)
