package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/makkenzo/wedding-invitation-api/internal/config"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/makkenzo/wedding-invitation-api/internal/metrics"
	"go.uber.org/zap"
)

// RSVPService relays guest responses to the spreadsheet-backed Apps Script
// endpoint. The payload is forwarded verbatim; nothing is deduplicated.
type RSVPService struct {
	httpClient *http.Client
	scriptURL  string
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewRSVPService(cfg *config.RSVPConfig, httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) *RSVPService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &RSVPService{
		httpClient: httpClient,
		scriptURL:  cfg.ScriptURL,
		metrics:    m,
		logger:     logger.Named("RSVPService"),
	}
}

func (s *RSVPService) Configured() bool {
	return s.scriptURL != ""
}

func (s *RSVPService) Forward(ctx context.Context, payload []byte) (*UpstreamResult, error) {
	if !s.Configured() {
		s.metrics.ObserveUpstream(metrics.UpstreamRSVP, metrics.OutcomeUnavailable, 0)
		return nil, fmt.Errorf("%w: GOOGLE_APPS_SCRIPT_URL", ierr.ErrConfigMissing)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.scriptURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build RSVP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.metrics.ObserveUpstream(metrics.UpstreamRSVP, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("%w: post RSVP: %v", ierr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.metrics.ObserveUpstream(metrics.UpstreamRSVP, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("%w: read RSVP response: %v", ierr.ErrUpstream, err)
	}

	result := &UpstreamResult{
		StatusCode: resp.StatusCode,
		Body:       ParseUpstreamBody(raw),
	}

	outcome := metrics.OutcomeSuccess
	if !result.OK() {
		outcome = metrics.OutcomeHTTPError
		s.logger.Warn("RSVP endpoint returned an error status",
			zap.Int("status", resp.StatusCode),
			zap.Stringer("body_kind", result.Body.Kind()),
		)
	} else {
		s.logger.Info("RSVP forwarded", zap.Int("status", resp.StatusCode), zap.Stringer("body_kind", result.Body.Kind()))
	}
	s.metrics.ObserveUpstream(metrics.UpstreamRSVP, outcome, time.Since(start))

	return result, nil
}
