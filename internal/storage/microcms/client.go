package microcms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/makkenzo/wedding-invitation-api/internal/config"
	"github.com/makkenzo/wedding-invitation-api/internal/domain/invitation"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/makkenzo/wedding-invitation-api/internal/metrics"
	"go.uber.org/zap"
)

const (
	apiKeyHeader    = "X-MICROCMS-API-KEY"
	maxErrorBodyLog = 512
)

// Client reads invitation content from the microCMS content API.
type Client struct {
	httpClient         *http.Client
	baseURL            string
	apiKey             string
	dearBlockEndpoint  string
	invitationEndpoint string
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

var _ invitation.ContentRepository = (*Client)(nil)

func NewClient(cfg *config.CMSConfig, httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" && cfg.ServiceDomain != "" {
		baseURL = fmt.Sprintf("https://%s.microcms.io", cfg.ServiceDomain)
	}

	return &Client{
		httpClient:         httpClient,
		baseURL:            baseURL,
		apiKey:             cfg.APIKey,
		dearBlockEndpoint:  cfg.DearBlockEndpoint,
		invitationEndpoint: cfg.InvitationEndpoint,
		metrics:            m,
		logger:             logger.Named("MicroCMSClient"),
	}
}

func (c *Client) FetchDearBlock(ctx context.Context, invitationID, draftKey string) (*invitation.DearBlock, error) {
	var block invitation.DearBlock
	raw, err := c.getContent(ctx, c.dearBlockEndpoint, invitationID, draftKey, &block)
	if err != nil || raw == nil {
		return nil, err
	}
	block.Raw = raw
	return &block, nil
}

func (c *Client) FetchInvitation(ctx context.Context, invitationID, draftKey string) (*invitation.Invitation, error) {
	var inv invitation.Invitation
	raw, err := c.getContent(ctx, c.invitationEndpoint, invitationID, draftKey, &inv)
	if err != nil || raw == nil {
		return nil, err
	}
	inv.Raw = raw
	return &inv, nil
}

// getContent decodes the record into out and returns its raw bytes. A nil
// slice with a nil error means the record does not exist.
func (c *Client) getContent(ctx context.Context, endpoint, contentID, draftKey string, out any) (json.RawMessage, error) {
	if c.baseURL == "" || c.apiKey == "" {
		c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeUnavailable, 0)
		return nil, fmt.Errorf("%w: microCMS service domain or API key", ierr.ErrConfigMissing)
	}

	reqURL := fmt.Sprintf("%s/api/v1/%s/%s", c.baseURL, url.PathEscape(endpoint), url.PathEscape(contentID))
	if draftKey != "" {
		reqURL += "?" + url.Values{"draftKey": []string{draftKey}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build microCMS request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	log := c.logger.With(zap.String("endpoint", endpoint), zap.String("content_id", contentID), zap.Bool("draft", draftKey != ""))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("%w: microCMS %s: %v", ierr.ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeNotFound, time.Since(start))
		log.Debug("Content not found in microCMS")
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeHTTPError, time.Since(start))
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLog))
		log.Warn("microCMS returned an error status", zap.Int("status", resp.StatusCode), zap.ByteString("body", snippet))
		return nil, fmt.Errorf("%w: microCMS %s returned status %d", ierr.ErrUpstreamResponse, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("%w: read microCMS %s: %v", ierr.ErrUpstream, endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeHTTPError, time.Since(start))
		return nil, fmt.Errorf("%w: decode microCMS %s: %v", ierr.ErrUpstreamResponse, endpoint, err)
	}

	c.metrics.ObserveUpstream(metrics.UpstreamCMS, metrics.OutcomeSuccess, time.Since(start))
	log.Debug("Fetched content from microCMS")
	return json.RawMessage(body), nil
}
