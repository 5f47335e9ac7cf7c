package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/config"
	"github.com/makkenzo/wedding-invitation-api/internal/domain/invitation"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/metrics"
	"github.com/makkenzo/wedding-invitation-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubContentRepo struct {
	block    *invitation.DearBlock
	inv      *invitation.Invitation
	err      error
	gotDraft string
	calls    int
}

func (s *stubContentRepo) FetchDearBlock(_ context.Context, _ string, draftKey string) (*invitation.DearBlock, error) {
	s.calls++
	s.gotDraft = draftKey
	return s.block, s.err
}

func (s *stubContentRepo) FetchInvitation(_ context.Context, _ string, draftKey string) (*invitation.Invitation, error) {
	s.calls++
	s.gotDraft = draftKey
	return s.inv, s.err
}

type testEnv struct {
	router   *gin.Engine
	drafts   *draftmode.Manager
	repo     *stubContentRepo
	registry *prometheus.Registry
}

type envOptions struct {
	production bool
	siteURL    string
	scriptURL  string
	maxBody    int64
	cmsMissing bool
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	drafts, err := draftmode.NewManager("test-secret", time.Hour, opts.production)
	require.NoError(t, err)

	preview, err := NewPreviewHandler(drafts, opts.siteURL, logger)
	require.NoError(t, err)

	repo := &stubContentRepo{}
	rsvp := service.NewRSVPService(&config.RSVPConfig{ScriptURL: opts.scriptURL, Timeout: time.Second}, nil, nil, logger)
	registry := prometheus.NewRegistry()

	router := NewRouter(RouterDeps{
		Logger:  logger,
		Metrics: metrics.New(registry),
		Drafts:  drafts,
		Health:  NewHealthHandler(!opts.cmsMissing, rsvp.Configured(), logger),
		Preview: preview,
		Content: NewContentHandler(service.NewContentService(repo, logger), logger),
		RSVP:    NewRSVPHandler(rsvp, opts.maxBody, logger),
	})

	return &testEnv{router: router, drafts: drafts, repo: repo, registry: registry}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
