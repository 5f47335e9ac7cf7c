package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/dto"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/middleware"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewMissingParams(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	tests := []struct {
		name         string
		query        string
		invitationID any
		draftKey     any
	}{
		{"no params", "", nil, nil},
		{"missing draftKey", "?invitationId=abc", "abc", nil},
		{"missing invitationId", "?draftKey=xyz", nil, "xyz"},
		{"empty draftKey", "?invitationId=abc&draftKey=", "abc", ""},
		{"missing wins over too long", "?draftKey=" + strings.Repeat("k", 300), nil, strings.Repeat("k", 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, "/api/preview"+tt.query, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Nil(t, cookieByName(rr, draftmode.DraftKeyCookieName))

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, ierr.CodeMissingPreviewParams, resp.Error.Code)
			assert.Equal(t, ierr.SeverityMedium, resp.Error.Severity)
			assert.Equal(t, http.StatusBadRequest, resp.Error.StatusCode)
			assert.NotEmpty(t, resp.Error.UserMessage)
			assert.NotEmpty(t, resp.RequestID)
			assert.Equal(t, rr.Header().Get(middleware.RequestIDHeader), resp.RequestID)
			assert.Equal(t, tt.invitationID, resp.Error.Details["invitationId"])
			assert.Equal(t, tt.draftKey, resp.Error.Details["draftKey"])
		})
	}
}

func TestPreviewRedirect(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=abc&draftKey=xyz", nil))

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/abc?draftKey=xyz", rr.Header().Get("Location"))

	cookie := cookieByName(rr, draftmode.DraftKeyCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "xyz", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Zero(t, cookie.MaxAge)

	var raw string
	for _, h := range rr.Header().Values("Set-Cookie") {
		if strings.HasPrefix(h, draftmode.DraftKeyCookieName+"=") {
			raw = h
		}
	}
	assert.Contains(t, raw, "__prv_draftKey=xyz")
	assert.Contains(t, raw, "HttpOnly")
	assert.Contains(t, raw, "SameSite=Lax")
	assert.NotContains(t, raw, "Expires")

	bypass := cookieByName(rr, draftmode.BypassCookieName)
	require.NotNil(t, bypass)
	assert.NoError(t, env.drafts.Verify(bypass.Value))
}

func TestPreviewRedirectIsRepeatable(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	first := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=abc&draftKey=xyz", nil))
	second := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=abc&draftKey=xyz", nil))

	assert.Equal(t, first.Header().Get("Location"), second.Header().Get("Location"))
	a := cookieByName(first, draftmode.DraftKeyCookieName)
	b := cookieByName(second, draftmode.DraftKeyCookieName)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Value, b.Value)
}

func TestPreviewSecureCookieInProduction(t *testing.T) {
	env := newTestEnv(t, envOptions{production: true, siteURL: "https://wedding.example.com/"})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=abc&draftKey=xyz", nil))

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://wedding.example.com/abc?draftKey=xyz", rr.Header().Get("Location"))
	cookie := cookieByName(rr, draftmode.DraftKeyCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestPreviewEscapesParams(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=a%2Fb&draftKey=x%26y", nil))

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/a%2Fb?draftKey=x%26y", rr.Header().Get("Location"))
}

func TestPreviewRejectsOversizedParams(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rr := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=abc&draftKey="+strings.Repeat("k", 300), nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, cookieByName(rr, draftmode.DraftKeyCookieName))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, ierr.CodeValidationError, resp.Error.Code)
	assert.Equal(t, ierr.SeverityMedium, resp.Error.Severity)

	fields, ok := resp.Error.Details["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "DraftKey", fields[0].(map[string]any)["field"])
}

// Cookie values are limited to printable ASCII without quotes, semicolons or
// backslashes. Anything else fails while the cookies are being built.
func TestPreviewSetupError(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	for _, draftKey := range []string{"x%3By", "%E4%B8%8B", "a%22b", "a%5Cb"} {
		t.Run(draftKey, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, "/api/preview?invitationId=abc&draftKey="+draftKey, nil))

			require.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Nil(t, cookieByName(rr, draftmode.DraftKeyCookieName))
			assert.Nil(t, cookieByName(rr, draftmode.BypassCookieName))

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, ierr.CodePreviewSetupError, resp.Error.Code)
			assert.Equal(t, ierr.SeverityHigh, resp.Error.Severity)
			assert.NotEmpty(t, resp.Error.UserMessage)
			assert.Empty(t, resp.Error.Details)
		})
	}
}

func TestExitPreview(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	tests := []struct {
		name     string
		query    string
		location string
	}{
		{"default", "", "/"},
		{"relative", "?redirect=/abc", "/abc"},
		{"protocol relative rejected", "?redirect=//evil.example.com", "/"},
		{"absolute rejected", "?redirect=https://evil.example.com", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, "/api/exit-preview"+tt.query, nil))

			require.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, tt.location, rr.Header().Get("Location"))
			for _, name := range []string{draftmode.BypassCookieName, draftmode.DraftKeyCookieName} {
				c := cookieByName(rr, name)
				require.NotNil(t, c, name)
				assert.Equal(t, -1, c.MaxAge)
			}
		})
	}
}

func TestNewPreviewHandlerRejectsRelativeSiteURL(t *testing.T) {
	drafts, err := draftmode.NewManager("s", 0, false)
	require.NoError(t, err)

	_, err = NewPreviewHandler(drafts, "wedding.example.com", nopLogger())
	assert.Error(t, err)
}
