// Package draftmode tracks whether a visitor is previewing unpublished CMS
// content. The flag lives in a signed bypass cookie; the CMS draft key the
// editor opened the preview with lives in its own cookie.
package draftmode

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
)

const (
	BypassCookieName   = "__prerender_bypass"
	DraftKeyCookieName = "__prv_draftKey"

	tokenIssuer  = "wedding-invitation-api"
	tokenSubject = "draft-mode"
)

type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewManager builds a Manager. With an empty secret a random one is generated,
// so draft sessions do not survive a restart.
func NewManager(secret string, ttl time.Duration, secure bool) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate draft mode secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Manager{
		secret: key,
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}, nil
}

// BypassCookie returns a freshly signed cookie that turns draft mode on.
func (m *Manager) BypassCookie() (*http.Cookie, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign draft mode token: %w", err)
	}

	return m.sessionCookie(BypassCookieName, signed)
}

// DraftKeyCookie returns the session cookie carrying the CMS draft key.
func (m *Manager) DraftKeyCookie(draftKey string) (*http.Cookie, error) {
	return m.sessionCookie(DraftKeyCookieName, draftKey)
}

// ExpiredCookies returns cookies that clear both the bypass flag and the draft key.
func (m *Manager) ExpiredCookies() []*http.Cookie {
	names := []string{BypassCookieName, DraftKeyCookieName}
	cookies := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return cookies
}

func (m *Manager) sessionCookie(name, value string) (*http.Cookie, error) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if err := cookie.Valid(); err != nil {
		return nil, fmt.Errorf("invalid %s cookie: %w", name, err)
	}
	return cookie, nil
}

// Verify checks a bypass token.
func (m *Manager) Verify(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(tokenSubject),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ierr.ErrInvalidDraftToken, err)
	}
	if !parsed.Valid {
		return ierr.ErrInvalidDraftToken
	}
	return nil
}

// SessionFromRequest derives the per-request draft session from cookies.
func (m *Manager) SessionFromRequest(r *http.Request) Session {
	var s Session

	if c, err := r.Cookie(BypassCookieName); err == nil && c.Value != "" {
		s.Enabled = m.Verify(c.Value) == nil
	}
	if c, err := r.Cookie(DraftKeyCookieName); err == nil {
		s.CookieDraftKey = c.Value
	}

	return s
}
