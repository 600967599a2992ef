package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/medscanhq/medscan/pkg/cookie"
	"github.com/medscanhq/medscan/pkg/jwt"
	"github.com/medscanhq/medscan/pkg/sanitizer"
)

const (
	// TokenCookieName carries the signed session token in token mode.
	TokenCookieName = "token"
	// EmailCookieName carries the plain email in cookie mode.
	EmailCookieName = "user_email"

	// SessionTTL is the signed-token lifetime. Cookie-mode sessions are
	// browser-session scoped and have no server-side expiry.
	SessionTTL = 7 * 24 * time.Hour
)

// Strategy issues, resolves, and tears down sessions. The active strategy is
// chosen once at startup and never changes for the process lifetime.
type Strategy interface {
	// Issue writes the session cookie for user.
	Issue(w http.ResponseWriter, user *User) error
	// Resolve authenticates the request and loads the user. Missing, invalid,
	// and expired sessions all return ErrNotAuthenticated; a valid session
	// whose user no longer exists returns ErrUserNotFound.
	Resolve(ctx context.Context, r *http.Request) (*User, error)
	// Clear expires both session cookies, whichever mode wrote them.
	Clear(w http.ResponseWriter)
}

// NewStrategy selects the strategy from the signing secret: non-empty means
// token mode, empty means plain-cookie mode.
func NewStrategy(secret string, storage Storage, cookies *cookie.Manager, secureCookies bool) (Strategy, error) {
	if secret == "" {
		return NewEmailCookieStrategy(storage, cookies, secureCookies), nil
	}

	tokens, err := jwt.NewFromString(secret)
	if err != nil {
		return nil, err
	}
	return NewTokenStrategy(tokens, storage, cookies, secureCookies), nil
}

type sessionClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenStrategy signs a JWT carrying {id, email} and transports it in an
// httpOnly cookie, falling back to the Authorization header for non-browser
// clients.
type TokenStrategy struct {
	tokens  *jwt.Service
	storage Storage
	cookies *cookie.Manager
	secure  bool
}

// NewTokenStrategy builds the token-mode strategy.
func NewTokenStrategy(tokens *jwt.Service, storage Storage, cookies *cookie.Manager, secureCookies bool) *TokenStrategy {
	return &TokenStrategy{tokens: tokens, storage: storage, cookies: cookies, secure: secureCookies}
}

// Issue implements Strategy.
func (s *TokenStrategy) Issue(w http.ResponseWriter, user *User) error {
	now := time.Now()
	token, err := s.tokens.Generate(sessionClaims{
		ID:    user.ID,
		Email: user.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			ExpiresAt: now.Add(SessionTTL).Unix(),
			IssuedAt:  now.Unix(),
		},
	})
	if err != nil {
		return err
	}

	s.cookies.Set(w, TokenCookieName, token, tokenCookieOptions(s.secure)...)
	return nil
}

// Resolve implements Strategy.
func (s *TokenStrategy) Resolve(ctx context.Context, r *http.Request) (*User, error) {
	token, err := s.cookies.Get(r, TokenCookieName)
	if err != nil || token == "" {
		token = bearerToken(r)
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	var claims sessionClaims
	if err := s.tokens.Parse(token, &claims); err != nil {
		// Malformed, tampered, and expired tokens are indistinguishable to
		// the caller: all of them mean "no session".
		return nil, ErrNotAuthenticated
	}

	return s.storage.FindByID(ctx, claims.ID)
}

// Clear implements Strategy.
func (s *TokenStrategy) Clear(w http.ResponseWriter) {
	clearSessionCookies(s.cookies, w, s.secure)
}

// EmailCookieStrategy stores the plain email in a readable cookie, falling
// back to the X-User-Email header.
type EmailCookieStrategy struct {
	storage Storage
	cookies *cookie.Manager
	secure  bool
}

// NewEmailCookieStrategy builds the cookie-mode strategy.
func NewEmailCookieStrategy(storage Storage, cookies *cookie.Manager, secureCookies bool) *EmailCookieStrategy {
	return &EmailCookieStrategy{storage: storage, cookies: cookies, secure: secureCookies}
}

// Issue implements Strategy.
func (s *EmailCookieStrategy) Issue(w http.ResponseWriter, user *User) error {
	s.cookies.Set(w, EmailCookieName, user.Email, emailCookieOptions()...)
	return nil
}

// Resolve implements Strategy.
func (s *EmailCookieStrategy) Resolve(ctx context.Context, r *http.Request) (*User, error) {
	email, err := s.cookies.Get(r, EmailCookieName)
	if err != nil || email == "" {
		email = r.Header.Get("X-User-Email")
	}
	if email == "" {
		return nil, ErrNotAuthenticated
	}

	return s.storage.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
}

// Clear implements Strategy.
func (s *EmailCookieStrategy) Clear(w http.ResponseWriter) {
	clearSessionCookies(s.cookies, w, s.secure)
}

// tokenCookieOptions are the attributes of the signed-token cookie. SameSite
// None lets the SPA call the API cross-origin; browsers require Secure for
// that combination.
func tokenCookieOptions(secure bool) []cookie.Option {
	return []cookie.Option{
		cookie.WithMaxAge(int(SessionTTL.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(secure),
		cookie.WithSameSite(http.SameSiteNoneMode),
	}
}

// emailCookieOptions are the attributes of the plain-email cookie: readable
// by page scripts, session scoped.
func emailCookieOptions() []cookie.Option {
	return []cookie.Option{
		cookie.WithMaxAge(0),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
}

// clearSessionCookies expires both cookies regardless of the active mode, so
// switching modes between deployments cannot strand a stale session. Delete
// must repeat each cookie's original attributes or browsers ignore it.
func clearSessionCookies(cookies *cookie.Manager, w http.ResponseWriter, secure bool) {
	cookies.Delete(w, TokenCookieName,
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(secure),
		cookie.WithSameSite(http.SameSiteNoneMode),
	)
	cookies.Delete(w, EmailCookieName,
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
