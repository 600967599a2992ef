package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medscanhq/medscan/modules/auth"
	"github.com/medscanhq/medscan/pkg/cookie"
	"github.com/medscanhq/medscan/pkg/jwt"
)

func seedUser(t *testing.T, storage *memStorage) *auth.User {
	t.Helper()
	svc := newService(storage)
	user, err := svc.Register(context.Background(), auth.RegisterInput{
		Email:    "doc@hospital.org",
		Password: "s3cret",
		FullName: "Doc",
	})
	require.NoError(t, err)
	return user
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestNewStrategy(t *testing.T) {
	t.Parallel()

	cookies := cookie.New()
	storage := newMemStorage()

	withSecret, err := auth.NewStrategy("a-signing-secret", storage, cookies, true)
	require.NoError(t, err)
	assert.IsType(t, &auth.TokenStrategy{}, withSecret)

	withoutSecret, err := auth.NewStrategy("", storage, cookies, true)
	require.NoError(t, err)
	assert.IsType(t, &auth.EmailCookieStrategy{}, withoutSecret)
}

func TestTokenStrategy(t *testing.T) {
	t.Parallel()

	newStrategy := func(t *testing.T) (*auth.TokenStrategy, *memStorage, *auth.User) {
		t.Helper()
		storage := newMemStorage()
		user := seedUser(t, storage)
		tokens, err := jwt.NewFromString("test-secret")
		require.NoError(t, err)
		return auth.NewTokenStrategy(tokens, storage, cookie.New(), true), storage, user
	}

	t.Run("issue sets the token cookie attributes", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		w := httptest.NewRecorder()
		require.NoError(t, strategy.Issue(w, user))

		c := findCookie(t, w, auth.TokenCookieName)
		require.NotNil(t, c)
		assert.NotEmpty(t, c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
		assert.Equal(t, 604800, c.MaxAge)
	})

	t.Run("resolves from cookie", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		w := httptest.NewRecorder()
		require.NoError(t, strategy.Issue(w, user))

		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r.AddCookie(findCookie(t, w, auth.TokenCookieName))

		resolved, err := strategy.Resolve(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("resolves from bearer header", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		w := httptest.NewRecorder()
		require.NoError(t, strategy.Issue(w, user))
		token := findCookie(t, w, auth.TokenCookieName).Value

		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		resolved, err := strategy.Resolve(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("missing session", func(t *testing.T) {
		t.Parallel()
		strategy, _, _ := newStrategy(t)

		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		_, err := strategy.Resolve(context.Background(), r)
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("rejects token signed with another key", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		otherKey, err := jwt.NewFromString("another-secret")
		require.NoError(t, err)
		forged, err := otherKey.Generate(map[string]string{"id": user.ID, "email": user.Email})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r.Header.Set("Authorization", "Bearer "+forged)

		_, err = strategy.Resolve(context.Background(), r)
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		tokens, err := jwt.NewFromString("test-secret")
		require.NoError(t, err)
		expired, err := tokens.Generate(struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			jwt.StandardClaims
		}{
			ID:    user.ID,
			Email: user.Email,
			StandardClaims: jwt.StandardClaims{
				ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			},
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r.Header.Set("Authorization", "Bearer "+expired)

		_, err = strategy.Resolve(context.Background(), r)
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("valid session for deleted user", func(t *testing.T) {
		t.Parallel()
		strategy, storage, user := newStrategy(t)

		w := httptest.NewRecorder()
		require.NoError(t, strategy.Issue(w, user))
		storage.delete(user.ID)

		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		r.AddCookie(findCookie(t, w, auth.TokenCookieName))

		_, err := strategy.Resolve(context.Background(), r)
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("clear expires both cookies", func(t *testing.T) {
		t.Parallel()
		strategy, _, _ := newStrategy(t)

		w := httptest.NewRecorder()
		strategy.Clear(w)

		tokenCookie := findCookie(t, w, auth.TokenCookieName)
		emailCookie := findCookie(t, w, auth.EmailCookieName)
		require.NotNil(t, tokenCookie)
		require.NotNil(t, emailCookie)
		assert.Equal(t, -1, tokenCookie.MaxAge)
		assert.Equal(t, -1, emailCookie.MaxAge)
	})
}

func TestEmailCookieStrategy(t *testing.T) {
	t.Parallel()

	newStrategy := func(t *testing.T) (*auth.EmailCookieStrategy, *memStorage, *auth.User) {
		t.Helper()
		storage := newMemStorage()
		user := seedUser(t, storage)
		return auth.NewEmailCookieStrategy(storage, cookie.New(), false), storage, user
	}

	t.Run("issue sets a plain session cookie", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		w := httptest.NewRecorder()
		require.NoError(t, strategy.Issue(w, user))

		c := findCookie(t, w, auth.EmailCookieName)
		require.NotNil(t, c)
		assert.Equal(t, user.Email, c.Value)
		assert.False(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Zero(t, c.MaxAge)
	})

	t.Run("resolves from cookie", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		r.AddCookie(&http.Cookie{Name: auth.EmailCookieName, Value: user.Email})

		resolved, err := strategy.Resolve(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("resolves from header with normalization", func(t *testing.T) {
		t.Parallel()
		strategy, _, user := newStrategy(t)

		r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		r.Header.Set("X-User-Email", "Doc@Hospital.ORG")

		resolved, err := strategy.Resolve(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()
		strategy, _, _ := newStrategy(t)

		_, err := strategy.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/api/profile", nil))
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})

	t.Run("cookie for deleted user", func(t *testing.T) {
		t.Parallel()
		strategy, storage, user := newStrategy(t)
		storage.delete(user.ID)

		r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		r.AddCookie(&http.Cookie{Name: auth.EmailCookieName, Value: user.Email})

		_, err := strategy.Resolve(context.Background(), r)
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}
