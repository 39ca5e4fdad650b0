package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/database"
	"github.com/sapphire-cosmetics/storefront/models"
)

func newSessionFixture(t *testing.T) (*SessionService, *database.SessionRepository, *MockAuthenticator) {
	t.Helper()
	repo := database.NewSessionRepository(database.NewMemoryStore())
	auth := new(MockAuthenticator)
	return NewSessionService(repo, auth), repo, auth
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionLogin(t *testing.T) {
	ctx := context.Background()
	principal := models.Principal{ID: "u1", Name: "Priya", Email: "priya@example.com", Role: models.RoleUser}

	t.Run("Success", func(t *testing.T) {
		svc, repo, auth := newSessionFixture(t)
		auth.On("Login", ctx, "user", "priya@example.com", "secret").Return("tok-123", principal, nil).Once()

		got, err := svc.Login(ctx, "user", "priya@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, principal, got)
		assert.True(t, svc.IsAuthenticated())
		assert.Equal(t, "tok-123", svc.Token())

		// Session survives a restart.
		token, stored, ok, err := repo.LoadSession(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "tok-123", token)
		assert.Equal(t, principal, stored)
		auth.AssertExpectations(t)
	})

	t.Run("Admin Role Persisted", func(t *testing.T) {
		svc, _, auth := newSessionFixture(t)
		admin := models.Principal{ID: "a1", Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
		auth.On("Login", ctx, "admin", "admin@example.com", "secret").Return("tok-admin", admin, nil).Once()

		got, err := svc.Login(ctx, "admin", "admin@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
		assert.True(t, svc.IsAuthenticated())
	})

	t.Run("Failure Mutates Nothing", func(t *testing.T) {
		svc, repo, auth := newSessionFixture(t)
		auth.On("Login", ctx, "user", "priya@example.com", "wrong").
			Return("", models.Principal{}, &clients.StatusError{Code: 400, Message: "Invalid credentials"}).Once()

		_, err := svc.Login(ctx, "user", "priya@example.com", "wrong")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Invalid credentials", authErr.Message)
		assert.False(t, svc.IsAuthenticated())
		assert.Empty(t, svc.Token())

		_, _, ok, err := repo.LoadSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Generic Failure Message", func(t *testing.T) {
		svc, _, auth := newSessionFixture(t)
		auth.On("Login", ctx, "user", "priya@example.com", "x").
			Return("", models.Principal{}, &clients.RequestError{Op: "POST /auth/login", Err: context.DeadlineExceeded}).Once()

		_, err := svc.Login(ctx, "user", "priya@example.com", "x")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "Login failed", authErr.Message)
	})
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newSessionFixture(t)
	principal := models.Principal{ID: "u1", Email: "priya@example.com", Role: models.RoleUser}
	require.NoError(t, repo.SaveSession(ctx, "tok-restored", principal))

	require.NoError(t, svc.Restore(ctx))
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "tok-restored", svc.Token())

	got, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, principal, got)
}

func TestSessionLogout(t *testing.T) {
	ctx := context.Background()
	svc, repo, auth := newSessionFixture(t)
	principal := models.Principal{ID: "u1", Email: "priya@example.com", Role: models.RoleUser}
	auth.On("Login", ctx, "user", "priya@example.com", "secret").Return("tok-123", principal, nil).Once()
	_, err := svc.Login(ctx, "user", "priya@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, svc.Token())

	_, _, ok, err := repo.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Logging out twice is fine.
	require.NoError(t, svc.Logout(ctx))
}

func TestTokenExpiry(t *testing.T) {
	t.Run("Expired JWT", func(t *testing.T) {
		assert.True(t, tokenExpired(signedToken(t, time.Now().Add(-time.Hour))))
	})

	t.Run("Live JWT", func(t *testing.T) {
		assert.False(t, tokenExpired(signedToken(t, time.Now().Add(time.Hour))))
	})

	t.Run("Opaque Token Treated As Live", func(t *testing.T) {
		assert.False(t, tokenExpired("not-a-jwt"))
	})
}

func TestHandleCredentialRejection(t *testing.T) {
	ctx := context.Background()
	svc, _, auth := newSessionFixture(t)
	principal := models.Principal{ID: "u1", Email: "priya@example.com", Role: models.RoleUser}
	auth.On("Login", ctx, "user", "priya@example.com", "secret").Return("tok-123", principal, nil).Once()
	_, err := svc.Login(ctx, "user", "priya@example.com", "secret")
	require.NoError(t, err)

	svc.HandleCredentialRejection(ctx)
	assert.False(t, svc.IsAuthenticated())
}
