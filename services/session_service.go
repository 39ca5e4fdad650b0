package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/models"
)

// Authenticator is the slice of the remote API the session needs.
type Authenticator interface {
	Login(ctx context.Context, role, email, password string) (string, models.Principal, error)
	Register(ctx context.Context, role, name, email, password string) error
}

// SessionStore persists the session fields.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, principal models.Principal) error
	LoadSession(ctx context.Context) (string, models.Principal, bool, error)
	ClearSession(ctx context.Context) error
}

// SessionService holds the authenticated principal and its bearer
// credential. It is the single writer of the persisted session state;
// everything else reads through projections (Current, Token).
type SessionService struct {
	repo SessionStore
	auth Authenticator

	mu        sync.RWMutex
	token     string
	principal *models.Principal
}

func NewSessionService(repo SessionStore, auth Authenticator) *SessionService {
	return &SessionService{
		repo: repo,
		auth: auth,
	}
}

// Restore loads a previously persisted session, if any.
func (s *SessionService) Restore(ctx context.Context) error {
	token, principal, ok, err := s.repo.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.principal = &principal
	s.mu.Unlock()
	return nil
}

// Login authenticates against the role-specific endpoint and establishes
// the session. On failure no session state is mutated; the returned
// AuthError carries the API's message or a generic fallback.
func (s *SessionService) Login(ctx context.Context, role, email, password string) (models.Principal, error) {
	token, principal, err := s.auth.Login(ctx, role, email, password)
	if err != nil {
		return models.Principal{}, &AuthError{Message: loginFailureMessage(err)}
	}

	if err := s.repo.SaveSession(ctx, token, principal); err != nil {
		return models.Principal{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.principal = &principal
	s.mu.Unlock()
	return principal, nil
}

// Signup creates an account; it does not establish a session.
func (s *SessionService) Signup(ctx context.Context, role, name, email, password string) error {
	if err := s.auth.Register(ctx, role, name, email, password); err != nil {
		var status *clients.StatusError
		if errors.As(err, &status) && status.Message != "" {
			return &AuthError{Message: status.Message}
		}
		return &AuthError{Message: "Signup failed"}
	}
	return nil
}

// Logout clears credential and principal unconditionally; calling it on
// an already-empty session is fine.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.principal = nil
	s.mu.Unlock()

	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// HandleCredentialRejection is the process-wide reaction to the API
// refusing the stored credential: the session is cleared so every view
// falls back to the login flow.
func (s *SessionService) HandleCredentialRejection(ctx context.Context) {
	if err := s.Logout(ctx); err != nil {
		log.Printf("session clear after credential rejection failed: %v", err)
	}
}

// Current returns the authenticated principal, if any.
func (s *SessionService) Current() (models.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return models.Principal{}, false
	}
	return *s.principal, true
}

// IsAuthenticated reports whether a principal with a non-empty
// identifying field is stored and its token has not visibly expired.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil || (s.principal.ID == "" && s.principal.Email == "") {
		return false
	}
	return !tokenExpired(s.token)
}

// Token implements clients.TokenSource; it is the read-only projection
// the API client attaches to outbound calls.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func loginFailureMessage(err error) string {
	var status *clients.StatusError
	if errors.As(err, &status) && status.Message != "" {
		return status.Message
	}
	return "Login failed"
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the storefront does not hold the signing secret. Opaque or
// claim-less tokens are treated as live and left for the API to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(time.Now().Unix(), false)
}
