package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sapphire-cosmetics/storefront/models"
)

// SessionRepository persists the session fields (token, principal, role).
// The session service is the only writer.
type SessionRepository struct {
	store Store
}

func NewSessionRepository(store Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) SaveSession(ctx context.Context, token string, principal models.Principal) error {
	data, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("failed to encode principal: %w", err)
	}
	if err := r.store.Set(ctx, KeyToken, []byte(token)); err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyUser, data); err != nil {
		return err
	}
	return r.store.Set(ctx, KeyRole, []byte(principal.Role))
}

// LoadSession returns the persisted session, if any.
func (r *SessionRepository) LoadSession(ctx context.Context) (string, models.Principal, bool, error) {
	token, err := r.store.Get(ctx, KeyToken)
	if errors.Is(err, ErrKeyNotFound) {
		return "", models.Principal{}, false, nil
	}
	if err != nil {
		return "", models.Principal{}, false, err
	}

	data, err := r.store.Get(ctx, KeyUser)
	if errors.Is(err, ErrKeyNotFound) {
		return "", models.Principal{}, false, nil
	}
	if err != nil {
		return "", models.Principal{}, false, err
	}

	var principal models.Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		return "", models.Principal{}, false, fmt.Errorf("failed to decode principal: %w", err)
	}
	return string(token), principal, true, nil
}

// ClearSession removes every session key. Missing keys are not an error.
func (r *SessionRepository) ClearSession(ctx context.Context) error {
	for _, key := range []string{KeyToken, KeyUser, KeyRole} {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
