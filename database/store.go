package database

import (
	"context"
	"errors"
)

// Persisted state keys. These mirror the storefront's local storage
// layout: the cart, the session fields and the transient buy-now snapshot.
const (
	KeyCart   = "cart"
	KeyToken  = "credentialToken"
	KeyUser   = "principal"
	KeyRole   = "role"
	KeyBuyNow = "buyNowItem"
)

// ErrKeyNotFound is returned when a key has no persisted value.
var ErrKeyNotFound = errors.New("key not found")

// Store is the local key-value persistence the storefront state lives in.
// Consumers define this interface, not the backing implementation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
