package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sapphire-cosmetics/storefront/models"
)

// CartRepository persists the cart and the transient buy-now snapshot in
// the local state store.
type CartRepository struct {
	store Store
}

func NewCartRepository(store Store) *CartRepository {
	return &CartRepository{store: store}
}

// LoadCart returns the persisted cart items. A missing key is an empty cart.
func (r *CartRepository) LoadCart(ctx context.Context) ([]models.CartItem, error) {
	data, err := r.store.Get(ctx, KeyCart)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart.Items, nil
}

func (r *CartRepository) SaveCart(ctx context.Context, items []models.CartItem) error {
	cart := models.Cart{
		Items:     items,
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return r.store.Set(ctx, KeyCart, data)
}

func (r *CartRepository) ClearCart(ctx context.Context) error {
	return r.store.Delete(ctx, KeyCart)
}

// PutBuyNow stores the single-use buy-now snapshot. It is kept as a
// one-element item list, matching the cart shape the checkout consumes.
func (r *CartRepository) PutBuyNow(ctx context.Context, item models.CartItem) error {
	data, err := json.Marshal([]models.CartItem{item})
	if err != nil {
		return fmt.Errorf("failed to encode buy-now item: %w", err)
	}
	return r.store.Set(ctx, KeyBuyNow, data)
}

// TakeBuyNow consumes the buy-now snapshot: it is removed as soon as it
// is read, so a second call finds nothing.
func (r *CartRepository) TakeBuyNow(ctx context.Context) ([]models.CartItem, bool, error) {
	data, err := r.store.Get(ctx, KeyBuyNow)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode buy-now item: %w", err)
	}
	if err := r.store.Delete(ctx, KeyBuyNow); err != nil {
		return nil, false, err
	}
	return items, true, nil
}
