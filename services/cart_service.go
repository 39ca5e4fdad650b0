package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/sapphire-cosmetics/storefront/bus"
	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/models"
)

// CatalogSource lists the authoritative catalog state.
// Consumers define this interface, not the API client.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// CartStore is the slice of local persistence the engine needs.
type CartStore interface {
	LoadCart(ctx context.Context) ([]models.CartItem, error)
	SaveCart(ctx context.Context, items []models.CartItem) error
	ClearCart(ctx context.Context) error
	PutBuyNow(ctx context.Context, item models.CartItem) error
	TakeBuyNow(ctx context.Context) ([]models.CartItem, bool, error)
}

// Signaler broadcasts cart mutations to open views.
type Signaler interface {
	PublishCartUpdated(event bus.CartEvent) error
}

// CredentialRejectionHandler reacts to the API refusing the stored
// credential. The reaction is process-wide, whichever call hit the 401.
type CredentialRejectionHandler interface {
	HandleCredentialRejection(ctx context.Context)
}

// CartService keeps the locally persisted cart consistent with the
// remote catalog and owns all cart mutations.
type CartService struct {
	repo     CartStore
	catalog  CatalogSource
	signals  Signaler
	sessions CredentialRejectionHandler
	sfg      singleflight.Group // collapses overlapping reconciliations
}

func NewCartService(repo CartStore, catalog CatalogSource, signals Signaler, sessions CredentialRejectionHandler) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  catalog,
		signals:  signals,
		sessions: sessions,
	}
}

type reconcileResult struct {
	items   []models.CartItem
	notices []string
}

// Reconcile re-derives the cart from authoritative catalog data: items
// whose product no longer exists are dropped, snapshots (name, image,
// price, availability) are refreshed, and a notice is produced for every
// discrepancy. The reconciled cart is persisted unconditionally. If the
// catalog fetch fails the persisted cart is returned unmodified with no
// notices; stale data is preferred over data loss.
func (s *CartService) Reconcile(ctx context.Context) ([]models.CartItem, []string, error) {
	v, err, _ := s.sfg.Do("reconcile", func() (interface{}, error) {
		items, err := s.repo.LoadCart(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}

		products, err := s.catalog.ListProducts(ctx)
		if err != nil {
			// A rejected credential still clears the session even though
			// the cart failure itself is swallowed.
			if errors.Is(err, clients.ErrCredentialRejected) && s.sessions != nil {
				s.sessions.HandleCredentialRejection(ctx)
			}
			log.Printf("cart sync skipped, catalog fetch failed: %v", err)
			return reconcileResult{items: items}, nil
		}

		byID := make(map[string]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		updated := make([]models.CartItem, 0, len(items))
		var notices []string
		for _, item := range items {
			product, ok := byID[item.ProductID]
			if !ok {
				notices = append(notices, fmt.Sprintf("%s is no longer available and was removed from cart", item.Name))
				continue
			}

			if item.Price != product.Price {
				notices = append(notices, fmt.Sprintf("Price updated for %s: %s → %s",
					product.Name, formatPrice(item.Price), formatPrice(product.Price)))
			}

			item.Name = product.Name
			item.Image = product.Image
			item.Price = product.Price
			item.Available = product.Stock > 0
			updated = append(updated, item)
		}

		if err := s.repo.SaveCart(ctx, updated); err != nil {
			return nil, fmt.Errorf("failed to persist reconciled cart: %w", err)
		}
		return reconcileResult{items: updated, notices: notices}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	result := v.(reconcileResult)
	return result.items, result.notices, nil
}

// AddToCart appends a new line item, or sums quantities when the product
// is already in the cart. New items keep insertion order and go last.
func (s *CartService) AddToCart(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	items, err := s.repo.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  quantity,
			Available: product.Stock > 0,
		})
	}

	if err := s.repo.SaveCart(ctx, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	s.publish("add", product.ID)
	return nil
}

// ChangeQuantity adds delta to the item's quantity; a result of zero or
// less removes the line item entirely. An unknown product ID is a no-op.
// The mutation is persisted first, then a reconciliation runs.
func (s *CartService) ChangeQuantity(ctx context.Context, productID string, delta int) ([]models.CartItem, []string, error) {
	items, err := s.repo.LoadCart(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}

	changed := false
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		items[i].Quantity += delta
		if items[i].Quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		changed = true
		break
	}
	if !changed {
		return s.Reconcile(ctx)
	}

	if err := s.repo.SaveCart(ctx, items); err != nil {
		return nil, nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.publish("quantity", productID)
	return s.Reconcile(ctx)
}

// RemoveItem removes the line item unconditionally.
func (s *CartService) RemoveItem(ctx context.Context, productID string) ([]models.CartItem, []string, error) {
	items, err := s.repo.LoadCart(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}

	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.repo.SaveCart(ctx, kept); err != nil {
		return nil, nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.publish("remove", productID)
	return s.Reconcile(ctx)
}

// Clear drops the whole cart, e.g. after a successful order.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.repo.ClearCart(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.publish("clear", "")
	return nil
}

// BuyNow stores the single-use snapshot the checkout consumes instead of
// the cart. The cart itself is untouched.
func (s *CartService) BuyNow(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return s.repo.PutBuyNow(ctx, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
		Quantity:  quantity,
		Available: product.Stock > 0,
	})
}

// ValidateForCheckout rejects empty carts and carts holding unavailable
// items. It performs no mutation.
func (s *CartService) ValidateForCheckout(items []models.CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}

	var unavailable []string
	for _, item := range items {
		if !item.Available {
			unavailable = append(unavailable, item.Name)
		}
	}
	if len(unavailable) > 0 {
		return &UnavailableItemsError{Names: unavailable}
	}
	return nil
}

func (s *CartService) publish(action, productID string) {
	if s.signals == nil {
		return
	}
	if err := s.signals.PublishCartUpdated(bus.CartEvent{Action: action, ProductID: productID}); err != nil {
		log.Printf("cart signal publish failed: %v", err)
	}
}

// Total is the cart total Σ(price × quantity). Unavailable items still
// count; blocking checkout on them is the caller's concern.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the summed quantity across line items (the cart badge).
func ItemCount(items []models.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// formatPrice renders a rupee amount the way the storefront displays it:
// whole values without decimals.
func formatPrice(v float64) string {
	return "₹" + strconv.FormatFloat(v, 'f', -1, 64)
}
