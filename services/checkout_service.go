package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sapphire-cosmetics/storefront/models"
)

// OrderPlacer posts orders to the remote API.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order models.OrderRequest) (models.Order, error)
}

// CheckoutService owns the ephemeral pending order: the item snapshot
// captured when checkout begins, alive only until the order is placed or
// the flow is abandoned.
type CheckoutService struct {
	carts  *CartService
	orders OrderPlacer

	mu      sync.Mutex
	pending *models.PendingOrder
}

func NewCheckoutService(carts *CartService, orders OrderPlacer) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
	}
}

// Begin captures the order items: the buy-now snapshot when one exists
// (consumed on read), otherwise the cart. An empty cart cannot enter
// checkout.
func (s *CheckoutService) Begin(ctx context.Context) (models.PendingOrder, error) {
	items, fromBuyNow, err := s.carts.repo.TakeBuyNow(ctx)
	if err != nil {
		return models.PendingOrder{}, fmt.Errorf("failed to read buy-now snapshot: %w", err)
	}
	if !fromBuyNow {
		items, err = s.carts.repo.LoadCart(ctx)
		if err != nil {
			return models.PendingOrder{}, fmt.Errorf("failed to load cart: %w", err)
		}
		if len(items) == 0 {
			return models.PendingOrder{}, ErrEmptyCart
		}
	}

	pending := models.PendingOrder{
		Items:      items,
		FromBuyNow: fromBuyNow,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.pending = &pending
	s.mu.Unlock()
	return pending, nil
}

// PlaceOrder validates the delivery fields and the captured items, posts
// the order (cash on delivery) and, for cart-sourced orders, clears the
// cart. The pending order is discarded on success.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customer models.CustomerInfo) (models.Order, error) {
	if err := validateCustomer(customer); err != nil {
		return models.Order{}, err
	}

	s.mu.Lock()
	pending := s.pending
	s.mu.Unlock()
	if pending == nil {
		captured, err := s.Begin(ctx)
		if err != nil {
			return models.Order{}, err
		}
		pending = &captured
	}

	if !pending.FromBuyNow {
		if err := s.carts.ValidateForCheckout(pending.Items); err != nil {
			return models.Order{}, err
		}
	}

	request := models.OrderRequest{
		Customer:      customer,
		Products:      make([]models.OrderItem, 0, len(pending.Items)),
		Total:         Total(pending.Items),
		PaymentMethod: models.PaymentMethodCOD,
	}
	for _, item := range pending.Items {
		request.Products = append(request.Products, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := s.orders.PlaceOrder(ctx, request)
	if err != nil {
		return models.Order{}, err
	}

	if !pending.FromBuyNow {
		if err := s.carts.Clear(ctx); err != nil {
			log.Printf("cart clear after order failed: %v", err)
		}
	}

	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	return order, nil
}

// Abandon drops the pending order without placing it.
func (s *CheckoutService) Abandon() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

var requiredCustomerFields = []string{"name", "email", "phone", "address", "city", "pincode"}

func validateCustomer(customer models.CustomerInfo) error {
	values := map[string]string{
		"name":    customer.Name,
		"email":   customer.Email,
		"phone":   customer.Phone,
		"address": customer.Address,
		"city":    customer.City,
		"pincode": customer.Pincode,
	}

	var missing []string
	for _, field := range requiredCustomerFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
