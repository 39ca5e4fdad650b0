package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sapphire-cosmetics/storefront/models"
)

func (c *Client) PlaceOrder(ctx context.Context, order models.OrderRequest) (models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", order, &created); err != nil {
		return models.Order{}, err
	}
	return created, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &raw); err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}

	var wrapped struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected orders response shape: %w", err)
	}
	return wrapped.Orders, nil
}

// UpdateOrder sends a partial update, typically a status change.
func (c *Client) UpdateOrder(ctx context.Context, id string, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, "/orders/"+id, fields, nil)
}
