package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sapphire-cosmetics/storefront/models"
)

// ListProducts fetches the full catalog. The API serves either a bare
// array or an object with a "products" field, so both are accepted.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", nil, &raw); err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var wrapped struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected catalog response shape: %w", err)
	}
	return wrapped.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products", product, &created); err != nil {
		return models.Product{}, err
	}
	return created, nil
}

// UpdateProduct sends a partial update; only the provided fields change.
func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, "/products/"+id, fields, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}
