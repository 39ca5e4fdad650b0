package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sapphire-cosmetics/storefront/models"
)

// ListUsers fetches the account listing for the admin back-office.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &raw); err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err == nil {
		return users, nil
	}

	var wrapped struct {
		Users []models.User `json:"users"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected users response shape: %w", err)
	}
	return wrapped.Users, nil
}
