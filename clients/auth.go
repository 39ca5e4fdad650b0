package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sapphire-cosmetics/storefront/models"
)

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  *models.Principal `json:"user"`
	Admin *models.Principal `json:"admin"`
}

// Login authenticates against the role-specific endpoint. User and admin
// logins are distinct authoritative checks, not a client-side label.
func (c *Client) Login(ctx context.Context, role, email, password string) (string, models.Principal, error) {
	endpoint := "/auth/login"
	if role == models.RoleAdmin {
		endpoint = "/admin/login"
	}

	var resp loginResponse
	err := c.do(ctx, http.MethodPost, endpoint, credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", models.Principal{}, err
	}

	principal := resp.User
	if resp.Admin != nil {
		principal = resp.Admin
	}
	if resp.Token == "" || principal == nil {
		return "", models.Principal{}, fmt.Errorf("login response missing token or principal")
	}
	if principal.Role == "" {
		// The endpoint already decided the role; not every API payload
		// echoes it back.
		principal.Role = role
		if principal.Role == "" {
			principal.Role = models.RoleUser
		}
	}
	return resp.Token, *principal, nil
}

// Register creates an account. It does not establish a session; the
// caller logs in afterwards.
func (c *Client) Register(ctx context.Context, role, name, email, password string) error {
	endpoint := "/auth/register"
	if role == models.RoleAdmin {
		endpoint = "/admin/signup"
	}
	return c.do(ctx, http.MethodPost, endpoint, credentialsRequest{Name: name, Email: email, Password: password}, nil)
}
