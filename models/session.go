package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated identity returned by the auth endpoints
// and persisted alongside the bearer token.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// User is an account row from the admin user listing.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}
