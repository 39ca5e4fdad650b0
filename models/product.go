package models

// Product is a catalog entry as served by the remote product API.
// The storefront never mutates these outside the admin views.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Image    string  `json:"image"`
	Category string  `json:"category,omitempty"`
	Brand    string  `json:"brand,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}
