package models

import "time"

// CartItem is one line of the locally persisted cart. Name, Image and Price
// are display snapshots refreshed on reconciliation; Available is derived
// from catalog stock at reconciliation time.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Available bool    `json:"available"`
}

// Cart is the persisted cart state. Item order is insertion order and is
// the display order; product IDs are unique across items.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
