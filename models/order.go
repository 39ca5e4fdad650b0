package models

import "time"

// PaymentMethodCOD is the only supported payment method; checkout is
// cash-on-delivery, there is no gateway integration.
const PaymentMethodCOD = "COD"

// CustomerInfo carries the delivery contact fields collected at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// OrderItem is one product entry of an order request, priced at the
// snapshot the customer saw.
type OrderItem struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest is the payload posted to the remote order API.
type OrderRequest struct {
	Customer      CustomerInfo `json:"customer"`
	Products      []OrderItem  `json:"products"`
	Total         float64      `json:"total"`
	PaymentMethod string       `json:"paymentMethod"`
}

// Order is an order as returned by the remote API (order history and the
// admin order listing).
type Order struct {
	ID            string       `json:"id"`
	Customer      CustomerInfo `json:"customer"`
	Products      []OrderItem  `json:"products"`
	Total         float64      `json:"total"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"paymentMethod"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// PendingOrder is the ephemeral checkout state. It exists only between
// "proceed to checkout" and "order placed" (or abandonment) and is never
// persisted.
type PendingOrder struct {
	Items      []CartItem `json:"items"`
	FromBuyNow bool       `json:"from_buy_now"`
	CreatedAt  time.Time  `json:"created_at"`
}
