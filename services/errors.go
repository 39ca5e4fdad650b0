package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// UnavailableItemsError blocks checkout while the cart holds out-of-stock
// items, naming the offending products.
type UnavailableItemsError struct {
	Names []string
}

func (e *UnavailableItemsError) Error() string {
	return fmt.Sprintf("cannot checkout: %s are out of stock", strings.Join(e.Names, ", "))
}

// AuthError carries the user-facing authentication failure message,
// sourced from the API payload when one was provided.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ValidationError names the required checkout fields that are missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
