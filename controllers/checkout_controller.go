package controllers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/models"
	"github.com/sapphire-cosmetics/storefront/services"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	sessions *services.SessionService
}

func NewCheckoutController(checkout *services.CheckoutService, sessions *services.SessionService) *CheckoutController {
	return &CheckoutController{
		checkout: checkout,
		sessions: sessions,
	}
}

// Begin opens the checkout view: it captures the buy-now snapshot or the
// cart into the pending order and returns the order summary.
func (cc *CheckoutController) Begin(c *gin.Context) {
	pending, err := cc.checkout.Begin(c.Request.Context())
	if err != nil {
		if stderrors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":         pending.Items,
		"total":         services.Total(pending.Items),
		"paymentMethod": models.PaymentMethodCOD,
	})
}

// PlaceOrder validates the delivery details and submits the order.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	var customer models.CustomerInfo
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	order, err := cc.checkout.PlaceOrder(c.Request.Context(), customer)
	if err != nil {
		var validation *services.ValidationError
		var unavailable *services.UnavailableItemsError
		switch {
		case stderrors.As(err, &validation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields", "fields": validation.Fields})
		case stderrors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
		case stderrors.As(err, &unavailable):
			c.JSON(http.StatusConflict, gin.H{"error": unavailable.Error(), "items": unavailable.Names})
		default:
			respondAPIError(c, cc.sessions, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
	})
}

// Abandon discards the pending order without placing it.
func (cc *CheckoutController) Abandon(c *gin.Context) {
	cc.checkout.Abandon()
	c.JSON(http.StatusOK, gin.H{"message": "checkout abandoned"})
}
