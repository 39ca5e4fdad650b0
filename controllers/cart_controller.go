package controllers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/models"
	"github.com/sapphire-cosmetics/storefront/services"
)

type CartController struct {
	carts    *services.CartService
	catalog  services.CatalogSource
	sessions *services.SessionService
}

func NewCartController(carts *services.CartService, catalog services.CatalogSource, sessions *services.SessionService) *CartController {
	return &CartController{
		carts:    carts,
		catalog:  catalog,
		sessions: sessions,
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func cartResponse(items []models.CartItem, notices []string) gin.H {
	if notices == nil {
		notices = []string{}
	}
	return gin.H{
		"items":   items,
		"notices": notices,
		"total":   services.Total(items),
		"count":   services.ItemCount(items),
	}
}

// GetCart reconciles the persisted cart against the catalog and returns
// the display-ready cart plus any discrepancy notices.
func (cc *CartController) GetCart(c *gin.Context) {
	items, notices, err := cc.carts.Reconcile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(items, notices))
}

// AddItem looks the product up in the catalog and adds it to the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, err := cc.findProduct(c, req.ProductID)
	if err != nil {
		return // findProduct already responded
	}

	if err := cc.carts.AddToCart(c.Request.Context(), product, req.Quantity); err != nil {
		if stderrors.Is(err, services.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}

	items, notices, err := cc.carts.Reconcile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusCreated, cartResponse(items, notices))
}

// ChangeQuantity adjusts a line item's quantity by the given delta.
func (cc *CartController) ChangeQuantity(c *gin.Context) {
	productID := c.Param("product_id")

	var req ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	items, notices, err := cc.carts.ChangeQuantity(c.Request.Context(), productID, req.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(items, notices))
}

// RemoveItem drops a line item from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID := c.Param("product_id")

	items, notices, err := cc.carts.RemoveItem(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(items, notices))
}

// BuyNow stores the single-item snapshot the checkout consumes instead
// of the cart.
func (cc *CartController) BuyNow(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, err := cc.findProduct(c, req.ProductID)
	if err != nil {
		return
	}

	if err := cc.carts.BuyNow(c.Request.Context(), product, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store buy-now item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "buy-now item stored"})
}

func (cc *CartController) findProduct(c *gin.Context, productID string) (models.Product, error) {
	products, err := cc.catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondAPIError(c, cc.sessions, err)
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	return models.Product{}, stderrors.New("product not found")
}
