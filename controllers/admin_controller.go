package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/models"
	"github.com/sapphire-cosmetics/storefront/services"
)

// AdminController exposes the back-office views. Every operation reads
// from or writes to the remote API; nothing is cached locally, so the
// listings always reflect the API's current state.
type AdminController struct {
	api      *clients.Client
	sessions *services.SessionService
}

func NewAdminController(api *clients.Client, sessions *services.SessionService) *AdminController {
	return &AdminController{
		api:      api,
		sessions: sessions,
	}
}

func (ac *AdminController) ListProducts(c *gin.Context) {
	products, err := ac.api.ListProducts(c.Request.Context())
	if err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (ac *AdminController) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	created, err := ac.api.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": created})
}

// UpdateProduct forwards a partial update; only the fields present in
// the body change on the API side.
func (ac *AdminController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := ac.api.UpdateProduct(c.Request.Context(), id, fields); err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (ac *AdminController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := ac.api.DeleteProduct(c.Request.Context(), id); err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (ac *AdminController) ListOrders(c *gin.Context) {
	orders, err := ac.api.ListOrders(c.Request.Context())
	if err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrder forwards an order update, typically a status change.
func (ac *AdminController) UpdateOrder(c *gin.Context) {
	id := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := ac.api.UpdateOrder(c.Request.Context(), id, fields); err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.api.ListUsers(c.Request.Context())
	if err != nil {
		respondAPIError(c, ac.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
