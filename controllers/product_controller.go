package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/services"
)

type ProductController struct {
	api      *clients.Client
	sessions *services.SessionService
}

func NewProductController(api *clients.Client, sessions *services.SessionService) *ProductController {
	return &ProductController{
		api:      api,
		sessions: sessions,
	}
}

// List serves the product listing view from the remote catalog.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.api.ListProducts(c.Request.Context())
	if err != nil {
		respondAPIError(c, pc.sessions, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
