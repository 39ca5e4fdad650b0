package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sapphire-cosmetics/storefront/controllers"
	"github.com/sapphire-cosmetics/storefront/errors"
	"github.com/sapphire-cosmetics/storefront/logger"
	"github.com/sapphire-cosmetics/storefront/middleware"
	"github.com/sapphire-cosmetics/storefront/services"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Admin    *controllers.AdminController
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers, sessions *services.SessionService) {
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(errors.ErrorMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes - no session required
	public := r.Group("/")
	{
		public.POST("/auth/login", ctrl.Auth.Login)
		public.POST("/auth/register", ctrl.Auth.Register)
		public.GET("/auth/status", ctrl.Auth.Status)

		public.GET("/products", ctrl.Products.List)
	}

	// Protected routes - require an authenticated session
	protected := r.Group("/")
	protected.Use(middleware.SessionRequired(sessions))
	{
		protected.POST("/auth/logout", ctrl.Auth.Logout)

		// Cart page
		protected.GET("/cart", ctrl.Cart.GetCart)
		protected.POST("/cart/items", ctrl.Cart.AddItem)
		protected.PATCH("/cart/items/:product_id", ctrl.Cart.ChangeQuantity)
		protected.DELETE("/cart/items/:product_id", ctrl.Cart.RemoveItem)
		protected.POST("/cart/buy-now", ctrl.Cart.BuyNow)

		// Checkout page
		protected.GET("/checkout", ctrl.Checkout.Begin)
		protected.POST("/checkout", ctrl.Checkout.PlaceOrder)
		protected.DELETE("/checkout", ctrl.Checkout.Abandon)
	}

	// Admin back-office - session plus admin role
	admin := r.Group("/admin")
	admin.Use(middleware.SessionRequired(sessions), middleware.AdminRequired())
	{
		admin.GET("/products", ctrl.Admin.ListProducts)
		admin.POST("/products", ctrl.Admin.CreateProduct)
		admin.PUT("/products/:id", ctrl.Admin.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Admin.DeleteProduct)

		admin.GET("/orders", ctrl.Admin.ListOrders)
		admin.PUT("/orders/:id", ctrl.Admin.UpdateOrder)

		admin.GET("/users", ctrl.Admin.ListUsers)
	}
}
