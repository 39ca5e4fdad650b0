package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sapphire-cosmetics/storefront/bus"
	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/config"
	"github.com/sapphire-cosmetics/storefront/controllers"
	"github.com/sapphire-cosmetics/storefront/database"
	"github.com/sapphire-cosmetics/storefront/logger"
	"github.com/sapphire-cosmetics/storefront/routes"
	"github.com/sapphire-cosmetics/storefront/services"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local state lives in Redis when configured, otherwise on disk.
	var store database.Store
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		store = database.NewRedisStore(client)
		logger.Log.Info("Using Redis state store")
	} else {
		fileStore, err := database.NewFileStore(cfg.StateDir)
		if err != nil {
			logger.Log.Fatal("Failed to open state directory", zap.Error(err))
		}
		store = fileStore
		logger.Log.Info("Using file state store", zap.String("dir", cfg.StateDir))
	}

	cartRepo := database.NewCartRepository(store)
	sessionRepo := database.NewSessionRepository(store)

	signals := bus.New(nil)
	defer signals.Close()

	api := clients.New(cfg.APIBaseURL, cfg.RequestTimeout)

	sessions := services.NewSessionService(sessionRepo, api)
	api.UseTokenSource(sessions)
	if err := sessions.Restore(ctx); err != nil {
		logger.Log.Warn("Session restore failed", zap.Error(err))
	}

	carts := services.NewCartService(cartRepo, api, signals, sessions)
	checkout := services.NewCheckoutService(carts, api)

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(sessions),
		Products: controllers.NewProductController(api, sessions),
		Cart:     controllers.NewCartController(carts, api, sessions),
		Checkout: controllers.NewCheckoutController(checkout, sessions),
		Admin:    controllers.NewAdminController(api, sessions),
	}

	r := gin.New()
	routes.RegisterRoutes(r, ctrl, sessions)

	go reconcileLoop(ctx, carts, signals, cfg.ReconcileInterval)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Storefront listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Shutdown error", zap.Error(err))
	}
}

// reconcileLoop keeps the persisted cart fresh while the storefront is
// idle: it re-syncs on a timer and after every cart mutation signal, so
// catalog changes surface without waiting for the next page load.
func reconcileLoop(ctx context.Context, carts *services.CartService, signals *bus.Bus, interval time.Duration) {
	events, err := signals.SubscribeCartUpdated(ctx)
	if err != nil {
		log.Printf("cart signal subscribe failed: %v", err)
		events = nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := carts.Reconcile(ctx); err != nil {
				log.Printf("background cart sync failed: %v", err)
			}
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			// Mutations already reconcile inline; a follow-up run here is
			// collapsed by singleflight when one is still in flight.
			if _, _, err := carts.Reconcile(ctx); err != nil {
				log.Printf("background cart sync failed: %v", err)
			}
			ticker.Reset(interval)
		}
	}
}
