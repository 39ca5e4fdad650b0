package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapphire-cosmetics/storefront/models"
)

func TestCartRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Cart Is Empty", func(t *testing.T) {
		repo := NewCartRepository(NewMemoryStore())

		items, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Save And Load", func(t *testing.T) {
		repo := NewCartRepository(NewMemoryStore())
		items := []models.CartItem{
			{ProductID: "p1", Name: "Velvet Lipstick", Price: 499, Quantity: 2, Available: true},
		}

		require.NoError(t, repo.SaveCart(ctx, items))

		loaded, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Equal(t, items, loaded)
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewCartRepository(NewMemoryStore())
		require.NoError(t, repo.SaveCart(ctx, []models.CartItem{{ProductID: "p1", Quantity: 1}}))

		require.NoError(t, repo.ClearCart(ctx))

		items, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestTakeBuyNow(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(NewMemoryStore())

	t.Run("Nothing Stored", func(t *testing.T) {
		items, ok, err := repo.TakeBuyNow(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, items)
	})

	t.Run("Consumed On Read", func(t *testing.T) {
		item := models.CartItem{ProductID: "p2", Name: "Glow Serum", Price: 899, Quantity: 1, Available: true}
		require.NoError(t, repo.PutBuyNow(ctx, item))

		items, ok, err := repo.TakeBuyNow(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, item, items[0])

		_, ok, err = repo.TakeBuyNow(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Leaves Cart Alone", func(t *testing.T) {
		require.NoError(t, repo.SaveCart(ctx, []models.CartItem{{ProductID: "p1", Quantity: 1}}))
		require.NoError(t, repo.PutBuyNow(ctx, models.CartItem{ProductID: "p2", Quantity: 1}))

		_, _, err := repo.TakeBuyNow(ctx)
		require.NoError(t, err)

		items, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	principal := models.Principal{ID: "u1", Name: "Priya", Email: "priya@example.com", Role: models.RoleUser}

	t.Run("Roundtrip", func(t *testing.T) {
		repo := NewSessionRepository(NewMemoryStore())
		require.NoError(t, repo.SaveSession(ctx, "tok-123", principal))

		token, loaded, ok, err := repo.LoadSession(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "tok-123", token)
		assert.Equal(t, principal, loaded)
	})

	t.Run("No Session", func(t *testing.T) {
		repo := NewSessionRepository(NewMemoryStore())

		_, _, ok, err := repo.LoadSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewSessionRepository(NewMemoryStore())
		require.NoError(t, repo.SaveSession(ctx, "tok-123", principal))
		require.NoError(t, repo.ClearSession(ctx))

		_, _, ok, err := repo.LoadSession(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		// Clearing an already-empty session is fine.
		require.NoError(t, repo.ClearSession(ctx))
	})
}
