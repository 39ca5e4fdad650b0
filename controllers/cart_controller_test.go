package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sapphire-cosmetics/storefront/clients"
	"github.com/sapphire-cosmetics/storefront/database"
	"github.com/sapphire-cosmetics/storefront/errors"
	"github.com/sapphire-cosmetics/storefront/models"
	"github.com/sapphire-cosmetics/storefront/services"
)

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type mockAuthenticator struct{ mock.Mock }

func (m *mockAuthenticator) Login(ctx context.Context, role, email, password string) (string, models.Principal, error) {
	args := m.Called(ctx, role, email, password)
	return args.String(0), args.Get(1).(models.Principal), args.Error(2)
}

func (m *mockAuthenticator) Register(ctx context.Context, role, name, email, password string) error {
	args := m.Called(ctx, role, name, email, password)
	return args.Error(0)
}

func newCartRouter(t *testing.T) (*gin.Engine, *services.CartService, *mockCatalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := database.NewMemoryStore()
	catalog := new(mockCatalog)
	sessions := services.NewSessionService(database.NewSessionRepository(store), new(mockAuthenticator))
	carts := services.NewCartService(database.NewCartRepository(store), catalog, nil, sessions)
	ctrl := NewCartController(carts, catalog, sessions)

	r := gin.New()
	r.Use(errors.ErrorMiddleware())
	r.GET("/cart", ctrl.GetCart)
	r.POST("/cart/items", ctrl.AddItem)
	r.PATCH("/cart/items/:product_id", ctrl.ChangeQuantity)
	r.DELETE("/cart/items/:product_id", ctrl.RemoveItem)
	return r, carts, catalog
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetCart(t *testing.T) {
	r, carts, catalog := newCartRouter(t)
	product := models.Product{ID: "p1", Name: "Velvet Lipstick", Price: 499, Stock: 5}
	require.NoError(t, carts.AddToCart(context.Background(), product, 2))

	catalog.On("ListProducts", mock.Anything).Return([]models.Product{product}, nil)

	w := doJSON(t, r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items   []models.CartItem `json:"items"`
		Notices []string          `json:"notices"`
		Total   float64           `json:"total"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, float64(998), resp.Total)
	assert.Equal(t, 2, resp.Count)
	assert.NotNil(t, resp.Notices)
}

func TestAddItemEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, _, catalog := newCartRouter(t)
		catalog.On("ListProducts", mock.Anything).
			Return([]models.Product{{ID: "p1", Name: "Velvet Lipstick", Price: 499, Stock: 5}}, nil)

		w := doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","quantity":2}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Unknown Product", func(t *testing.T) {
		r, _, catalog := newCartRouter(t)
		catalog.On("ListProducts", mock.Anything).Return([]models.Product{}, nil)

		w := doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"missing","quantity":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Payload", func(t *testing.T) {
		r, _, _ := newCartRouter(t)

		w := doJSON(t, r, http.MethodPost, "/cart/items", `{"quantity":0}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Catalog Unreachable", func(t *testing.T) {
		r, _, catalog := newCartRouter(t)
		catalog.On("ListProducts", mock.Anything).
			Return(nil, &clients.RequestError{Op: "GET /products", Err: context.DeadlineExceeded})

		w := doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","quantity":1}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("Unclassified Error Rendered By Middleware", func(t *testing.T) {
		r, _, catalog := newCartRouter(t)
		catalog.On("ListProducts", mock.Anything).Return(nil, context.Canceled)

		w := doJSON(t, r, http.MethodPost, "/cart/items", `{"product_id":"p1","quantity":1}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "Internal server error", resp.Message)
	})
}

func TestChangeQuantityEndpoint(t *testing.T) {
	r, carts, catalog := newCartRouter(t)
	product := models.Product{ID: "p1", Name: "Velvet Lipstick", Price: 499, Stock: 5}
	require.NoError(t, carts.AddToCart(context.Background(), product, 1))

	catalog.On("ListProducts", mock.Anything).Return([]models.Product{product}, nil)

	w := doJSON(t, r, http.MethodPatch, "/cart/items/p1", `{"delta":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
}

func TestRemoveItemEndpoint(t *testing.T) {
	r, carts, catalog := newCartRouter(t)
	product := models.Product{ID: "p1", Name: "Velvet Lipstick", Price: 499, Stock: 5}
	require.NoError(t, carts.AddToCart(context.Background(), product, 1))

	catalog.On("ListProducts", mock.Anything).Return([]models.Product{product}, nil)

	w := doJSON(t, r, http.MethodDelete, "/cart/items/p1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}
