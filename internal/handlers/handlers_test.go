// internal/handlers/handlers_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fripetn/storefront/internal/config"
	"github.com/fripetn/storefront/internal/middleware"
	"github.com/fripetn/storefront/internal/services"
	"github.com/fripetn/storefront/internal/store"
)

// fixtureCatalogServer serves n shoe products with ids 1..n and price == id.
func fixtureCatalogServer(t *testing.T, n int) *httptest.Server {
	t.Helper()

	var records []string
	for i := 1; i <= n; i++ {
		records = append(records, fmt.Sprintf(
			`{"id": %d, "title": "Shoe %d", "price": %d, "category": "shoes", "stock": 10}`, i, i, i))
	}
	body := `{"data": [` + strings.Join(records, ",") + `]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupRouter(t *testing.T, catalogURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cartStore, err := store.NewCartStore(t.TempDir(), true)
	require.NoError(t, err)
	t.Cleanup(func() { cartStore.Close() })

	notifier := services.NewNotificationService()
	catalogService := services.NewCatalogService(config.CatalogConfig{
		BaseURL:      catalogURL,
		FetchTimeout: 5,
		CacheTTL:     60,
		PageSize:     6,
		DefaultImage: "assets/images/default-product.jpg",
	})
	cartService := services.NewCartService(cartStore, notifier)

	catalogHandler := NewCatalogHandler(catalogService, 6)
	cartHandler := NewCartHandler(cartService, catalogService, notifier)

	r := gin.New()
	r.Use(middleware.I18nMiddleware())

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.GetProducts)
			products.GET("/filter", catalogHandler.FilterProducts)
			products.GET("/price-range", catalogHandler.GetPriceRange)
			products.GET("/:id", catalogHandler.GetProduct)
		}
		v1.POST("/catalog/refresh", catalogHandler.RefreshCatalog)
		v1.GET("/categories", catalogHandler.GetCategories)

		cart := v1.Group("/cart")
		cart.Use(middleware.CartSession(), middleware.RequireCartSession())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PATCH("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.POST("/checkout", cartHandler.Checkout)
		}
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, session string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	}
	return w, response
}

func TestGetProductsPaginatesAndClamps(t *testing.T) {
	srv := fixtureCatalogServer(t, 13)
	r := setupRouter(t, srv.URL)

	w, response := doJSON(t, r, http.MethodGet, "/v1/products?category=shoes&page=5", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, response["success"].(bool))

	// Page 5 of 3 clamps to the last page, which holds the 13th item
	items := response["data"].([]interface{})
	require.Len(t, items, 1)

	meta := response["meta"].(map[string]interface{})
	pagination := meta["pagination"].(map[string]interface{})
	require.Equal(t, float64(3), pagination["current_page"])
	require.Equal(t, float64(3), pagination["total_pages"])
	require.Equal(t, float64(13), pagination["total_items"])

	require.Equal(t, "3", w.Header().Get("X-Total-Pages"))
	require.Equal(t, "13", w.Header().Get("X-Total-Count"))
}

func TestGetProductsUnknownCategoryIsEmptyPage(t *testing.T) {
	srv := fixtureCatalogServer(t, 13)
	r := setupRouter(t, srv.URL)

	w, response := doJSON(t, r, http.MethodGet, "/v1/products?category=perfumes", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	items := response["data"].([]interface{})
	require.Empty(t, items)

	pagination := response["meta"].(map[string]interface{})["pagination"].(map[string]interface{})
	require.Equal(t, float64(1), pagination["total_pages"])
}

func TestGetProductsUnavailableCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	r := setupRouter(t, srv.URL)

	w, response := doJSON(t, r, http.MethodGet, "/v1/products", "", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.False(t, response["success"].(bool))

	apiError := response["error"].(map[string]interface{})
	require.Equal(t, "CATALOG_UNAVAILABLE", apiError["code"])
}

func TestGetProductByID(t *testing.T) {
	srv := fixtureCatalogServer(t, 3)
	r := setupRouter(t, srv.URL)

	w, response := doJSON(t, r, http.MethodGet, "/v1/products/2", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	product := response["data"].(map[string]interface{})["product"].(map[string]interface{})
	require.Equal(t, "Shoe 2", product["name"])

	w, _ = doJSON(t, r, http.MethodGet, "/v1/products/99", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterProductsValidatesRange(t *testing.T) {
	srv := fixtureCatalogServer(t, 5)
	r := setupRouter(t, srv.URL)

	w, _ := doJSON(t, r, http.MethodGet, "/v1/products/filter?price_min=5&price_max=2", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, response := doJSON(t, r, http.MethodGet, "/v1/products/filter?price_min=2&price_max=4", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	meta := response["meta"].(map[string]interface{})
	require.Equal(t, float64(3), meta["matching"])
	require.Equal(t, float64(2), meta["dimmed"])
}

func TestCartAddFlow(t *testing.T) {
	srv := fixtureCatalogServer(t, 3)
	r := setupRouter(t, srv.URL)

	// First add mints a session
	w, response := doJSON(t, r, http.MethodPost, "/v1/cart/items", `{"product_id": 1}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	session := w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, session)

	cart := response["data"].(map[string]interface{})["cart"].(map[string]interface{})
	require.Equal(t, float64(1), cart["count"])

	// Second add with the same session merges into one line
	_, response = doJSON(t, r, http.MethodPost, "/v1/cart/items", `{"product_id": 1}`, session)
	cart = response["data"].(map[string]interface{})["cart"].(map[string]interface{})
	items := cart["items"].([]interface{})
	require.Len(t, items, 1)
	require.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])
	require.Equal(t, float64(2), cart["total"]) // price == id == 1, quantity 2

	// Unknown product ids are rejected
	w, _ = doJSON(t, r, http.MethodPost, "/v1/cart/items", `{"product_id": 99}`, session)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The cart is readable with the same session
	_, response = doJSON(t, r, http.MethodGet, "/v1/cart", "", session)
	cart = response["data"].(map[string]interface{})["cart"].(map[string]interface{})
	require.Equal(t, float64(2), cart["count"])
}

func TestCartQuantityAndRemoval(t *testing.T) {
	srv := fixtureCatalogServer(t, 3)
	r := setupRouter(t, srv.URL)

	w, _ := doJSON(t, r, http.MethodPost, "/v1/cart/items", `{"product_id": 2}`, "")
	session := w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, session)

	_, response := doJSON(t, r, http.MethodPatch, "/v1/cart/items/2", `{"delta": 2}`, session)
	cart := response["data"].(map[string]interface{})["cart"].(map[string]interface{})
	require.Equal(t, float64(3), cart["count"])

	// Dropping below one removes the line
	_, response = doJSON(t, r, http.MethodPatch, "/v1/cart/items/2", `{"delta": -3}`, session)
	cart = response["data"].(map[string]interface{})["cart"].(map[string]interface{})
	require.Empty(t, cart["items"])

	// Removing an absent line is still a success
	w, _ = doJSON(t, r, http.MethodDelete, "/v1/cart/items/2", "", session)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutStub(t *testing.T) {
	srv := fixtureCatalogServer(t, 3)
	r := setupRouter(t, srv.URL)

	// Empty cart cannot check out
	w, _ := doJSON(t, r, http.MethodPost, "/v1/cart/checkout", "", "")
	session := w.Header().Get(middleware.SessionHeader)
	require.Equal(t, http.StatusBadRequest, w.Code)

	_, _ = doJSON(t, r, http.MethodPost, "/v1/cart/items", `{"product_id": 1}`, session)

	w, _ = doJSON(t, r, http.MethodPost, "/v1/cart/checkout", "", session)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := fixtureCatalogServer(t, 4)
	r := setupRouter(t, srv.URL)

	w, response := doJSON(t, r, http.MethodGet, "/v1/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	categories := response["data"].(map[string]interface{})["categories"].([]interface{})
	require.Len(t, categories, 1)
	first := categories[0].(map[string]interface{})
	require.Equal(t, "shoes", first["name"])
	require.Equal(t, float64(4), first["count"])
}

func TestPriceRangeEndpoint(t *testing.T) {
	srv := fixtureCatalogServer(t, 5)
	r := setupRouter(t, srv.URL)

	_, response := doJSON(t, r, http.MethodGet, "/v1/products/price-range", "", "")
	data := response["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["min"])
	require.Equal(t, float64(5), data["max"])
	require.Equal(t, true, data["available"])
}

func TestCatalogRefreshEndpoint(t *testing.T) {
	srv := fixtureCatalogServer(t, 2)
	r := setupRouter(t, srv.URL)

	w, response := doJSON(t, r, http.MethodPost, "/v1/catalog/refresh", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	require.Equal(t, float64(2), data["count"])
}
