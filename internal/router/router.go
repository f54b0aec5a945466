// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fripetn/storefront/internal/config"
	"github.com/fripetn/storefront/internal/handlers"
	"github.com/fripetn/storefront/internal/middleware"
	"github.com/fripetn/storefront/internal/services"
	"github.com/fripetn/storefront/internal/store"
)

func Initialize(cartStore *store.CartStore, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService()
	catalogService := services.NewCatalogService(cfg.Catalog)
	cartService := services.NewCartService(cartStore, notificationService)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg.Catalog.PageSize)
	cartHandler := handlers.NewCartHandler(cartService, catalogService, notificationService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"catalog": catalogService.Healthy(),
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.GetProducts)
			products.GET("/filter", catalogHandler.FilterProducts)
			products.GET("/price-range", catalogHandler.GetPriceRange)
			products.GET("/:id", catalogHandler.GetProduct)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/refresh", middleware.RefreshRateLimit(), catalogHandler.RefreshCatalog)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
		}

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.CartSession(), middleware.RequireCartSession())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PATCH("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
			cart.POST("/checkout", cartHandler.Checkout)
			cart.GET("/events", cartHandler.Events)
		}
	}

	return r
}
