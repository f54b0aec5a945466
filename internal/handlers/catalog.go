// internal/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fripetn/storefront/internal/i18n"
	"github.com/fripetn/storefront/internal/services"
	"github.com/fripetn/storefront/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
	pageSize       int
}

func NewCatalogHandler(catalogService *services.CatalogService, pageSize int) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		pageSize:       pageSize,
	}
}

type priceFilterQuery struct {
	PriceMin float64 `form:"price_min" validate:"min=0"`
	PriceMax float64 `form:"price_max" validate:"min=0,gtefield=PriceMin"`
}

func (h *CatalogHandler) catalogUnavailable(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	utils.ErrorResponse(c, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE",
		i18n.T(lang, i18n.KeyCatalogLoadFailed), gin.H{
			"retry": "/v1/catalog/refresh",
		})
}

// GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, healthy := h.catalogService.Products(c.Request.Context())
	if !healthy {
		h.catalogUnavailable(c)
		return
	}

	result := utils.Paginate(products, params.Category, params.Page, h.pageSize)
	pages := utils.PageNumbers(result.CurrentPage, result.TotalPages)
	utils.PaginatedResponse(c, result, pages)
}

// GET /products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, found := h.catalogService.Product(c.Request.Context(), id)
	if !found {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// GET /products/filter
func (h *CatalogHandler) FilterProducts(c *gin.Context) {
	var query priceFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid price range", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&query)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	products, healthy := h.catalogService.Products(c.Request.Context())
	if !healthy {
		h.catalogUnavailable(c)
		return
	}

	result := h.catalogService.PartitionByPrice(products, query.PriceMin, query.PriceMax)
	utils.SuccessResponseWithMeta(c, result, gin.H{
		"price_min": query.PriceMin,
		"price_max": query.PriceMax,
		"matching":  len(result.Matching),
		"dimmed":    len(result.Dimmed),
	})
}

// GET /products/price-range
func (h *CatalogHandler) GetPriceRange(c *gin.Context) {
	min, max, ok := h.catalogService.PriceRange(c.Request.Context())
	utils.SuccessResponse(c, gin.H{
		"min":       min,
		"max":       max,
		"available": ok,
	})
}

// GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories := h.catalogService.Categories(c.Request.Context())
	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// POST /catalog/refresh
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	products, healthy := h.catalogService.Refresh(c.Request.Context())
	if !healthy {
		h.catalogUnavailable(c)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCatalogRefreshed),
		"count":   len(products),
	})
}
