// internal/handlers/cart.go
package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fripetn/storefront/internal/i18n"
	"github.com/fripetn/storefront/internal/services"
	"github.com/fripetn/storefront/internal/utils"
)

type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
	notifier       *services.NotificationService
}

func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService, notifier *services.NotificationService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
		notifier:       notifier,
	}
}

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, _ := utils.GetSessionIDFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"cart": h.cartService.Get(sessionID),
	})
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Cart lines snapshot the product at add time, so the catalog is the
	// only place to resolve the id.
	product, found := h.catalogService.Product(c.Request.Context(), req.ProductID)
	if !found {
		utils.NotFoundResponse(c, "product")
		return
	}

	cart, err := h.cartService.Add(sessionID, product, lang)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded, product.Name),
		"cart":    cart,
	})
}

// PATCH /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.UpdateQuantity(sessionID, productID, req.Delta, lang)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
		"cart":    cart,
	})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	cart, err := h.cartService.Remove(sessionID, productID, lang)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemRemoved),
		"cart":    cart,
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	cart, err := h.cartService.Clear(sessionID, lang)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
		"cart":    cart,
	})
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)

	cart := h.cartService.Get(sessionID)
	if cart.IsEmpty() {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
		return
	}

	// Checkout is deliberately a stub: no payment processing happens here.
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCheckoutComingSoon),
		"cart":    cart,
	})
}

// GET /cart/events
func (h *CartHandler) Events(c *gin.Context) {
	sessionID, _ := utils.GetSessionIDFromContext(c)

	events, cancel := h.notifier.Subscribe(sessionID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("cart", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
