// internal/handlers/cart.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarline/storefront-backend/internal/i18n"
	"github.com/bazaarline/storefront-backend/internal/services"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func cartPayload(cart *services.Cart) gin.H {
	return gin.H{
		"lines":          cart.Lines,
		"subtotal":       cart.Subtotal(),
		"delivery_total": cart.DeliveryTotal(),
		"grand_total":    cart.GrandTotal(),
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cart := h.cartService.GetCart(userIDStr)
	utils.SuccessResponse(c, gin.H{"cart": cartPayload(cart)})
}

// POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	cart, err := h.cartService.AddToCart(userIDStr, productID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
		"cart":    cartPayload(cart),
	})
}

// PUT /cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cart := h.cartService.UpdateQuantity(userIDStr, c.Param("productId"), req.Quantity)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
		"cart":    cartPayload(cart),
	})
}

// DELETE /cart/items/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cart := h.cartService.RemoveFromCart(userIDStr, c.Param("productId"))
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
		"cart":    cartPayload(cart),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.cartService.ClearCart(userIDStr)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}
