// internal/handlers/admin.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarline/storefront-backend/internal/i18n"
	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/services"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type AdminHandler struct {
	orderService *services.OrderService
	userService  *services.UserService
}

func NewAdminHandler(orderService *services.OrderService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
		userService:  userService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.orderService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.OrderSearchParams{
		PaginationParams: params,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.OrderStatus(statusStr)
		if status.Valid() {
			searchParams.Status = &status
		}
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		if userID, err := uuid.Parse(userIDStr); err == nil {
			searchParams.UserID = &userID
		}
	}

	orders, total, err := h.orderService.SearchOrders(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetOrder(orderID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

// PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderStatus(orderID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}

// GET /admin/customers
func (h *AdminHandler) GetCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.userService.GetCustomers(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(customers, total, params)
	utils.PaginatedResponse(c, result)
}
