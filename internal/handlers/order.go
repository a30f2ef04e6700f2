// internal/handlers/order.go
package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/bazaarline/storefront-backend/internal/i18n"
	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/services"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type OrderHandler struct {
	orderService    *services.OrderService
	userService     *services.UserService
	settingsService *services.SettingsService
}

func NewOrderHandler(orderService *services.OrderService, userService *services.UserService, settingsService *services.SettingsService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		userService:     userService,
		settingsService: settingsService,
	}
}

// POST /orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	order, err := h.orderService.Checkout(user, &req)
	if err != nil {
		if strings.Contains(err.Error(), "cart is empty") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
			return
		}
		if strings.Contains(err.Error(), "payment") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderPaymentFailed), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}

// GET /orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	orders, total, err := h.orderService.GetUserOrders(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// loadOrderForViewer returns the order when the caller owns it or is an
// admin; any other case reads as not found.
func (h *OrderHandler) loadOrderForViewer(c *gin.Context) (*models.Order, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return nil, false
	}

	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	order, err := h.orderService.GetOrder(orderID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return nil, false
		}
		utils.InternalErrorResponse(c, err.Error())
		return nil, false
	}

	role, _ := utils.GetUserRoleFromContext(c)
	if order.UserID != userID && role != string(models.UserRoleAdmin) {
		utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
		return nil, false
	}

	return order, true
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := h.loadOrderForViewer(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, gin.H{"order": order})
}

// POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, cancelled, err := h.orderService.CancelOrder(orderID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyOrderNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	message := i18n.T(lang, i18n.KeyOrderCancelled)
	if !cancelled {
		message = i18n.T(lang, i18n.KeyOrderCancelRejected)
	}

	utils.SuccessResponse(c, gin.H{
		"message":   message,
		"cancelled": cancelled,
		"order":     order,
	})
}

// GET /orders/:id/qr
// Serves a PNG encoding the order id, for the receipt and for scanning at
// the counter.
func (h *OrderHandler) GetOrderQR(c *gin.Context) {
	order, ok := h.loadOrderForViewer(c)
	if !ok {
		return
	}

	size := 256
	if sizeStr := c.Query("size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed >= 64 && parsed <= 1024 {
			size = parsed
		}
	}

	png, err := qrcode.Encode(order.ID.String(), qrcode.Medium, size)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.ShortID}}</title>
<style>
	body { font-family: sans-serif; max-width: 640px; margin: 2em auto; color: #222; }
	table { width: 100%; border-collapse: collapse; margin: 1em 0; }
	th, td { text-align: left; padding: 6px 4px; border-bottom: 1px solid #ddd; }
	.totals td { border: none; }
	.qr { text-align: center; margin: 1.5em 0; }
	@media print { .no-print { display: none; } }
</style>
</head>
<body>
	<h1>{{.ShopName}}</h1>
	<p>Order <strong>{{.Order.ID}}</strong><br>
	Placed {{.PlacedAt}}<br>
	Status: {{.Status}} &middot; Payment: {{.Order.PaymentMethod}}</p>

	<h3>Deliver to</h3>
	<p>{{.Order.ShippingDetails.Name}}<br>
	{{.Order.ShippingDetails.Street}}, {{.Order.ShippingDetails.City}}{{if .Order.ShippingDetails.District}}, {{.Order.ShippingDetails.District}}{{end}}<br>
	{{.Order.ShippingDetails.Phone}}</p>

	<table>
		<tr><th>Item</th><th>Qty</th><th>Unit</th><th>Amount</th></tr>
		{{range .Lines}}
		<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Unit}}</td><td>{{.Amount}}</td></tr>
		{{end}}
	</table>

	<table class="totals">
		<tr><td>Delivery</td><td style="text-align:right">{{.DeliveryFee}}</td></tr>
		<tr><td><strong>Total</strong></td><td style="text-align:right"><strong>{{.Total}}</strong></td></tr>
	</table>

	<div class="qr">
		<img src="{{.QRPath}}" alt="Order QR" width="192" height="192">
	</div>

	<p class="no-print"><button onclick="window.print()">Print</button></p>
</body>
</html>`))

type receiptLine struct {
	Name     string
	Quantity int
	Unit     string
	Amount   string
}

// GET /orders/:id/receipt
// Renders the printable receipt page with the embedded QR image.
func (h *OrderHandler) GetOrderReceipt(c *gin.Context) {
	order, ok := h.loadOrderForViewer(c)
	if !ok {
		return
	}

	lines := make([]receiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, receiptLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     fmt.Sprintf("%.2f", item.UnitPrice()),
			Amount:   fmt.Sprintf("%.2f", item.UnitPrice()*float64(item.Quantity)),
		})
	}

	shopName := "Receipt"
	if settings, err := h.settingsService.GetSettings(); err == nil {
		shopName = settings.ShopName
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := receiptTemplate.Execute(c.Writer, gin.H{
		"Order":       order,
		"ShortID":     order.ID.String()[:8],
		"ShopName":    shopName,
		"PlacedAt":    order.CreatedAt.Format("2 Jan 2006 15:04"),
		"Status":      order.CurrentStatus(),
		"Lines":       lines,
		"DeliveryFee": fmt.Sprintf("%.2f", order.DeliveryFee),
		"Total":       fmt.Sprintf("%.2f", order.TotalAmount),
		"QRPath":      fmt.Sprintf("/api/v1/orders/%s/qr", order.ID),
	})
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
	}
}
