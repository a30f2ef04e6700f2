// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type OrderService struct {
	db                  *gorm.DB
	cartService         *CartService
	paymentService      *PaymentService
	notificationService *NotificationService
}

type CheckoutRequest struct {
	AddressID     string               `json:"address_id" validate:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status  models.OrderStatus `json:"status" validate:"required"`
	Comment string             `json:"comment,omitempty"`
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status *models.OrderStatus `json:"status,omitempty"`
	UserID *uuid.UUID          `json:"user_id,omitempty"`
}

type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type DashboardStats struct {
	TotalOrders       int64                        `json:"total_orders"`
	OrdersByStatus    map[models.OrderStatus]int64 `json:"orders_by_status"`
	TotalRevenue      float64                      `json:"total_revenue"`
	MonthlyRevenue    float64                      `json:"monthly_revenue"`
	RevenueGrowth     float64                      `json:"revenue_growth"`
	TotalCustomers    int64                        `json:"total_customers"`
	NewCustomersMonth int64                        `json:"new_customers_this_month"`
	TotalProducts     int64                        `json:"total_products"`
	TopProducts       []TopProduct                 `json:"top_products"`
}

func NewOrderService(db *gorm.DB, cartService *CartService, paymentService *PaymentService, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		cartService:         cartService,
		paymentService:      paymentService,
		notificationService: notificationService,
	}
}

// Checkout turns the user's cart into an order. The shipping address and the
// cart lines are copied onto the order; later edits to either never touch a
// placed order. Stock is deliberately not decremented here.
func (s *OrderService) Checkout(user *models.User, req *CheckoutRequest) (*models.Order, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.PaymentMethod.Valid() {
		return nil, errors.New("invalid payment method")
	}

	cart := s.cartService.GetCart(user.ID.String())
	if len(cart.Lines) == 0 {
		return nil, errors.New("cart is empty")
	}

	addr := user.Addresses.FindByID(req.AddressID)
	if addr == nil {
		return nil, errors.New("address not found")
	}

	// Card path runs the simulated capture before the order is written; a
	// capture failure leaves the cart untouched.
	if req.PaymentMethod == models.PaymentMethodCard {
		result, err := s.paymentService.ChargeCard(cart.GrandTotal())
		if err != nil {
			return nil, fmt.Errorf("payment failed: %w", err)
		}
		if !result.Success {
			return nil, errors.New("payment was declined")
		}
	}

	items := make(models.OrderItems, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			Name:        line.Name,
			ImageURL:    line.ImageURL,
			Price:       line.Price,
			OfferPrice:  line.OfferPrice,
			DeliveryFee: line.DeliveryFee,
			Quantity:    line.Quantity,
		})
	}

	order := &models.Order{
		UserID:      user.ID,
		Items:       items,
		TotalAmount: cart.GrandTotal(),
		DeliveryFee: cart.DeliveryTotal(),
		ShippingDetails: models.ShippingDetails{
			Label:    addr.Label,
			Name:     addr.Name,
			Street:   addr.Street,
			City:     addr.City,
			District: addr.District,
			Phone:    addr.Phone,
		},
		PaymentMethod: req.PaymentMethod,
		CustomerEmail: user.Email,
		CustomerPhone: user.Phone,
	}
	order.AppendStatus(models.OrderStatusPending, "Order placed", time.Now())

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.cartService.ClearCart(user.ID.String())

	if s.notificationService != nil {
		go s.notificationService.SendOrderConfirmation(order)
	}

	return order, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// SearchOrders backs the admin order list: the free-text search is a
// substring match against the order id, which is what the QR scan feeds in.
func (s *OrderService) SearchOrders(params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(CAST(id AS TEXT)) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_amount", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// UpdateOrderStatus appends one history entry and writes the status column
// in the same transaction. Transitions are not validated; the history is the
// audit trail either way.
func (s *OrderService) UpdateOrderStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Status.Valid() {
		return nil, errors.New("invalid order status")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("order not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		order.AppendStatus(req.Status, req.Comment, time.Now())

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":         order.Status,
			"status_history": order.StatusHistory,
		}).Error
	})

	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		go s.notificationService.SendStatusUpdate(&order)
	}

	return &order, nil
}

// CancelOrder enforces the cancellation window: Pending orders no older than
// 24 hours. An ineligible order is a business rejection reported through the
// boolean, not an error, and is left untouched.
func (s *OrderService) CancelOrder(orderID, userID uuid.UUID) (*models.Order, bool, error) {
	var order models.Order
	cancelled := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("order not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if order.UserID != userID {
			return errors.New("order not found")
		}

		if !order.CanCancel(time.Now()) {
			return nil
		}

		order.AppendStatus(models.OrderStatusCancelled, "Cancelled by customer", time.Now())
		cancelled = true

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":         order.Status,
			"status_history": order.StatusHistory,
		}).Error
	})

	if err != nil {
		return nil, false, err
	}

	if cancelled && s.notificationService != nil {
		go s.notificationService.SendStatusUpdate(&order)
	}

	return &order, cancelled, nil
}

// GetDashboardStats drives the admin analytics tab. Counts and sums run as
// queries; the top-product ranking is a reduction over fetched order items,
// which live as jsonb snapshots.
func (s *OrderService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[models.OrderStatus]int64),
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)

	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		var count int64
		s.db.Model(&models.Order{}).Where("status = ?", status).Count(&count)
		stats.OrdersByStatus[status] = count
	}

	// Cancelled orders never count toward revenue
	s.db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderStatusCancelled, monthStart).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.MonthlyRevenue)

	var lastMonthRevenue float64
	s.db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusCancelled, lastMonthStart, monthStart).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&lastMonthRevenue)

	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	s.db.Model(&models.User{}).Where("role = ?", models.UserRoleCustomer).Count(&stats.TotalCustomers)
	s.db.Model(&models.User{}).
		Where("role = ? AND created_at >= ?", models.UserRoleCustomer, monthStart).
		Count(&stats.NewCustomersMonth)

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)

	var orders []models.Order
	if err := s.db.Where("status <> ?", models.OrderStatusCancelled).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders for analytics: %w", err)
	}
	stats.TopProducts = RankTopProducts(orders, 5)

	return stats, nil
}

// RankTopProducts reduces order item snapshots into a ranking by total
// quantity ordered, ties broken by revenue.
func RankTopProducts(orders []models.Order, limit int) []TopProduct {
	byProduct := make(map[string]*TopProduct)
	for _, order := range orders {
		for _, item := range order.Items {
			entry, exists := byProduct[item.ProductID]
			if !exists {
				entry = &TopProduct{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.UnitPrice() * float64(item.Quantity)
		}
	}

	ranked := make([]TopProduct, 0, len(byProduct))
	for _, entry := range byProduct {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].Revenue > ranked[j].Revenue
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
