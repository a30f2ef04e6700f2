// internal/models/order_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendStatusKeepsColumnAndHistoryTogether(t *testing.T) {
	order := &Order{}
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	order.AppendStatus(OrderStatusPending, "Order placed", placed)
	order.AppendStatus(OrderStatusShipped, "Left warehouse", placed.Add(26*time.Hour))
	order.AppendStatus(OrderStatusDelivered, "", placed.Add(72*time.Hour))

	assert.Len(t, order.StatusHistory, 3)
	assert.Equal(t, OrderStatusDelivered, order.Status)
	assert.Equal(t, OrderStatusDelivered, order.CurrentStatus())

	// history is append-only: earlier entries survive untouched
	assert.Equal(t, OrderStatusPending, order.StatusHistory[0].Status)
	assert.Equal(t, "Order placed", order.StatusHistory[0].Comment)
	assert.Equal(t, OrderStatusShipped, order.StatusHistory[1].Status)
}

func TestCurrentStatusFallsBackToColumn(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	assert.Equal(t, OrderStatusPending, order.CurrentStatus())
}

func TestCanCancelInsideWindow(t *testing.T) {
	placed := time.Now().Add(-2 * time.Hour)
	order := &Order{}
	order.CreatedAt = placed
	order.AppendStatus(OrderStatusPending, "Order placed", placed)

	assert.True(t, order.CanCancel(time.Now()))
}

func TestCanCancelRejectsAfterWindow(t *testing.T) {
	placed := time.Now().Add(-CancellationWindow - time.Minute)
	order := &Order{}
	order.CreatedAt = placed
	order.AppendStatus(OrderStatusPending, "Order placed", placed)

	assert.False(t, order.CanCancel(time.Now()))
}

func TestCanCancelRejectsNonPending(t *testing.T) {
	placed := time.Now().Add(-time.Hour)
	order := &Order{}
	order.CreatedAt = placed
	order.AppendStatus(OrderStatusPending, "Order placed", placed)
	order.AppendStatus(OrderStatusShipped, "Left warehouse", time.Now())

	assert.False(t, order.CanCancel(time.Now()))

	cancelled := &Order{}
	cancelled.CreatedAt = placed
	cancelled.AppendStatus(OrderStatusPending, "Order placed", placed)
	cancelled.AppendStatus(OrderStatusCancelled, "Cancelled by customer", time.Now())
	assert.False(t, cancelled.CanCancel(time.Now()))
}

func TestOrderItemUnitPricePrefersOffer(t *testing.T) {
	offer := 79.0
	item := OrderItem{Price: 99, OfferPrice: &offer}
	assert.Equal(t, 79.0, item.UnitPrice())

	item.OfferPrice = nil
	assert.Equal(t, 99.0, item.UnitPrice())
}

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, status.Valid())
	}
	assert.False(t, OrderStatus("Returned").Valid())
	assert.False(t, OrderStatus("pending").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	assert.True(t, PaymentMethodCard.Valid())
	assert.True(t, PaymentMethodCOD.Valid())
	assert.False(t, PaymentMethod("UPI").Valid())
}
