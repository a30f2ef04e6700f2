// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bazaarline/storefront-backend/internal/models"
)

func productFixture(name string, price float64, offer *float64, deliveryFee float64) *models.Product {
	p := &models.Product{
		Name:        name,
		Price:       price,
		OfferPrice:  offer,
		DeliveryFee: deliveryFee,
	}
	p.ID = uuid.New()
	return p
}

func TestCartAddMergesDuplicateLines(t *testing.T) {
	cart := &Cart{}
	product := productFixture("Mug", 120, nil, 0)

	cart.Add(product)
	cart.Add(product)
	cart.Add(product)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestCartAddKeepsDistinctProductsApart(t *testing.T) {
	cart := &Cart{}
	cart.Add(productFixture("Mug", 120, nil, 0))
	cart.Add(productFixture("Plate", 80, nil, 0))

	assert.Len(t, cart.Lines, 2)
}

func TestCartSetQuantityBelowOneRemovesLine(t *testing.T) {
	cart := &Cart{}
	product := productFixture("Mug", 120, nil, 0)
	cart.Add(product)

	cart.SetQuantity(product.ID.String(), 0)
	assert.Empty(t, cart.Lines)

	cart.Add(product)
	cart.SetQuantity(product.ID.String(), -3)
	assert.Empty(t, cart.Lines)
}

func TestCartSetQuantityUpdatesLine(t *testing.T) {
	cart := &Cart{}
	product := productFixture("Mug", 120, nil, 0)
	cart.Add(product)

	cart.SetQuantity(product.ID.String(), 5)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestCartTotalsUseOfferPrice(t *testing.T) {
	offer := 90.0
	cart := &Cart{}
	cart.Add(productFixture("Mug", 120, &offer, 10))
	cart.SetQuantity(cart.Lines[0].ProductID, 2)

	// offer price wins over list price; delivery is per unit
	assert.Equal(t, 180.0, cart.Subtotal())
	assert.Equal(t, 20.0, cart.DeliveryTotal())
	assert.Equal(t, 200.0, cart.GrandTotal())
}

func TestCartTotalsAcrossLines(t *testing.T) {
	offer := 50.0
	cart := &Cart{}
	cart.Add(productFixture("Mug", 120, nil, 0))
	cart.Add(productFixture("Plate", 80, &offer, 15))

	assert.Equal(t, 170.0, cart.Subtotal())
	assert.Equal(t, 15.0, cart.DeliveryTotal())
	assert.Equal(t, 185.0, cart.GrandTotal())
}

func TestEmptyCartTotalsAreZero(t *testing.T) {
	cart := &Cart{}
	assert.Equal(t, 0.0, cart.Subtotal())
	assert.Equal(t, 0.0, cart.GrandTotal())
}

func TestCartServiceIsolatesUsers(t *testing.T) {
	svc := NewCartService(nil)
	product := productFixture("Mug", 120, nil, 0)

	svc.carts["alice"] = &Cart{}
	svc.carts["alice"].Add(product)

	assert.Len(t, svc.GetCart("alice").Lines, 1)
	assert.Empty(t, svc.GetCart("bob").Lines)
}

func TestCartServiceClearCart(t *testing.T) {
	svc := NewCartService(nil)
	product := productFixture("Mug", 120, nil, 0)

	svc.carts["alice"] = &Cart{}
	svc.carts["alice"].Add(product)

	svc.ClearCart("alice")
	assert.Empty(t, svc.GetCart("alice").Lines)
}

func TestCartServiceSnapshotIsACopy(t *testing.T) {
	svc := NewCartService(nil)
	product := productFixture("Mug", 120, nil, 0)

	svc.carts["alice"] = &Cart{}
	svc.carts["alice"].Add(product)

	snapshot := svc.GetCart("alice")
	snapshot.Lines[0].Quantity = 99

	assert.Equal(t, 1, svc.GetCart("alice").Lines[0].Quantity)
}
