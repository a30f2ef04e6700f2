// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bazaarline/storefront-backend/internal/models"
)

func orderWithItems(items ...models.OrderItem) models.Order {
	return models.Order{Items: items}
}

func TestRankTopProductsByQuantity(t *testing.T) {
	orders := []models.Order{
		orderWithItems(
			models.OrderItem{ProductID: "mug", Name: "Mug", Price: 100, Quantity: 2},
			models.OrderItem{ProductID: "plate", Name: "Plate", Price: 50, Quantity: 1},
		),
		orderWithItems(
			models.OrderItem{ProductID: "mug", Name: "Mug", Price: 100, Quantity: 3},
		),
	}

	ranked := RankTopProducts(orders, 5)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "mug", ranked[0].ProductID)
	assert.Equal(t, 5, ranked[0].Quantity)
	assert.Equal(t, 500.0, ranked[0].Revenue)
	assert.Equal(t, "plate", ranked[1].ProductID)
}

func TestRankTopProductsUsesOfferPriceForRevenue(t *testing.T) {
	offer := 80.0
	orders := []models.Order{
		orderWithItems(models.OrderItem{ProductID: "mug", Name: "Mug", Price: 100, OfferPrice: &offer, Quantity: 2}),
	}

	ranked := RankTopProducts(orders, 5)
	assert.Equal(t, 160.0, ranked[0].Revenue)
}

func TestRankTopProductsHonorsLimit(t *testing.T) {
	orders := []models.Order{
		orderWithItems(
			models.OrderItem{ProductID: "a", Quantity: 3},
			models.OrderItem{ProductID: "b", Quantity: 2},
			models.OrderItem{ProductID: "c", Quantity: 1},
		),
	}

	ranked := RankTopProducts(orders, 2)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ProductID)
}

func TestRankTopProductsEmpty(t *testing.T) {
	assert.Empty(t, RankTopProducts(nil, 5))
}
