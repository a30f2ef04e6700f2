// internal/models/product_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanRatingEmptyIsZero(t *testing.T) {
	var reviews Reviews
	assert.Equal(t, 0.0, reviews.MeanRating())
}

func TestMeanRatingIsArithmeticMean(t *testing.T) {
	reviews := Reviews{
		{ID: "r1", Rating: 5},
		{ID: "r2", Rating: 4},
		{ID: "r3", Rating: 2},
	}
	assert.InDelta(t, 11.0/3.0, reviews.MeanRating(), 1e-9)
}

func TestMeanRatingSingleReview(t *testing.T) {
	reviews := Reviews{{ID: "r1", Rating: 3}}
	assert.Equal(t, 3.0, reviews.MeanRating())
}

func TestEffectivePricePrefersOffer(t *testing.T) {
	offer := 149.0
	product := &Product{Price: 199, OfferPrice: &offer}
	assert.Equal(t, 149.0, product.EffectivePrice())

	product.OfferPrice = nil
	assert.Equal(t, 199.0, product.EffectivePrice())
}
