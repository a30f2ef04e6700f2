// internal/models/product.go
package models

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
)

// Review lives embedded on its product as a jsonb array element, so review
// volume is bounded only by row size, matching the source data model.
type Review struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

type Reviews []Review

func (r Reviews) Value() (driver.Value, error)  { return jsonbValue(r) }
func (r *Reviews) Scan(value interface{}) error { return jsonbScan(value, r) }

// MeanRating is the aggregate the product row stores: the arithmetic mean of
// all review ratings, 0 when there are none.
func (r Reviews) MeanRating() float64 {
	if len(r) == 0 {
		return 0
	}
	sum := 0
	for _, rev := range r {
		sum += rev.Rating
	}
	return float64(sum) / float64(len(r))
}

type Product struct {
	BaseModel
	Name             string         `json:"name" gorm:"size:255;not null"`
	ShortDescription string         `json:"short_description" gorm:"size:500"`
	Description      string         `json:"description" gorm:"type:text"`
	Price            float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OfferPrice       *float64       `json:"offer_price,omitempty" gorm:"type:decimal(10,2)"`
	Category         string         `json:"category" gorm:"size:100;index"`
	ImageURL         string         `json:"image_url" gorm:"size:500"`
	Images           pq.StringArray `json:"images" gorm:"type:text[]"`
	VideoURL         string         `json:"video_url,omitempty" gorm:"size:500"`
	Stock            int            `json:"stock" gorm:"default:0"`
	DeliveryFee      float64        `json:"delivery_fee" gorm:"type:decimal(10,2);default:0"`
	Rating           float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	Reviews          Reviews        `json:"reviews" gorm:"type:jsonb"`
}

// EffectivePrice is the price a cart line pays: the offer price when one is
// set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	return p.Price
}
