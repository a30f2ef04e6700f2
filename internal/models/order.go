// internal/models/order.go
package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// OrderItem is a snapshot of the product at purchase time, not a live
// reference; later product edits never change a placed order.
type OrderItem struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"image_url"`
	Price       float64  `json:"price"`
	OfferPrice  *float64 `json:"offer_price,omitempty"`
	DeliveryFee float64  `json:"delivery_fee"`
	Quantity    int      `json:"quantity"`
}

// UnitPrice is what the line actually paid per unit.
func (i OrderItem) UnitPrice() float64 {
	if i.OfferPrice != nil {
		return *i.OfferPrice
	}
	return i.Price
}

type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error)  { return jsonbValue(o) }
func (o *OrderItems) Scan(value interface{}) error { return jsonbScan(value, o) }

type StatusEntry struct {
	Status    OrderStatus `json:"status"`
	Comment   string      `json:"comment,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type StatusHistory []StatusEntry

func (h StatusHistory) Value() (driver.Value, error)  { return jsonbValue(h) }
func (h *StatusHistory) Scan(value interface{}) error { return jsonbScan(value, h) }

// Last returns the newest entry; history is append-only so this is the
// current status of record.
func (h StatusHistory) Last() *StatusEntry {
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

// ShippingDetails is the address copied onto the order at checkout, decoupled
// from later edits to the user's address book.
type ShippingDetails struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	District string `json:"district"`
	Phone    string `json:"phone"`
}

func (s ShippingDetails) Value() (driver.Value, error)  { return jsonbValue(s) }
func (s *ShippingDetails) Scan(value interface{}) error { return jsonbScan(value, s) }

type Order struct {
	BaseModel
	UserID          uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	Items           OrderItems      `json:"items" gorm:"type:jsonb"`
	TotalAmount     float64         `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	DeliveryFee     float64         `json:"delivery_fee" gorm:"type:decimal(10,2);default:0"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	StatusHistory   StatusHistory   `json:"status_history" gorm:"type:jsonb"`
	ShippingDetails ShippingDetails `json:"shipping_details" gorm:"type:jsonb"`
	PaymentMethod   PaymentMethod   `json:"payment_method" gorm:"type:varchar(10);not null"`
	CustomerEmail   string          `json:"customer_email" gorm:"size:255"`
	CustomerPhone   string          `json:"customer_phone" gorm:"size:20"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// AppendStatus records a transition. The status column and the history are
// only ever written through here, so they cannot drift apart.
func (o *Order) AppendStatus(status OrderStatus, comment string, at time.Time) {
	o.StatusHistory = append(o.StatusHistory, StatusEntry{
		Status:    status,
		Comment:   comment,
		Timestamp: at,
	})
	o.Status = status
}

// CurrentStatus derives the status from the history; the column exists for
// indexed filtering only.
func (o *Order) CurrentStatus() OrderStatus {
	if last := o.StatusHistory.Last(); last != nil {
		return last.Status
	}
	return o.Status
}

// CancellationWindow is how long after placement a customer may cancel a
// still-Pending order.
const CancellationWindow = 24 * time.Hour

// CanCancel is the one real business rule in the system: cancellation
// succeeds iff the order is still Pending and no older than the window.
func (o *Order) CanCancel(now time.Time) bool {
	return o.CurrentStatus() == OrderStatusPending &&
		now.Sub(o.CreatedAt) <= CancellationWindow
}
