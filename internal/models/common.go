// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// jsonbValue / jsonbScan back the embedded document arrays (reviews,
// addresses, order items, status history) stored as jsonb columns.
func jsonbValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, dest)
}

// Enums
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleCustomer UserRole = "customer"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodCOD  PaymentMethod = "COD"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodCOD
}

type ChatSender string

const (
	ChatSenderUser  ChatSender = "user"
	ChatSenderAdmin ChatSender = "admin"
)

func (s ChatSender) Valid() bool {
	return s == ChatSenderUser || s == ChatSenderAdmin
}

type PopupType string

const (
	PopupTypeInfo    PopupType = "info"
	PopupTypeWarning PopupType = "warning"
	PopupTypePromo   PopupType = "promo"
)

func (t PopupType) Valid() bool {
	switch t {
	case PopupTypeInfo, PopupTypeWarning, PopupTypePromo:
		return true
	}
	return false
}
