// internal/models/user.go
package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Address is embedded on the user document as a jsonb array element, never a
// separate collection. Orders copy one of these at checkout time.
type Address struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Name     string `json:"name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	District string `json:"district"`
	Phone    string `json:"phone"`
}

type Addresses []Address

func (a Addresses) Value() (driver.Value, error)  { return jsonbValue(a) }
func (a *Addresses) Scan(value interface{}) error { return jsonbScan(value, a) }

// FindByID returns the address with the given id, or nil.
func (a Addresses) FindByID(id string) *Address {
	for i := range a {
		if a[i].ID == id {
			return &a[i]
		}
	}
	return nil
}

type User struct {
	BaseModel
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string         `json:"name" gorm:"size:100"`
	Phone        string         `json:"phone" gorm:"size:20"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"`
	Role         UserRole       `json:"role" gorm:"type:varchar(20);default:'customer'"`
	Addresses    Addresses      `json:"addresses" gorm:"type:jsonb"`
	Wishlist     pq.StringArray `json:"wishlist" gorm:"type:text[]"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// WishlistContains reports set membership; the wishlist is kept
// duplicate-free at mutation time, not by a storage constraint.
func (u *User) WishlistContains(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleWishlist flips membership of productID and reports whether it is
// present afterwards.
func (u *User) ToggleWishlist(productID string) bool {
	for i, id := range u.Wishlist {
		if id == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return false
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	return true
}

// UpsertAddress replaces the address with a matching id or appends it.
func (u *User) UpsertAddress(addr Address) {
	if addr.ID == "" {
		addr.ID = uuid.NewString()
	}
	for i := range u.Addresses {
		if u.Addresses[i].ID == addr.ID {
			u.Addresses[i] = addr
			return
		}
	}
	u.Addresses = append(u.Addresses, addr)
}

// RemoveAddress drops the address with the given id and reports whether it
// was present.
func (u *User) RemoveAddress(id string) bool {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
			return true
		}
	}
	return false
}
