// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
)

// CartLine is a product snapshot plus a quantity that never drops below 1;
// pushing it to 0 removes the line instead.
type CartLine struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"image_url"`
	Price       float64  `json:"price"`
	OfferPrice  *float64 `json:"offer_price,omitempty"`
	DeliveryFee float64  `json:"delivery_fee"`
	Quantity    int      `json:"quantity"`
}

// UnitPrice is the offer price when present, the list price otherwise.
func (l CartLine) UnitPrice() float64 {
	if l.OfferPrice != nil {
		return *l.OfferPrice
	}
	return l.Price
}

type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Subtotal sums unit price times quantity across lines.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.UnitPrice() * float64(line.Quantity)
	}
	return total
}

// DeliveryTotal sums each line's per-unit delivery fee times quantity.
func (c *Cart) DeliveryTotal() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.DeliveryFee * float64(line.Quantity)
	}
	return total
}

// GrandTotal is subtotal plus delivery.
func (c *Cart) GrandTotal() float64 {
	return c.Subtotal() + c.DeliveryTotal()
}

// Add merges into an existing line by incrementing its quantity, or appends a
// new line with quantity 1.
func (c *Cart) Add(product *models.Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID.String() {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID:   product.ID.String(),
		Name:        product.Name,
		ImageURL:    product.ImageURL,
		Price:       product.Price,
		OfferPrice:  product.OfferPrice,
		DeliveryFee: product.DeliveryFee,
		Quantity:    1,
	})
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			if quantity < 1 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = quantity
			}
			return
		}
	}
}

// Remove drops the line for productID if present.
func (c *Cart) Remove(productID string) {
	c.SetQuantity(productID, 0)
}

// CartService keeps carts in process memory only. A restart discards
// them, and nothing is ever persisted.
type CartService struct {
	db    *gorm.DB
	mtx   sync.Mutex
	carts map[string]*Cart
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:    db,
		carts: make(map[string]*Cart),
	}
}

func (s *CartService) cartFor(userID string) *Cart {
	cart, exists := s.carts[userID]
	if !exists {
		cart = &Cart{}
		s.carts[userID] = cart
	}
	return cart
}

func (s *CartService) GetCart(userID string) *Cart {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.snapshot(s.cartFor(userID))
}

// AddToCart resolves the product and merges it into the user's cart; the
// stored line is a price snapshot, not a live reference.
func (s *CartService) AddToCart(userID string, productID uuid.UUID) (*Cart, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cartFor(userID)
	cart.Add(&product)
	return s.snapshot(cart), nil
}

func (s *CartService) UpdateQuantity(userID, productID string, quantity int) *Cart {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cartFor(userID)
	cart.SetQuantity(productID, quantity)
	return s.snapshot(cart)
}

func (s *CartService) RemoveFromCart(userID, productID string) *Cart {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cart := s.cartFor(userID)
	cart.Remove(productID)
	return s.snapshot(cart)
}

func (s *CartService) ClearCart(userID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.carts, userID)
}

// snapshot copies the cart so callers never share the locked slice.
func (s *CartService) snapshot(cart *Cart) *Cart {
	lines := make([]CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return &Cart{Lines: lines}
}
