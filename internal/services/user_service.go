// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type SaveAddressRequest struct {
	ID       string `json:"id,omitempty"`
	Label    string `json:"label" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Street   string `json:"street" validate:"required,max=255"`
	City     string `json:"city" validate:"required,max=100"`
	District string `json:"district,omitempty" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"required,phone"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// ToggleWishlist adds the product when absent and removes it when present.
// The row lock serializes concurrent toggles so the wishlist stays a set.
func (s *UserService) ToggleWishlist(userID uuid.UUID, productID string) (*models.User, bool, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, false, errors.New("invalid product id")
	}

	var user models.User
	var present bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("user not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		present = user.ToggleWishlist(productID)
		return tx.Model(&user).Update("wishlist", user.Wishlist).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &user, present, nil
}

// GetWishlistProducts resolves the user's wishlist ids into products. Ids
// whose product has been deleted are skipped, not errors.
func (s *UserService) GetWishlistProducts(userID uuid.UUID) ([]models.Product, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if len(user.Wishlist) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := s.db.Where("id IN ?", []string(user.Wishlist)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist products: %w", err)
	}
	return products, nil
}

// SaveAddress creates or replaces one entry in the user's embedded address
// book under a row lock.
func (s *UserService) SaveAddress(userID uuid.UUID, req *SaveAddressRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("user not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		user.UpsertAddress(models.Address{
			ID:       req.ID,
			Label:    req.Label,
			Name:     req.Name,
			Street:   req.Street,
			City:     req.City,
			District: req.District,
			Phone:    req.Phone,
		})
		return tx.Model(&user).Update("addresses", user.Addresses).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) DeleteAddress(userID uuid.UUID, addressID string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("user not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !user.RemoveAddress(addressID) {
			return errors.New("address not found")
		}
		return tx.Model(&user).Update("addresses", user.Addresses).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCustomers backs the admin customer list.
func (s *UserService) GetCustomers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{}).Where("role = ?", models.UserRoleCustomer)

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "email", "last_login_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}
	return users, total, nil
}
