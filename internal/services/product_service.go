// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required,min=2,max=255"`
	ShortDescription string   `json:"short_description,omitempty" validate:"omitempty,max=500"`
	Description      string   `json:"description" validate:"required,min=10"`
	Price            float64  `json:"price" validate:"required,min=0.01"`
	OfferPrice       *float64 `json:"offer_price,omitempty" validate:"omitempty,min=0.01"`
	Category         string   `json:"category" validate:"required"`
	ImageURL         string   `json:"image_url,omitempty"`
	Images           []string `json:"images,omitempty"`
	VideoURL         string   `json:"video_url,omitempty"`
	Stock            int      `json:"stock" validate:"min=0"`
	DeliveryFee      float64  `json:"delivery_fee" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name             string   `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	ShortDescription *string  `json:"short_description,omitempty"`
	Description      string   `json:"description,omitempty" validate:"omitempty,min=10"`
	Price            float64  `json:"price,omitempty" validate:"omitempty,min=0.01"`
	OfferPrice       *float64 `json:"offer_price,omitempty"`
	Category         string   `json:"category,omitempty"`
	ImageURL         string   `json:"image_url,omitempty"`
	Images           []string `json:"images,omitempty"`
	VideoURL         *string  `json:"video_url,omitempty"`
	Stock            *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
	DeliveryFee      *float64 `json:"delivery_fee,omitempty" validate:"omitempty,min=0"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Category string   `json:"category,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
	InStock  *bool    `json:"in_stock,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Price:            req.Price,
		OfferPrice:       req.OfferPrice,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		Images:           req.Images,
		VideoURL:         req.VideoURL,
		Stock:            req.Stock,
		DeliveryFee:      req.DeliveryFee,
		Reviews:          models.Reviews{},
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.OfferPrice != nil {
		// An explicit zero clears the offer price
		if *req.OfferPrice > 0 {
			updates["offer_price"] = *req.OfferPrice
		} else {
			updates["offer_price"] = nil
		}
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.DeliveryFee != nil {
		updates["delivery_fee"] = *req.DeliveryFee
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.First(&product, id)
	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Soft delete; placed orders keep their own item snapshots
	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	// Apply filters
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("COALESCE(offer_price, price) >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("COALESCE(offer_price, price) <= ?", *params.PriceMax)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "rating"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	// Apply pagination
	query = utils.ApplyPagination(query, params.PaginationParams)

	// Execute query
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// AddReview appends a review and recomputes the mean rating inside one
// row-locked transaction, so concurrent reviewers cannot overwrite each
// other's aggregate.
func (s *ProductService) AddReview(productID uuid.UUID, user *models.User, req *AddReviewRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if user.IsAdmin() {
		return nil, errors.New("admins cannot review products")
	}

	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		review := models.Review{
			ID:       uuid.NewString(),
			UserID:   user.ID.String(),
			UserName: user.Name,
			Rating:   req.Rating,
			Comment:  req.Comment,
			Date:     time.Now(),
		}

		product.Reviews = append(product.Reviews, review)
		product.Rating = product.Reviews.MeanRating()

		return tx.Model(&product).Updates(map[string]interface{}{
			"reviews": product.Reviews,
			"rating":  product.Rating,
		}).Error
	})

	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteReview is admin-only; the mean rating resets to 0 when the last
// review goes.
func (s *ProductService) DeleteReview(productID uuid.UUID, reviewID string) (*models.Product, error) {
	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		remaining := make(models.Reviews, 0, len(product.Reviews))
		found := false
		for _, review := range product.Reviews {
			if review.ID == reviewID {
				found = true
				continue
			}
			remaining = append(remaining, review)
		}
		if !found {
			return errors.New("review not found")
		}

		product.Reviews = remaining
		product.Rating = remaining.MeanRating()

		return tx.Model(&product).Updates(map[string]interface{}{
			"reviews": product.Reviews,
			"rating":  product.Rating,
		}).Error
	})

	if err != nil {
		return nil, err
	}
	return &product, nil
}
