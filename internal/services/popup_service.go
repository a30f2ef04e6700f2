// internal/services/popup_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type PopupService struct {
	db *gorm.DB
}

type SavePopupRequest struct {
	Message  string           `json:"message" validate:"required,min=1"`
	Type     models.PopupType `json:"type" validate:"required"`
	IsActive *bool            `json:"is_active,omitempty"`
}

func NewPopupService(db *gorm.DB) *PopupService {
	return &PopupService{db: db}
}

// GetPopups returns all popups when includeInactive is set (admin view) or
// only active ones (storefront banner).
func (s *PopupService) GetPopups(includeInactive bool) ([]models.Popup, error) {
	query := s.db.Order("created_at DESC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var popups []models.Popup
	if err := query.Find(&popups).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch popups: %w", err)
	}
	return popups, nil
}

func (s *PopupService) CreatePopup(req *SavePopupRequest) (*models.Popup, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Type.Valid() {
		return nil, errors.New("invalid popup type")
	}

	popup := &models.Popup{
		Message: req.Message,
		Type:    req.Type,
	}
	if req.IsActive != nil {
		popup.IsActive = *req.IsActive
	}

	if err := s.db.Create(popup).Error; err != nil {
		return nil, fmt.Errorf("failed to create popup: %w", err)
	}
	return popup, nil
}

func (s *PopupService) UpdatePopup(id uuid.UUID, req *SavePopupRequest) (*models.Popup, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Type.Valid() {
		return nil, errors.New("invalid popup type")
	}

	var popup models.Popup
	if err := s.db.First(&popup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("popup not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	popup.Message = req.Message
	popup.Type = req.Type
	if req.IsActive != nil {
		popup.IsActive = *req.IsActive
	}

	if err := s.db.Save(&popup).Error; err != nil {
		return nil, fmt.Errorf("failed to update popup: %w", err)
	}
	return &popup, nil
}

func (s *PopupService) TogglePopup(id uuid.UUID) (*models.Popup, error) {
	var popup models.Popup
	if err := s.db.First(&popup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("popup not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	popup.IsActive = !popup.IsActive
	if err := s.db.Save(&popup).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle popup: %w", err)
	}
	return &popup, nil
}

func (s *PopupService) DeletePopup(id uuid.UUID) error {
	var popup models.Popup
	if err := s.db.First(&popup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("popup not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&popup).Error; err != nil {
		return fmt.Errorf("failed to delete popup: %w", err)
	}
	return nil
}
