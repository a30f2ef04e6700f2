// internal/services/settings_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bazaarline/storefront-backend/internal/models"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

type SettingsService struct {
	db *gorm.DB
}

type UpdateSettingsRequest struct {
	ShopName      string   `json:"shop_name,omitempty" validate:"omitempty,min=2,max=100"`
	Address       string   `json:"address,omitempty"`
	Phone         string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Whatsapp      string   `json:"whatsapp,omitempty" validate:"omitempty,phone"`
	HomeBannerURL string   `json:"home_banner_url,omitempty"`
	BannerImages  []string `json:"banner_images,omitempty"`
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings reads the singleton settings row, lazily creating it with
// defaults on first read. Repeat reads return the stored row as-is.
func (s *SettingsService) GetSettings() (*models.ShopSettings, error) {
	var settings models.ShopSettings
	err := s.db.Where("id = ?", models.SettingsID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	settings = models.DefaultShopSettings()
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	return &settings, nil
}

func (s *SettingsService) UpdateSettings(req *UpdateSettingsRequest) (*models.ShopSettings, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	if req.ShopName != "" {
		settings.ShopName = req.ShopName
	}
	if req.Address != "" {
		settings.Address = req.Address
	}
	if req.Phone != "" {
		settings.Phone = req.Phone
	}
	if req.Whatsapp != "" {
		settings.Whatsapp = req.Whatsapp
	}
	if req.HomeBannerURL != "" {
		settings.HomeBannerURL = req.HomeBannerURL
	}
	if req.BannerImages != nil {
		settings.BannerImages = req.BannerImages
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}
