// internal/models/settings.go
package models

import "github.com/lib/pq"

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = "main"

// ShopSettings is a singleton document, lazily created with defaults the
// first time it is read.
type ShopSettings struct {
	ID            string         `json:"id" gorm:"primaryKey;size:10"`
	ShopName      string         `json:"shop_name" gorm:"size:100"`
	Address       string         `json:"address" gorm:"size:500"`
	Phone         string         `json:"phone" gorm:"size:20"`
	Whatsapp      string         `json:"whatsapp" gorm:"size:20"`
	HomeBannerURL string         `json:"home_banner_url" gorm:"size:500"`
	BannerImages  pq.StringArray `json:"banner_images" gorm:"type:text[]"`
}

// DefaultShopSettings are written on first read when no settings row exists.
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		ID:       SettingsID,
		ShopName: "Bazaarline Store",
		Address:  "Shop 12, Main Market Road",
		Phone:    "+91 98000 00000",
		Whatsapp: "+91 98000 00000",
	}
}
