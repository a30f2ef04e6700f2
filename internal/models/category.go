// internal/models/category.go
package models

// Category is referenced from products by name only; deleting a category
// leaves products pointing at the old name untouched.
type Category struct {
	BaseModel
	Name     string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	ImageURL string `json:"image_url" gorm:"size:500"`
}

type Popup struct {
	BaseModel
	Message  string    `json:"message" gorm:"type:text;not null"`
	Type     PopupType `json:"type" gorm:"type:varchar(20);default:'info'"`
	IsActive bool      `json:"is_active" gorm:"default:false;index"`
}
