package models

import "time"

// StoreItem is purchasable reference data. No stock tracking.
type StoreItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Price       int64  `json:"price" gorm:"not null;default:0"`
	Category    string `json:"category" gorm:"index"`
	Image       string `json:"image"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
