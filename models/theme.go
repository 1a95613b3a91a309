package models

import "time"

// Theme is an interface theme managed by HR. At most one theme is globally
// active; the flag lives in rows and is flipped by a transactional
// clear-all-set-one update, never held in memory.
type Theme struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"` // machine slug, e.g. "space"
	DisplayName string `json:"display_name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active" gorm:"default:false;index"`
	IsDefault   bool   `json:"is_default" gorm:"default:false"`
	IsCustom    bool   `json:"is_custom" gorm:"default:false"`
	CreatedBy   *uint  `json:"created_by,omitempty"`

	UserCategories []string          `json:"user_categories" gorm:"serializer:json"`
	Colors         map[string]string `json:"colors" gorm:"serializer:json"`
	Gradients      map[string]string `json:"gradients" gorm:"serializer:json"`
	Effects        map[string]string `json:"effects" gorm:"serializer:json"`
	Icons          map[string]string `json:"icons" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
