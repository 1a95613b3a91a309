package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser = "user"
	RoleHR   = "hr"
)

// User is a platform participant. Experience and mana only ever grow,
// except for explicit store spend.
type User struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	Email         string `json:"email" gorm:"uniqueIndex;not null"`
	Password      string `json:"-" gorm:"not null"`
	Role          string `json:"role" gorm:"type:varchar(16);default:'user'"`
	Experience    int64  `json:"experience" gorm:"default:0"`
	Mana          int64  `json:"mana" gorm:"default:0"`
	CurrentRankID uint   `json:"current_rank_id" gorm:"default:1"`
	ActiveThemeID *uint  `json:"active_theme_id,omitempty"`

	Rank  *Rank  `json:"rank,omitempty" gorm:"foreignKey:CurrentRankID"`
	Theme *Theme `json:"theme,omitempty" gorm:"foreignKey:ActiveThemeID"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
