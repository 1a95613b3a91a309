package models

import "time"

// CompetenceRewardIncrement is the fixed experience credited to a competence
// per contributing mission completion.
const CompetenceRewardIncrement = 10

// Competence is a skill track.
type Competence struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	MaxLevel    int    `json:"max_level" gorm:"default:10"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserCompetence is per-user skill progress. Created at level 1 on first
// reward; experience accumulates by a fixed increment, level is not
// recomputed from experience.
type UserCompetence struct {
	ID           uint  `json:"id" gorm:"primaryKey"`
	UserID       uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_user_competence,priority:1"`
	CompetenceID uint  `json:"competence_id" gorm:"not null;uniqueIndex:idx_user_competence,priority:2"`
	Level        int   `json:"level" gorm:"default:1"`
	Experience   int64 `json:"experience" gorm:"default:0"`

	Competence *Competence `json:"competence,omitempty" gorm:"foreignKey:CompetenceID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
