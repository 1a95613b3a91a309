package models

import "time"

// Rank is a progression tier. Ranks are totally ordered by MinExperience;
// mission eligibility compares rank ids directly (ids are ordinal, seeded
// in ascending MinExperience order).
type Rank struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	MinExperience int64  `json:"min_experience" gorm:"uniqueIndex;not null"`

	// Display-only requirement lists shown on the rank card.
	RequiredMissions    []uint `json:"required_missions" gorm:"serializer:json"`
	RequiredCompetences []uint `json:"required_competences" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
