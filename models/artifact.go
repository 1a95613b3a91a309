package models

import "time"

const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Artifact is a collectible reward. Immutable reference data once created.
type Artifact struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image"`
	Rarity      string `json:"rarity" gorm:"type:varchar(16);default:'common'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserArtifact is an ownership record, at most one per (user, artifact).
// Re-granting is a no-op, never an error.
type UserArtifact struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_artifact,priority:1"`
	ArtifactID uint      `json:"artifact_id" gorm:"not null;uniqueIndex:idx_user_artifact,priority:2"`
	ObtainedAt time.Time `json:"obtained_at"`

	Artifact *Artifact `json:"artifact,omitempty" gorm:"foreignKey:ArtifactID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
