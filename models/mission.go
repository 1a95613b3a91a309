package models

import "time"

const (
	MissionStatusDraft     = "draft"
	MissionStatusScheduled = "scheduled"
	MissionStatusPublished = "published"
)

// UserMission statuses. Transitions are forward-only:
// in_progress → completed | failed.
const (
	UserMissionInProgress = "in_progress"
	UserMissionCompleted  = "completed"
	UserMissionFailed     = "failed"
)

// Mission is a completable task definition. Reward payloads are explicit
// typed columns, not open-ended documents.
type Mission struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Title            string `json:"title" gorm:"not null"`
	Description      string `json:"description" gorm:"type:text"`
	ExperienceReward int64  `json:"experience_reward" gorm:"default:0"`
	ManaReward       int64  `json:"mana_reward" gorm:"default:0"`
	RequiredRankID   uint   `json:"required_rank_id" gorm:"not null;index"`
	Category         string `json:"category" gorm:"index"`
	Branch           string `json:"branch" gorm:"index"`

	// Ordered competence ids credited on completion; optional artifact grant.
	CompetenceRewards []uint `json:"competence_rewards" gorm:"serializer:json"`
	ArtifactID        *uint  `json:"artifact_id,omitempty"`

	Requirements []string `json:"requirements" gorm:"serializer:json"`
	Steps        []string `json:"steps" gorm:"serializer:json"`

	// Publishing state. Player-facing views shadow status with the per-user
	// one; publish_at is only ever set while scheduled.
	Status    string     `json:"status" gorm:"default:'published';index"` // draft | scheduled | published
	PublishAt *time.Time `json:"publish_at,omitempty"`

	RequiredRank *Rank     `json:"required_rank,omitempty" gorm:"foreignKey:RequiredRankID"`
	Artifact     *Artifact `json:"artifact,omitempty" gorm:"foreignKey:ArtifactID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserMission is per-user progress on a mission, unique per (user, mission).
// The unique index arbitrates concurrent starts.
type UserMission struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_mission,priority:1"`
	MissionID   uint       `json:"mission_id" gorm:"not null;uniqueIndex:idx_user_mission,priority:2"`
	Status      string     `json:"status" gorm:"type:varchar(16);not null;default:'in_progress'"`
	Progress    int        `json:"progress" gorm:"default:0"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Evidence    string     `json:"evidence,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
