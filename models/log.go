package models

import "time"

// Log event types written by the services.
const (
	EventMissionCompleted = "mission_completed"
	EventRankUp           = "rank_up"
	EventStorePurchase    = "store_purchase"
)

// Log is an append-only audit record. Rows are never mutated or deleted.
type Log struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	EventType   string         `json:"event_type" gorm:"not null;index"`
	Description string         `json:"description" gorm:"type:text"`
	Data        map[string]any `json:"data" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
