package model

import (
	"time"

	"gorm.io/datatypes"
)

// Model statuses. Status is a plain string column; these are the values the
// application itself writes.
const (
	StatusDraft    = "draft"
	StatusTraining = "training"
	StatusTrained  = "trained"
)

// Model is a user-owned neural network description. Architecture is an opaque
// JSON blob ({"layers": [...]}) stored and returned as-is; nothing in this
// system interprets or executes it.
type Model struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Architecture datatypes.JSON `json:"architecture"`
	Status       string         `gorm:"size:32;not null;default:draft" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
