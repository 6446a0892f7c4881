package model

import "time"

// TrainingSessionPending is the only status this system ever writes itself.
// Transitions come from the external trainer via the status queue.
const TrainingSessionPending = "pending"

type TrainingSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ModelID      uint      `gorm:"not null;index" json:"model_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Epochs       int       `gorm:"not null" json:"epochs"`
	BatchSize    int       `gorm:"not null" json:"batch_size"`
	LearningRate float64   `gorm:"not null" json:"learning_rate"`
	Status       string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// TrainingSessionWithModel is the list-view row: a session joined with the
// name of the model it references.
type TrainingSessionWithModel struct {
	TrainingSession
	ModelName string `json:"model_name"`
}
