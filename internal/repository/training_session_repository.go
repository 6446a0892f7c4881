package repository

import (
	"fmt"

	"gorm.io/gorm"

	"carnage-ai/internal/model"
)

type TrainingSessionRepository struct {
	db *gorm.DB
}

func NewTrainingSessionRepository(db *gorm.DB) *TrainingSessionRepository {
	return &TrainingSessionRepository{db: db}
}

func (r *TrainingSessionRepository) Create(session *model.TrainingSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create training session failed: %w", err)
	}
	return nil
}

// ListByUserID returns the caller's sessions joined with the name of the
// model each one references. The join is LEFT so sessions whose model was
// deleted still list (with an empty name); model deletion does not cascade.
func (r *TrainingSessionRepository) ListByUserID(userID uint) ([]model.TrainingSessionWithModel, error) {
	var sessions []model.TrainingSessionWithModel
	err := r.db.Model(&model.TrainingSession{}).
		Select("training_sessions.*, models.name AS model_name").
		Joins("LEFT JOIN models ON models.id = training_sessions.model_id").
		Where("training_sessions.user_id = ?", userID).
		Order("training_sessions.created_at DESC").
		Scan(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list training sessions failed: %w", err)
	}
	return sessions, nil
}

// UpdateStatus records a status reported by the external trainer. This
// process never decides transitions itself.
func (r *TrainingSessionRepository) UpdateStatus(sessionID uint, status string) error {
	result := r.db.Model(&model.TrainingSession{}).
		Where("id = ?", sessionID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update training session status failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
