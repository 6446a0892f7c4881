package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"carnage-ai/internal/model"
)

type ModelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

func (r *ModelRepository) Create(m *model.Model) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("create model failed: %w", err)
	}
	return nil
}

// GetByIDAndUserID returns (nil, nil) both when the row does not exist and
// when it belongs to another user. Callers cannot tell the two apart.
func (r *ModelRepository) GetByIDAndUserID(modelID, userID uint) (*model.Model, error) {
	var m model.Model
	if err := r.db.Where("id = ? AND user_id = ?", modelID, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get model failed: %w", err)
	}
	return &m, nil
}

func (r *ModelRepository) ListByUserID(userID uint) ([]model.Model, error) {
	var models []model.Model
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list models failed: %w", err)
	}
	return models, nil
}

// UpdateByIDAndUserID applies the given column updates to the matching owned
// row. The caller always includes updated_at in the map.
func (r *ModelRepository) UpdateByIDAndUserID(modelID, userID uint, updates map[string]interface{}) error {
	if err := r.db.Model(&model.Model{}).
		Where("id = ? AND user_id = ?", modelID, userID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("update model failed: %w", err)
	}
	return nil
}

// DeleteByIDAndUserID reports how many rows matched so the service can
// distinguish a real delete from a miss.
func (r *ModelRepository) DeleteByIDAndUserID(modelID, userID uint) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", modelID, userID).Delete(&model.Model{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete model failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
