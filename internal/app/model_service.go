package app

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"carnage-ai/internal/model"
	"carnage-ai/internal/repository"
)

var (
	ErrModelNameRequired = errors.New("model name is required")
	ErrModelNotFound     = errors.New("model not found")
)

type ModelService struct {
	modelRepo *repository.ModelRepository
}

type CreateModelInput struct {
	UserID       uint
	Name         string
	Description  string
	Architecture datatypes.JSON
}

// UpdateModelInput carries only the fields present in the PATCH body. Nil
// means "leave unchanged"; Architecture uses nil-slice for the same purpose.
type UpdateModelInput struct {
	Name         *string
	Description  *string
	Architecture datatypes.JSON
	Status       *string
}

func NewModelService(modelRepo *repository.ModelRepository) *ModelService {
	return &ModelService{modelRepo: modelRepo}
}

func (s *ModelService) Create(input CreateModelInput) (*model.Model, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrModelNameRequired
	}

	architecture := input.Architecture
	if architecture == nil {
		architecture = datatypes.JSON(`{"layers":[]}`)
	}

	m := &model.Model{
		UserID:       input.UserID,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Architecture: architecture,
		Status:       model.StatusDraft,
	}
	if err := s.modelRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ModelService) Get(userID, modelID uint) (*model.Model, error) {
	if userID == 0 || modelID == 0 {
		return nil, ErrModelNotFound
	}
	m, err := s.modelRepo.GetByIDAndUserID(modelID, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrModelNotFound
	}
	return m, nil
}

func (s *ModelService) List(userID uint) ([]model.Model, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.modelRepo.ListByUserID(userID)
}

// Update applies only the supplied fields. The update timestamp refreshes
// even for an empty patch.
func (s *ModelService) Update(userID, modelID uint, input UpdateModelInput) (*model.Model, error) {
	existing, err := s.Get(userID, modelID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Architecture != nil {
		updates["architecture"] = input.Architecture
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if err := s.modelRepo.UpdateByIDAndUserID(existing.ID, userID, updates); err != nil {
		return nil, err
	}
	return s.Get(userID, modelID)
}

// Delete removes the owned row; a miss surfaces as not-found rather than
// silent success. Dependent training sessions are left in place.
func (s *ModelService) Delete(userID, modelID uint) error {
	if userID == 0 || modelID == 0 {
		return ErrModelNotFound
	}
	rows, err := s.modelRepo.DeleteByIDAndUserID(modelID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrModelNotFound
	}
	return nil
}
