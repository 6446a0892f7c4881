package app

import (
	"context"
	"errors"
	"log"

	"carnage-ai/internal/model"
	"carnage-ai/internal/repository"
)

// ErrTrainingInvalid covers absent fields and zero values alike: the recorded
// contract treats epochs/batch_size/learning_rate of zero as missing.
var ErrTrainingInvalid = errors.New("model_id, epochs, batch_size and learning_rate are required")

// TrainingRequestPublisher hands a recorded session to the external trainer.
// Implemented by rabbitmq.TrainingRequestPublisher.
type TrainingRequestPublisher interface {
	PublishRequest(ctx context.Context, session model.TrainingSession) error
}

type TrainingService struct {
	sessionRepo *repository.TrainingSessionRepository
	modelRepo   *repository.ModelRepository
	publisher   TrainingRequestPublisher
}

type CreateTrainingInput struct {
	UserID       uint
	ModelID      uint
	Epochs       int
	BatchSize    int
	LearningRate float64
}

func NewTrainingService(
	sessionRepo *repository.TrainingSessionRepository,
	modelRepo *repository.ModelRepository,
	publisher TrainingRequestPublisher,
) *TrainingService {
	return &TrainingService{
		sessionRepo: sessionRepo,
		modelRepo:   modelRepo,
		publisher:   publisher,
	}
}

func (s *TrainingService) Create(ctx context.Context, input CreateTrainingInput) (*model.TrainingSession, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if input.ModelID == 0 || input.Epochs <= 0 || input.BatchSize <= 0 || input.LearningRate <= 0 {
		return nil, ErrTrainingInvalid
	}

	owned, err := s.modelRepo.GetByIDAndUserID(input.ModelID, input.UserID)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		return nil, ErrModelNotFound
	}

	session := &model.TrainingSession{
		ModelID:      input.ModelID,
		UserID:       input.UserID,
		Epochs:       input.Epochs,
		BatchSize:    input.BatchSize,
		LearningRate: input.LearningRate,
		Status:       model.TrainingSessionPending,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	// Best effort: the row is the record of truth, the queue is a hint to the
	// external trainer. A publish failure must not fail the request.
	if s.publisher != nil {
		if err := s.publisher.PublishRequest(ctx, *session); err != nil {
			log.Printf("publish training request for session %d failed: %v", session.ID, err)
		}
	}

	return session, nil
}

func (s *TrainingService) List(userID uint) ([]model.TrainingSessionWithModel, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.sessionRepo.ListByUserID(userID)
}
