package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carnage-ai/internal/model"
	"carnage-ai/internal/session"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Model{}, &model.TrainingSession{}))
	return db
}

type fakeSessionStore struct {
	records map[string]*session.Record
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{records: make(map[string]*session.Record)}
}

func (s *fakeSessionStore) Create(_ context.Context, userID uint) (*session.Record, error) {
	record := &session.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.records[record.ID] = record
	return record, nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*session.Record, bool, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}
	return record, true, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.records, id)
	return nil
}

type fakeTrainingPublisher struct {
	published []model.TrainingSession
	fail      bool
}

func (p *fakeTrainingPublisher) PublishRequest(_ context.Context, session model.TrainingSession) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, session)
	return nil
}
