package worker

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carnage-ai/internal/model"
	"carnage-ai/internal/repository"
)

type recordingAcknowledger struct {
	acks     int
	nacks    int
	requeued bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acks++
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacks++
	a.requeued = a.requeued || requeue
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacks++
	a.requeued = a.requeued || requeue
	return nil
}

func newWorkerFixture(t *testing.T) (*TrainingStatusWorker, *repository.TrainingSessionRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TrainingSession{}, &model.Model{}))

	repo := repository.NewTrainingSessionRepository(db)
	return NewTrainingStatusWorker(nil, repo, "training.status"), repo
}

func delivery(ack amqp.Acknowledger, body string) amqp.Delivery {
	return amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body:         []byte(body),
	}
}

func TestHandleDeliveryAppliesStatus(t *testing.T) {
	w, repo := newWorkerFixture(t)

	session := &model.TrainingSession{
		ModelID:      1,
		UserID:       1,
		Epochs:       10,
		BatchSize:    32,
		LearningRate: 0.01,
		Status:       model.TrainingSessionPending,
	}
	require.NoError(t, repo.Create(session))

	ack := &recordingAcknowledger{}
	w.handleDelivery(delivery(ack, fmt.Sprintf(`{"session_id":%d,"status":"running"}`, session.ID)))

	assert.Equal(t, 1, ack.acks)
	assert.Zero(t, ack.nacks)

	sessions, err := repo.ListByUserID(1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "running", sessions[0].Status)
}

func TestHandleDeliveryNacksBadJSON(t *testing.T) {
	w, _ := newWorkerFixture(t)

	ack := &recordingAcknowledger{}
	w.handleDelivery(delivery(ack, `not json`))

	assert.Zero(t, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeued, "bad messages must not requeue")
}

func TestHandleDeliveryNacksMalformedUpdate(t *testing.T) {
	w, _ := newWorkerFixture(t)

	ack := &recordingAcknowledger{}
	w.handleDelivery(delivery(ack, `{"session_id":0,"status":"running"}`))
	w.handleDelivery(delivery(ack, `{"session_id":7,"status":""}`))

	assert.Zero(t, ack.acks)
	assert.Equal(t, 2, ack.nacks)
	assert.False(t, ack.requeued)
}

func TestHandleDeliveryNacksUnknownSession(t *testing.T) {
	w, _ := newWorkerFixture(t)

	ack := &recordingAcknowledger{}
	w.handleDelivery(delivery(ack, `{"session_id":99,"status":"running"}`))

	assert.Zero(t, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeued)
}
