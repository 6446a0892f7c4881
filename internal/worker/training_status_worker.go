package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"carnage-ai/internal/repository"
)

// StatusUpdate is what the external trainer publishes on the status queue.
type StatusUpdate struct {
	SessionID uint   `json:"session_id"`
	Status    string `json:"status"`
}

// TrainingStatusWorker applies trainer-reported status updates to training
// session rows. It is the only writer of a session's status after creation;
// the HTTP surface never transitions it.
type TrainingStatusWorker struct {
	conn      *amqp.Connection
	repo      *repository.TrainingSessionRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTrainingStatusWorker(conn *amqp.Connection, repo *repository.TrainingSessionRepository, queueName string) *TrainingStatusWorker {
	return &TrainingStatusWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *TrainingStatusWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handleDelivery(d)
			}
		}
	}()

	return nil
}

// handleDelivery applies one status update. Undecodable, malformed, and
// unknown-session messages are nacked without requeue; nothing on the status
// queue is worth a retry loop.
func (w *TrainingStatusWorker) handleDelivery(d amqp.Delivery) {
	var update StatusUpdate
	if err := json.Unmarshal(d.Body, &update); err != nil {
		log.Printf("worker decode status update failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if update.SessionID == 0 || update.Status == "" {
		log.Printf("worker dropped malformed status update: %s", d.Body)
		_ = d.Nack(false, false)
		return
	}

	if err := w.repo.UpdateStatus(update.SessionID, update.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("worker status update for unknown session %d", update.SessionID)
		} else {
			log.Printf("worker persist status update failed: %v", err)
		}
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

func (w *TrainingStatusWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
