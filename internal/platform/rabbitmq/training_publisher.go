package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"carnage-ai/internal/model"
)

// TrainingRequestPublisher hands newly recorded training sessions to the
// external trainer over a durable queue. The trainer reports progress back on
// the status queue; this process never runs training itself.
type TrainingRequestPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewTrainingRequestPublisher(conn *amqp.Connection, queueName string) *TrainingRequestPublisher {
	return &TrainingRequestPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *TrainingRequestPublisher) PublishRequest(ctx context.Context, session model.TrainingSession) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal training request failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish training request failed: %w", err)
	}
	return nil
}
