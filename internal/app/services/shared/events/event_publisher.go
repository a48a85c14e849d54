package events

import (
	"context"
	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Envelope is the payload stored on the event queue.
type Envelope struct {
	Event      string      `json:"event"`
	OccurredAt string      `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type rabbitMQPublisher struct {
	ch  *amqp.Channel
	log *zap.Logger
}

// NewRabbitMQPublisher declares the durable event queue and returns a
// publisher bound to it.
func NewRabbitMQPublisher(conn *amqp.Connection, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		constvars.RabbitMQEventQueueName, // name
		true,                             // durable
		false,                            // autoDelete
		false,                            // exclusive
		false,                            // noWait
		nil,                              // args
	)
	if err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{ch: ch, log: log}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	body, err := json.Marshal(Envelope{
		Event:      eventName,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Payload:    payload,
	})
	if err != nil {
		p.log.Error("failed to marshal event payload",
			zap.String(constvars.LoggingEventKey, eventName),
			zap.Error(err))
		return err
	}

	err = p.ch.PublishWithContext(ctx,
		"",                               // exchange
		constvars.RabbitMQEventQueueName, // routing key
		false,                            // mandatory
		false,                            // immediate
		amqp.Publishing{
			ContentType:  constvars.MIMEApplicationJSON,
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	if err != nil {
		p.log.Error("failed to publish event",
			zap.String(constvars.LoggingEventKey, eventName),
			zap.Error(err))
		return err
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured; events are dropped.
func NewNoopPublisher() contracts.EventPublisher {
	return &noopPublisher{}
}

func (p *noopPublisher) Publish(ctx context.Context, eventName string, payload interface{}) error {
	return nil
}
