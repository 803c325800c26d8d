package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditPayload asks the worker to audit one lead
type AuditPayload struct {
	LeadID      string    `json:"lead_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher is the slice of *amqp.Channel the producer needs
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishAudit(ctx context.Context, payload AuditPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.LeadID,
			Timestamp:    payload.RequestedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish audit to rabbitmq: %w", err)
	}

	return nil
}
