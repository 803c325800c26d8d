package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/auditlock"
	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
)

// AuditRunner runs one audit. It must go through the shared audit lock.
type AuditRunner interface {
	Execute(ctx context.Context, leadID string) (*entity.Audit, error)
}

// Consumer is the slice of *amqp.Channel the worker needs
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Runner  AuditRunner
}

func NewWorker(ch Consumer, runner AuditRunner) *Worker {
	return &Worker{
		Channel: ch,
		Runner:  runner,
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register rabbitmq consumer: %w", err)
	}

	log.Info().Str("queue", queueName).Msg("audit worker started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}

			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload AuditPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil || payload.LeadID == "" {
		log.Error().Err(err).Msg("invalid audit payload, dead-lettering")
		nack(d)
		return
	}

	logger := log.With().Str("lead_id", payload.LeadID).Logger()

	_, err := w.Runner.Execute(ctx, payload.LeadID)

	switch {
	case err == nil:
		middleware.RecordAudit("success")
		logger.Info().Msg("queued audit completed")
		ack(d)

	case errors.Is(err, auditlock.ErrLocked):
		// the running audit covers this request
		middleware.RecordAuditLockContention()
		logger.Info().Msg("audit already running, dropping queued request")
		ack(d)

	case errors.Is(err, entity.ErrLeadNotFound):
		logger.Warn().Msg("lead no longer exists, dropping queued audit")
		ack(d)

	default:
		middleware.RecordAudit("failed")
		logger.Error().Err(err).Msg("queued audit failed, dead-lettering")
		nack(d)
	}
}

func ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Msg("ack failed")
	}
}

func nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		log.Error().Err(err).Msg("nack failed")
	}
}
