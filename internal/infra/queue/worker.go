package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/xavierca1/material-portal/internal/infra/http/middleware"
)

// EmailDeliverer is the slice of the mail sender the worker needs.
type EmailDeliverer interface {
	SendQuote(to, name, subject, body string) error
}

// Worker consumes lead events and delivers quote emails. Only created and
// contacted events carry a draft worth sending; decision events are logged
// and acknowledged.
type Worker struct {
	Channel *amqp.Channel
	Mail    EmailDeliverer
	log     zerolog.Logger
}

func NewWorker(ch *amqp.Channel, mail EmailDeliverer, log zerolog.Logger) *Worker {
	return &Worker{Channel: ch, Mail: mail, log: log}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.log.Fatal().Err(err).Msg("failed to register RabbitMQ consumer")
	}

	for d := range msgs {
		var payload LeadEventPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.log.Error().Err(err).Msg("malformed lead event, rejecting without requeue")
			d.Nack(false, false)
			continue
		}

		if err := w.process(payload); err != nil {
			w.log.Error().Err(err).Str("event", payload.Event).Str("lead_id", payload.LeadID).
				Msg("lead event processing failed")
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}

func (w *Worker) process(payload LeadEventPayload) error {
	w.log.Info().Str("event", payload.Event).Str("lead_id", payload.LeadID).Msg("lead event received")

	switch payload.Event {
	case EventLeadCreated, EventLeadContacted:
		if w.Mail == nil || payload.EmailBody == "" {
			return nil
		}
		if err := w.Mail.SendQuote(payload.Email, payload.Name, payload.EmailSubject, payload.EmailBody); err != nil {
			middleware.RecordQuoteEmail("failed")
			return err
		}
		middleware.RecordQuoteEmail("sent")
		return nil
	default:
		// Won/lost events exist for downstream consumers; nothing to do here.
		return nil
	}
}
