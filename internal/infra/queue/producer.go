package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadCreated   = "lead.created"
	EventLeadContacted = "lead.contacted"
	EventLeadWon       = "lead.won"
	EventLeadLost      = "lead.lost"
)

// LeadEventPayload is published on every lifecycle change. The created
// event carries the drafted email so the consumer can deliver it without
// touching storage.
type LeadEventPayload struct {
	Event  string `json:"event"`
	LeadID string `json:"lead_id"`

	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status"`

	EstimatedQuote string `json:"estimated_quote,omitempty"`
	EmailSubject   string `json:"email_subject,omitempty"`
	EmailBody      string `json:"email_body,omitempty"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}
	return nil
}
