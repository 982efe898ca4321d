// internal/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/stalkershop/stalker-backend/internal/config"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// Envelope is the wire format for order lifecycle events. Payment
// capture and notification dispatch are handled by downstream consumers
// of these events, not by this service.
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher writes order events to Kafka. A nil *Publisher is valid and
// drops events, so wiring stays optional in development.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	if !cfg.Enabled {
		return nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	if p == nil {
		return nil
	}

	data, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("events: marshal failed: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("events: write failed: %w", err)
	}

	return nil
}

// PublishAsync fires the event on a best-effort basis; failures are
// logged, never surfaced to the request path.
func (p *Publisher) PublishAsync(eventType, key string, payload interface{}) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := p.Publish(ctx, eventType, key, payload); err != nil {
			logrus.WithError(err).WithField("event", eventType).Error("Failed to publish order event")
		}
	}()
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
