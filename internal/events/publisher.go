package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agora/backend/internal/config"
	"agora/backend/internal/constants"
	"agora/backend/internal/logging"

	"github.com/segmentio/kafka-go"
)

// Event is the envelope written to the topic
type Event struct {
	Type       constants.EventType `json:"type"`
	OccurredAt time.Time           `json:"occurred_at"`
	Payload    any                 `json:"payload"`
}

// Publisher emits domain events after their transaction commits
type Publisher interface {
	Publish(ctx context.Context, eventType constants.EventType, key string, payload any) error
	Close() error
}

// NewPublisher returns a Kafka publisher, or a no-op one when no brokers are configured
func NewPublisher(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		logging.Info("Kafka brokers not configured, events disabled")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logging.Error("Failed to deliver events", "count", len(messages), "error", err)
			}
		},
	}
	logging.Info("Kafka publisher ready", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType constants.EventType, key string, payload any) error {
	value, err := json.Marshal(Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, constants.EventType, string, any) error { return nil }
func (NoopPublisher) Close() error                                                  { return nil }
