// Package events publishes user lifecycle events for downstream consumers
// such as a notification service.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"userdesk/internal/server/models"
)

// Publisher delivers user events.
type Publisher interface {
	Publish(ctx context.Context, eventType models.UserEventType, email string) error
	Close() error
}

// NewEvent stamps a fresh event with a random id and the current time.
func NewEvent(eventType models.UserEventType, email string) models.UserEvent {
	return models.UserEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, models.UserEventType, string) error { return nil }
func (Nop) Close() error                                               { return nil }

// KafkaPublisher writes JSON events keyed by email to a single topic.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaConfig returns the producer configuration used by Dial.
func NewKafkaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	return cfg
}

// Dial connects a sync producer to brokers.
func Dial(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewKafkaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisher(producer, topic, logger), nil
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType models.UserEventType, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := NewEvent(eventType, email)
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(email),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send event to topic %q: %w", p.topic, err)
	}
	p.logger.Debug("user event published", "topic", p.topic, "type", ev.Type, "event_id", ev.ID, "partition", partition, "offset", offset)
	return nil
}

func (p *KafkaPublisher) Close() error { return p.producer.Close() }
